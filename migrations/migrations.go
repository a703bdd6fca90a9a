// Package migrations embeds the Postgres schema.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/Abraxas-365/hrms/pkg/logx"
	"github.com/jmoiron/sqlx"
)

//go:embed *.sql
var files embed.FS

// Apply runs every embedded script in name order. Scripts are idempotent.
func Apply(ctx context.Context, db *sqlx.DB) error {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := files.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		logx.Debugf("migration %s applied", name)
	}
	logx.Infof("✅ %d migrations applied", len(names))
	return nil
}
