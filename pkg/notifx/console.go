package notifx

import (
	"context"
	"strings"

	"github.com/Abraxas-365/hrms/pkg/logx"
)

// ConsoleSender logs messages instead of sending them. Default in development.
type ConsoleSender struct{}

func (ConsoleSender) Send(_ context.Context, msg Message) error {
	logx.WithFields(logx.Fields{
		"to":          strings.Join(msg.To, ","),
		"subject":     msg.Subject,
		"attachments": len(msg.Attachments),
	}).Info("📧 email (console provider)")
	return nil
}
