package fsxlocal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Abraxas-365/hrms/pkg/fsx"
)

// LocalFileSystem stores files under a base directory.
type LocalFileSystem struct {
	baseDir string
}

// NewLocalFileSystem creates baseDir if needed. An empty baseDir means the
// working directory.
func NewLocalFileSystem(baseDir string) (*LocalFileSystem, error) {
	if baseDir == "" {
		baseDir = "."
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("fsxlocal: create %s: %w", baseDir, err)
	}
	return &LocalFileSystem{baseDir: baseDir}, nil
}

func (l *LocalFileSystem) resolve(name string) (string, error) {
	cleaned, err := fsx.CleanName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.baseDir, filepath.FromSlash(cleaned)), nil
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	rc, err := l.ReadFileStream(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (l *LocalFileSystem) ReadFileStream(_ context.Context, name string) (io.ReadCloser, error) {
	p, err := l.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.ErrFileNotFound(name)
		}
		return nil, fmt.Errorf("fsxlocal: open %s: %w", name, err)
	}
	return f, nil
}

func (l *LocalFileSystem) Exists(_ context.Context, name string) (bool, error) {
	p, err := l.resolve(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("fsxlocal: stat %s: %w", name, err)
	}
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, name string, data []byte) error {
	return l.WriteFileStream(ctx, name, bytes.NewReader(data))
}

// WriteFileStream writes to a temp file and renames it into place.
func (l *LocalFileSystem) WriteFileStream(_ context.Context, name string, r io.Reader) error {
	p, err := l.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("fsxlocal: mkdir for %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return fmt.Errorf("fsxlocal: temp for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("fsxlocal: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("fsxlocal: close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("fsxlocal: rename %s: %w", name, err)
	}
	return nil
}

func (l *LocalFileSystem) DeleteFile(_ context.Context, name string) error {
	p, err := l.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fsx.ErrFileNotFound(name)
		}
		return fmt.Errorf("fsxlocal: delete %s: %w", name, err)
	}
	return nil
}
