// Package fsx abstracts where uploaded and generated files live.
package fsx

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/Abraxas-365/hrms/pkg/errx"
)

type FileReader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
}

type FileWriter interface {
	WriteFile(ctx context.Context, name string, data []byte) error
	WriteFileStream(ctx context.Context, name string, r io.Reader) error
}

// FileSystem is a flat key space of slash-separated names.
type FileSystem interface {
	FileReader
	FileWriter
	DeleteFile(ctx context.Context, name string) error
}

var ErrRegistry = errx.NewRegistry("FILE")

var (
	CodeFileNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeInvalidName  = ErrRegistry.Register("INVALID_NAME", errx.TypeValidation, http.StatusBadRequest, "Invalid file name")
)

func ErrFileNotFound(name string) *errx.Error {
	return ErrRegistry.New(CodeFileNotFound).WithDetail("name", name)
}

func ErrInvalidName(name string) *errx.Error {
	return ErrRegistry.New(CodeInvalidName).WithDetail("name", name)
}

// CleanName normalizes name and rejects anything escaping the root.
func CleanName(name string) (string, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	if name == "" {
		return "", ErrInvalidName(name)
	}
	cleaned := path.Clean("/" + name)[1:]
	if cleaned == "" || cleaned == "." || strings.Contains(name, "..") {
		return "", ErrInvalidName(name)
	}
	return cleaned, nil
}

// Join builds a storage name from parts.
func Join(parts ...string) string {
	return strings.TrimPrefix(path.Join(parts...), "/")
}
