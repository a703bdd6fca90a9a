// Package ptrx has helpers for optional fields.
package ptrx

import "time"

func String(s string) *string { return &s }

func Int(i int) *int { return &i }

func Bool(b bool) *bool { return &b }

func Time(t time.Time) *time.Time { return &t }

// Value returns the pointed-to value or the zero value.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// StringOr returns *p or def when p is nil or empty.
func StringOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
