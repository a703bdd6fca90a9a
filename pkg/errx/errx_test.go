package errx_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Abraxas-365/hrms/pkg/errx"
)

var (
	testRegistry = errx.NewRegistry("TEST")
	codeMissing  = testRegistry.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "missing thing")
)

func TestRegistry_NewCarriesCode(t *testing.T) {
	err := testRegistry.New(codeMissing)
	if err.Code != "TEST_MISSING" {
		t.Errorf("Code = %q, want TEST_MISSING", err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("HTTPStatus = %d, want 404", err.HTTPStatus)
	}
	if !errx.IsCode(err, codeMissing) {
		t.Error("IsCode should match the registered code")
	}
}

func TestRegistry_NewReturnsIndependentErrors(t *testing.T) {
	a := testRegistry.New(codeMissing).WithDetail("id", "a")
	b := testRegistry.New(codeMissing)
	if _, ok := b.Details["id"]; ok {
		t.Error("details leaked between errors built from the same code")
	}
	if a.Details["id"] != "a" {
		t.Errorf("Details[id] = %v, want a", a.Details["id"])
	}
}

func TestWrap_KeepsExistingError(t *testing.T) {
	inner := testRegistry.New(codeMissing)
	wrapped := errx.Wrap(fmt.Errorf("context: %w", inner), "outer", errx.TypeInternal)
	if wrapped.Code != inner.Code {
		t.Errorf("Wrap replaced code %q with %q", inner.Code, wrapped.Code)
	}
}

func TestWrap_PlainError(t *testing.T) {
	cause := errors.New("boom")
	wrapped := errx.Wrap(cause, "failed", errx.TypeInternal)
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if wrapped.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("HTTPStatus = %d, want 500", wrapped.HTTPStatus)
	}
	if !errx.IsType(wrapped, errx.TypeInternal) {
		t.Error("IsType(TypeInternal) should be true")
	}
}

func TestNew_DefaultStatusPerType(t *testing.T) {
	cases := []struct {
		typ  errx.Type
		want int
	}{
		{errx.TypeValidation, http.StatusBadRequest},
		{errx.TypeNotFound, http.StatusNotFound},
		{errx.TypeConflict, http.StatusConflict},
		{errx.TypeBusiness, http.StatusUnprocessableEntity},
		{errx.TypeAuthorization, http.StatusForbidden},
	}
	for _, c := range cases {
		if got := errx.New("x", c.typ).HTTPStatus; got != c.want {
			t.Errorf("New(%s).HTTPStatus = %d, want %d", c.typ, got, c.want)
		}
	}
}
