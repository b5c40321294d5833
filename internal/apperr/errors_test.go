package apperr_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/labeleval/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("runs directory is required")

	if err.Error() != "runs directory is required" {
		t.Errorf("expected 'runs directory is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("unknown mode")
	err := apperr.NewValidationWrap("invalid recovery", inner)

	if err.Error() != "invalid recovery: unknown mode" {
		t.Errorf("expected 'invalid recovery: unknown mode', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	base := apperr.NewValidation("no reference source")

	wrapped := fmt.Errorf("load spec: %w", base)
	doubleWrapped := fmt.Errorf("evaluate: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "no reference source" {
		t.Errorf("expected 'no reference source', got %q", ve.Message)
	}
}

func TestSchemaError(t *testing.T) {
	inner := fmt.Errorf("unknown column %q", "Foo")
	err := apperr.NewSchema("chexbert_labeled_00.csv", []string{"Report Impression", "Edema"}, inner)

	msg := err.Error()
	for _, want := range []string{"chexbert_labeled_00.csv", "unknown column", "Report Impression, Edema"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}

	var se *apperr.SchemaError
	if !errors.As(fmt.Errorf("load run: %w", err), &se) {
		t.Fatal("errors.As should find SchemaError")
	}
	if se.File != "chexbert_labeled_00.csv" {
		t.Errorf("unexpected file %q", se.File)
	}
}

func TestSchemaError_NotFoundForPlainErrors(t *testing.T) {
	wrapped := fmt.Errorf("read: %w", fmt.Errorf("permission denied"))

	var se *apperr.SchemaError
	if errors.As(wrapped, &se) {
		t.Fatal("errors.As should NOT find SchemaError in plain error chain")
	}
}
