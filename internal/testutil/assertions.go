package testutil

import (
	"errors"
	"math"
	"testing"

	apperrors "ramadanwatch/internal/errors"
)

// AssertAppError fails unless err carries an *AppError with code.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	appErr, ok := apperrors.As(err)
	if !ok {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected error code %q, got %q (%s)", code, appErr.Code, appErr.Message)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()

	if !errors.Is(err, target) {
		t.Fatalf("expected error matching %v, got %v", target, err)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertPrice compares two prices or percentages to within a thousandth.
func AssertPrice(t *testing.T, what string, got, want float64) {
	t.Helper()

	if math.Abs(got-want) > 1e-3 {
		t.Errorf("%s: expected %.4f, got %.4f", what, want, got)
	}
}
