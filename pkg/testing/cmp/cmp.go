package cmp

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// CompareErr fails the test unless got can be assigned to the type of want and equals it.
func CompareErr(t *testing.T, got error, want error, opts ...cmp.Option) {
	t.Helper()

	if want == nil {
		if got != nil {
			t.Fatalf("expected no error, got %T: %v", got, got)
		}
		return
	}

	if got == nil {
		t.Fatalf("expected %T error, got nil", want)
	}

	wantType := reflect.TypeOf(want)
	target := reflect.New(wantType)
	if !errors.As(got, target.Interface()) {
		t.Fatalf("expected error assignable to %v, got %T: %v", wantType, got, got)
	}

	typedGot := target.Elem().Interface().(error)
	if diff := cmp.Diff(want, typedGot, opts...); diff != "" {
		t.Errorf("error mismatch (-expected +got):\n%s", diff)
	}
}

// CompareErrIs fails the test unless got matches target according to errors.Is.
func CompareErrIs(t *testing.T, got error, target error) {
	t.Helper()

	if target == nil {
		if got != nil {
			t.Fatalf("expected no error, got %T: %v", got, got)
		}
		return
	}

	if !errors.Is(got, target) {
		t.Fatalf("expected error matching %v, got %v", target, got)
	}
}

// Diff reports a mismatch between expected and got as a test error.
func Diff(t *testing.T, expected any, got any, opts ...cmp.Option) {
	t.Helper()

	if diff := cmp.Diff(expected, got, opts...); diff != "" {
		t.Errorf("mismatch (-expected +got):\n%s", diff)
	}
}
