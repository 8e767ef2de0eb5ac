// Package testkit holds helpers shared by package tests
package testkit

import (
	"strings"
	"sync"
	"testing"
)

// MustPanic fails t unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
}

// MustContain fails t unless got contains want
func MustContain(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Fatalf("missing %q in:\n%s", want, got)
	}
}

// Swap replaces *target for the rest of the test
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	old := *target
	*target = v
	t.Cleanup(func() { *target = old })
}

var serial sync.Mutex

// Serial holds a process wide lock until the test ends, for tests that
// swap package level seams
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}
