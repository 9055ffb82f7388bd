// Package testutil provides fixtures and checks shared by the Themetune tests.
package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// CheckLeaks records the goroutines alive now and returns a check that fails
// t if any goroutine started afterwards is still running. Tests of components
// that own a goroutine (poller, folder watcher) use it as
//
//	defer testutil.CheckLeaks(t)()
func CheckLeaks(t testing.TB, opts ...goleak.Option) func() {
	t.Helper()
	opts = append(opts, goleak.IgnoreCurrent())
	return func() {
		t.Helper()
		goleak.VerifyNone(t, opts...)
	}
}
