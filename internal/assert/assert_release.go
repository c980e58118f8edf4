//go:build !debug

// Package assert provides invariant checks that run only in debug
// builds. Build with -tags debug to enable them; release builds compile
// Assert to a no-op so the checks never cost anything at runtime.
package assert

// DEBUG reports whether assertions are compiled in.
const DEBUG = false

// Assert panics with msg (formatted like fmt.Sprintf) if cond is false.
// In release builds this is a no-op; callers that compute expensive
// arguments should still guard with "if assert.DEBUG { ... }" since Go
// evaluates call arguments even when the function body is empty.
func Assert(cond bool, msg string, args ...any) {}
