//go:build debug

package assert

import "fmt"

// DEBUG reports whether assertions are compiled in.
const DEBUG = true

// Assert panics with msg (formatted like fmt.Sprintf) if cond is false.
func Assert(cond bool, msg string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(msg, args...))
	}
}
