package sched

import "fmt"

// assertf panics when cond is false. Every failure in this core is a
// programming error, not an environmental condition, so there is no
// recoverable path: the diagnostic goes into the panic value.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("kernel assertion failed: "+format, args...))
	}
}
