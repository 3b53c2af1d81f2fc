//go:build rlwtdebug

package rlwt

import "fmt"

const debugChecks = true

func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
