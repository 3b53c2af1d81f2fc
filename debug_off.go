//go:build !rlwtdebug

package rlwt

const debugChecks = false

func assertf(bool, string, ...interface{}) {}
