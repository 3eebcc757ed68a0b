//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package main

// isTerminal reports false: line editing is only enabled where the terminal
// can be detected.
func isTerminal(uintptr) bool {
	return false
}
