// Package strings holds small string and slice helpers
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix cleans a mount path to one leading slash and no trailing one,
// eg " cuneiform/ " becomes "/cuneiform". Blank and root paths panic
func MustPrefix(s string) string {
	p := "/" + std.Trim(s, " /")
	if p == "/" {
		panic("mount prefix is required")
	}
	return p
}
