// Package pathutil sanitizes client-supplied repository and reference
// segments before they are composed into filesystem paths.
package pathutil

import "strings"

// Sanitize drops every byte outside [A-Za-z0-9._/-] from s and returns the
// remainder. It is applied to every user-supplied <name> and <reference>
// path segment before composing a filesystem path from it.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isAllowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAllowed(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == '/' || r == '-':
		return true
	default:
		return false
	}
}
