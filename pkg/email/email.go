// Package email normalizes and validates client email addresses.
package email

import (
	"regexp"
	"strings"
)

// pattern accepts the pragmatic shape local@domain.tld. Full RFC 5322 parsing
// buys nothing here: the address is a contact field, not a login.
var pattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Normalize lowercases and trims an address. Idempotent.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Valid reports whether the normalized address is well-formed.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
