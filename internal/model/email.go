package model

import "strings"

// ValidateEmail is a format sanity check, not RFC 5322 validation: the text
// must contain an "@" and a "." somewhere, in any order.
//
//	ValidateEmail("alice@example.com") → true
//	ValidateEmail("a.b@c")             → true
//	ValidateEmail("alice@example")     → false
func ValidateEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
