// Package phone consolidates multi-valued contact fields.
//
// A contact field holds zero or more numbers, each terminated by ";". The
// consolidated form lists every distinct number once, mobile numbers first in
// the order they were first seen, then every other number in the order it was
// first seen.
package phone

import (
	"regexp"
	"strings"

	"github.com/agentstation/leadmerge/pkg/constants"
)

var mobilePattern = regexp.MustCompile(constants.MobilePattern)

// IsMobile reports whether token is an 11-digit mobile number beginning with 1.
func IsMobile(token string) bool {
	return mobilePattern.MatchString(token)
}

// Split returns the non-empty, whitespace-trimmed tokens of a contact field.
func Split(field string) []string {
	parts := strings.Split(field, constants.ContactSeparator)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Join serializes tokens with a trailing separator after each one.
func Join(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t)
		b.WriteString(constants.ContactSeparator)
	}
	return b.String()
}

// Consolidate merges any number of contact fields into one.
func Consolidate(fields ...string) string {
	seen := make(map[string]bool)
	var mobiles, others []string
	for _, field := range fields {
		for _, token := range Split(field) {
			if seen[token] {
				continue
			}
			seen[token] = true
			if IsMobile(token) {
				mobiles = append(mobiles, token)
			} else {
				others = append(others, token)
			}
		}
	}
	return Join(append(mobiles, others...))
}

// Append adds value to an accumulated contact field, terminating it with the
// separator. Empty values leave acc unchanged.
func Append(acc, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return acc
	}
	if !strings.HasSuffix(value, constants.ContactSeparator) {
		value += constants.ContactSeparator
	}
	return acc + value
}
