package hr

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail applies the same loose shape check the signup and login forms
// have always used. The backend does the authoritative validation.
func ValidEmail(v string) bool {
	return emailPattern.MatchString(strings.TrimSpace(v))
}

// StrongPassword enforces the signup policy: at least 8 characters with
// upper case, lower case, a digit and a special character.
func StrongPassword(v string) bool {
	if len(v) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range v {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("@$!%*?&#", r):
			special = true
		}
	}
	return upper && lower && digit && special
}
