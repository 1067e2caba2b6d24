package security

import (
	"regexp"
	"strings"
)

// Known disposable email providers, rejected at registration
var disposableDomains = map[string]bool{
	"tempmail.com":      true,
	"guerrillamail.com": true,
	"10minutemail.com":  true,
	"throwaway.email":   true,
	"mailinator.com":    true,
	"trashmail.com":     true,
	"fakeinbox.com":     true,
	"yopmail.com":       true,
	"temp-mail.org":     true,
	"getnada.com":       true,
	"maildrop.cc":       true,
	"sharklasers.com":   true,
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 6

// ValidEmailFormat checks basic email shape
func ValidEmailFormat(email string) bool {
	return emailPattern.MatchString(email)
}

// IsDisposableEmail reports whether the email's domain is a throwaway provider
func IsDisposableEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return disposableDomains[strings.ToLower(email[at+1:])]
}

// ValidPasswordLength enforces the minimum password length
func ValidPasswordLength(password string) bool {
	return len(password) >= minPasswordLength
}
