package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)

func ValidateEmail(email string) bool {
	if email == "" || len(email) > 255 {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidatePassword enforces the minimum length only; complexity rules are
// left to the client.
func ValidatePassword(password string) bool {
	return len(password) >= 6 && len(password) <= 100
}

func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

func ValidateFullName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= 2 && len(trimmed) <= 100
}
