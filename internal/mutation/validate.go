package mutation

import (
	"strings"
	"unicode"
)

const (
	emptyEmailMessage   = "Please enter an email address"
	invalidEmailMessage = "Please enter a valid email address"
)

// ValidateEmail checks the local@domain.tld shape and returns the trimmed,
// lower-cased address.
func ValidateEmail(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", &ValidationError{Message: emptyEmailMessage}
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 || strings.Count(value, "@") != 1 {
		return "", &ValidationError{Message: invalidEmailMessage}
	}
	local, domain, _ := strings.Cut(value, "@")
	if local == "" || !strings.Contains(domain, ".") {
		return "", &ValidationError{Message: invalidEmailMessage}
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return "", &ValidationError{Message: invalidEmailMessage}
		}
	}
	return strings.ToLower(value), nil
}
