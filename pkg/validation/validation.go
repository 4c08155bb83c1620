package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"regexp"
)

var (
	// EmailRegex validates email format
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// ContentIDRegex validates content identifier format
	ContentIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// TokenRegex validates opaque token values (hex-encoded random bytes)
	TokenRegex = regexp.MustCompile(`^[a-f0-9]+$`)
)

// ValidateEmail validates email address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 {
		return fmt.Errorf("email is too long (max 254 characters)")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword validates password
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if len(password) > 128 {
		return fmt.Errorf("password is too long (max 128 characters)")
	}
	return nil
}

// ValidateContentID validates content identifier
func ValidateContentID(contentID string) error {
	if contentID == "" {
		return fmt.Errorf("content ID is required")
	}
	if len(contentID) > 100 {
		return fmt.Errorf("content ID is too long (max 100 characters)")
	}
	if !ContentIDRegex.MatchString(contentID) {
		return fmt.Errorf("invalid content ID format")
	}
	return nil
}

// ValidateStreamToken validates the shape of an opaque stream token value
func ValidateStreamToken(token string) error {
	if token == "" {
		return fmt.Errorf("stream token is required")
	}
	if len(token) > 256 {
		return fmt.Errorf("stream token is too long (max 256 characters)")
	}
	if !TokenRegex.MatchString(token) {
		return fmt.Errorf("invalid stream token format")
	}
	return nil
}

// ValidateNonEmptyString validates that string is not empty after trimming
func ValidateNonEmptyString(s, fieldName string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateStringLength validates string length
func ValidateStringLength(s string, min, max int, fieldName string) error {
	length := utf8.RuneCountInString(s)
	if length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if length > max {
		return fmt.Errorf("%s is too long (max %d characters)", fieldName, max)
	}
	return nil
}
