// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// PasswordMinLength is the minimum accepted password length, checked before
// hashing.
const PasswordMinLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidatePassword checks if a password meets length requirements
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters long", PasswordMinLength)
	}

	// Check maximum length (prevent unreasonable inputs; bcrypt ignores
	// bytes past 72 anyway)
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username is required")
	}

	if len(username) > 50 {
		return fmt.Errorf("username must not exceed 50 characters")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}
