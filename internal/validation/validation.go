// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Content limits for feed writes, in characters.
const (
	MaxPostContent    = 50000
	MaxCommentContent = 10000
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)*\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces a length window. bcrypt ignores bytes past 72,
// so longer passwords are rejected instead of silently truncated.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(password) > 72 {
		return fmt.Errorf("password must not exceed 72 bytes")
	}
	return nil
}

// ValidateText rejects strings the database cannot store as text: invalid
// UTF-8 and NUL bytes.
func ValidateText(field, value string) error {
	if !utf8.ValidString(value) {
		return fmt.Errorf("%s must be valid UTF-8", field)
	}
	if strings.IndexByte(value, 0) >= 0 {
		return fmt.Errorf("%s must not contain NUL characters", field)
	}
	return nil
}

// ValidateName checks a display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if err := ValidateText("name", name); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	return nil
}

// ValidateShortText bounds optional one-line fields such as specialization.
func ValidateShortText(field, value string) error {
	if err := ValidateText(field, value); err != nil {
		return err
	}
	if utf8.RuneCountInString(value) > 100 {
		return fmt.Errorf("%s must not exceed 100 characters", field)
	}
	return nil
}

// ValidatePostContent allows empty content; image-only posts are legal.
func ValidatePostContent(content string) error {
	if err := ValidateText("content", content); err != nil {
		return err
	}
	if utf8.RuneCountInString(content) > MaxPostContent {
		return fmt.Errorf("content must not exceed %d characters", MaxPostContent)
	}
	return nil
}

// ValidateCommentContent requires non-blank content.
func ValidateCommentContent(content string) error {
	if err := ValidateText("content", content); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(content) > MaxCommentContent {
		return fmt.Errorf("content must not exceed %d characters", MaxCommentContent)
	}
	return nil
}
