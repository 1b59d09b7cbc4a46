package middleware

import (
	"errors"
	"unicode/utf8"
)

// ValidateMessageContent validates an inbound message body.
func ValidateMessageContent(content string) error {
	if len(content) == 0 {
		return errors.New("content cannot be empty")
	}
	if len(content) > 100000 { // ~100KB limit
		return errors.New("content exceeds maximum length")
	}
	if !utf8.ValidString(content) {
		return errors.New("content must be valid UTF-8")
	}
	return nil
}

// ValidateTitle validates a listing title.
func ValidateTitle(title string) error {
	if len(title) == 0 {
		return errors.New("title cannot be empty")
	}
	if len(title) > 256 {
		return errors.New("title exceeds maximum length")
	}
	if !utf8.ValidString(title) {
		return errors.New("title must be valid UTF-8")
	}
	return nil
}

// ValidateUsername validates a login username.
func ValidateUsername(username string) error {
	if len(username) == 0 {
		return errors.New("username cannot be empty")
	}
	if len(username) > 64 {
		return errors.New("username exceeds maximum length")
	}
	return nil
}
