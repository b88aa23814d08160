package services

import (
	"errors"
	"unicode/utf8"
)

var ErrWeakPassword = errors.New("weak password")

const MinPasswordLength = 6

func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
