package services

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrDisplayNameInvalid     = errors.New("display name invalid")
)

const (
	MinDisplayNameLength = 2
	MaxDisplayNameLength = 50
)

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

func NormalizeDisplayName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(name)
	if length < MinDisplayNameLength || length > MaxDisplayNameLength {
		return "", ErrDisplayNameInvalid
	}
	return name, nil
}
