package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
)

const (
	minPasswordLength = 8
	passwordSpecials  = "!@#?"
)

// WeakPasswordError lists every password rule that was not met, in a fixed
// order. It matches common.ErrWeakPassword with errors.Is.
type WeakPasswordError struct {
	Violations []string
}

func (e *WeakPasswordError) Error() string {
	return common.ErrWeakPassword.Error() + ": " + strings.Join(e.Violations, " ")
}

func (e *WeakPasswordError) Unwrap() error {
	return common.ErrWeakPassword
}

// CheckPassword returns nil for a strong password, otherwise a
// *WeakPasswordError naming each failed rule.
func CheckPassword(password string) error {
	var letter, upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			letter, upper = true, true
		case unicode.IsLower(r):
			letter, lower = true, true
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}

	var violations []string
	if utf8.RuneCountInString(password) < minPasswordLength {
		violations = append(violations, "At least 8 characters for a strong password.")
	}
	if !letter {
		violations = append(violations, "At least 1 letter for a strong password.")
	}
	if !upper {
		violations = append(violations, "At least 1 uppercase letter for a strong password.")
	}
	if !lower {
		violations = append(violations, "At least 1 lowercase letter for a strong password.")
	}
	if !digit {
		violations = append(violations, "At least 1 number for a strong password.")
	}
	if !special {
		violations = append(violations, "Password must have at least 1 special character from (!, @, #, ?)")
	}

	if len(violations) > 0 {
		return &WeakPasswordError{Violations: violations}
	}
	return nil
}
