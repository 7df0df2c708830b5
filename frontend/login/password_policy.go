package login

import (
	"errors"
	"unicode"
)

func ValidatePasswordPolicy(password string) error {
	if len(password) < 8 {
		return errors.New("password minimal 8 karakter")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return errors.New("password harus memuat huruf dan angka")
	}

	return nil
}
