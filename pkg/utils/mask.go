package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaskName hides the middle of a patient name for logs (keep first and
// last character).
func MaskName(name string) string {
	if len(name) <= 2 {
		return strings.Repeat("*", len(name))
	}
	return name[:1] + strings.Repeat("*", len(name)-2) + name[len(name)-1:]
}

// ==================== PASSWORDS ====================

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
