package utils

import (
	"crypto/subtle"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// CheckAdminPassword vérifie le mot de passe admin : hash bcrypt si
// ADMIN_PASSWORD_HASH est défini, sinon comparaison en temps constant
// avec ADMIN_PASSWORD.
func CheckAdminPassword(password string) bool {
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	plain := os.Getenv("ADMIN_PASSWORD")
	if plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(password)) == 1
}
