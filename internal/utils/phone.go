package utils

import (
	"regexp"
	"strings"
)

// Mobile marocain : 0 suivi de 6 ou 7 puis huit chiffres.
var moroccanMobile = regexp.MustCompile(`^0[67][0-9]{8}$`)

// IsValidMoroccanPhone valide un numéro de mobile marocain, en tolérant
// les espaces que les clients tapent souvent (06 12 34 56 78).
func IsValidMoroccanPhone(phone string) bool {
	cleaned := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	return moroccanMobile.MatchString(cleaned)
}
