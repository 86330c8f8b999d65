package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Price accepte indifféremment un nombre JSON ou une chaîne formatée
// ("249", "249,90", "1 299.00 DH") — le storefront envoie les deux.
type Price float64

var ErrInvalidPrice = errors.New("prix invalide")

func (p *Price) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		// Même règle que la voie chaîne : pas de montant négatif.
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrInvalidPrice, n)
		}
		*p = Price(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidPrice
	}
	v, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// ParsePrice normalise une chaîne de prix telle qu'affichée côté client :
// espaces (y compris insécables) supprimés, suffixe devise retiré, virgule
// ou point accepté comme séparateur décimal (le dernier rencontré gagne).
func ParsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrInvalidPrice
	}

	replacer := strings.NewReplacer(" ", "", " ", "", " ", "")
	s = replacer.Replace(s)

	for _, suffix := range []string{"dh", "DH", "Dh", "MAD", "mad", "درهم"} {
		s = strings.TrimSuffix(s, suffix)
	}

	// Si virgule et point coexistent, le dernier est le séparateur décimal,
	// l'autre n'est qu'un séparateur de milliers.
	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return v, nil
}
