package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"249":        249,
		"249.90":     249.9,
		"249,90":     249.9,
		" 249 ":      249,
		"1 299,50":   1299.5,
		"1,299.50":   1299.5,
		"1.299,50":   1299.5,
		"249 DH":     249,
		"249dh":      249,
		"120 MAD":    120,
		"0":          0,
	}
	for raw, want := range cases {
		got, err := ParsePrice(raw)
		require.NoError(t, err, "ParsePrice(%q)", raw)
		assert.InDelta(t, want, got, 0.001, "ParsePrice(%q)", raw)
	}

	for _, raw := range []string{"", "   ", "abc", "12,34,56", "-5"} {
		_, err := ParsePrice(raw)
		assert.Error(t, err, "ParsePrice(%q) devrait échouer", raw)
	}
}

func TestPriceUnmarshalJSON(t *testing.T) {
	var p struct {
		Total Price `json:"total"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"total": 249}`), &p))
	assert.InDelta(t, 249, float64(p.Total), 0.001)

	require.NoError(t, json.Unmarshal([]byte(`{"total": "249,90"}`), &p))
	assert.InDelta(t, 249.9, float64(p.Total), 0.001)

	assert.Error(t, json.Unmarshal([]byte(`{"total": ""}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"total": "n/a"}`), &p))

	// Un nombre négatif est rejeté comme sa variante chaîne.
	err := json.Unmarshal([]byte(`{"total": -5}`), &p)
	require.ErrorIs(t, err, ErrInvalidPrice)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"total": "-5"}`), &p), ErrInvalidPrice)
}
