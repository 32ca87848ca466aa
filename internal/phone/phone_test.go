package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"local with leading zero", "0541234567", "972541234567"},
		{"already international", "972541234567", "972541234567"},
		{"plus prefix", "+972541234567", "972541234567"},
		{"country code with trunk zero", "9720541234567", "972541234567"},
		{"dashes and spaces", "054-123 4567", "972541234567"},
		{"parentheses", "(054) 123-4567", "972541234567"},
		{"whatsapp jid leftovers", "972541234567", "972541234567"},
		{"empty", "", ""},
		{"non-digits only", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, "972"))
		})
	}
}

func TestNormalizeOtherCountryCode(t *testing.T) {
	assert.Equal(t, "441234567890", Normalize("01234567890", "44"))
	assert.Equal(t, "441234567890", Normalize("4401234567890", "44"))
}
