package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEAN(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "valid EAN-13", code: "3250614315336", want: true},
		{name: "valid EAN-8", code: "96385074", want: true},
		{name: "wrong check digit", code: "1234567890123", want: false},
		{name: "wrong length", code: "12323", want: false},
		{name: "empty", code: "", want: false},
		{name: "non-digit characters", code: "32506143153A6", want: false},
		{name: "fourteen digits", code: "03250614315336", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEAN(tt.code))
		})
	}
}

func TestHashBarcode(t *testing.T) {
	// MD5 of the raw payload string.
	assert.Equal(t, "7fc46f0d3c2ae4d06f00493943834ffb", HashBarcode("3250614315336"))

	// Surrounding whitespace does not change the hash.
	assert.Equal(t, HashBarcode("3250614315336"), HashBarcode("  3250614315336\n"))

	// Different payloads hash differently.
	assert.NotEqual(t, HashBarcode("3250614315336"), HashBarcode("96385074"))
}
