// Package services implements the scan pipeline: identifier validation,
// catalog record correlation, taxonomy and counterparty resolution, and
// product graph building.
package services

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// IsValidEAN reports whether code is a well-formed EAN-8 or EAN-13/GTIN.
// The check digit is computed over the reversed payload with alternating
// weights 3,1,3,1,... so the same walk works for both lengths. Any parse
// problem (wrong length, non-digit) fails closed.
func IsValidEAN(code string) bool {
	if len(code) != 8 && len(code) != 13 {
		return false
	}

	sum := 0
	weight := 3
	for i := len(code) - 2; i >= 0; i-- {
		digit := code[i]
		if digit < '0' || digit > '9' {
			return false
		}
		sum += int(digit-'0') * weight
		weight = 4 - weight // alternate 3 and 1
	}

	check := code[len(code)-1]
	if check < '0' || check > '9' {
		return false
	}
	return int(check-'0') == (10-sum%10)%10
}

// HashBarcode computes the stable hash stored alongside a raw barcode
// payload for exact re-scan matching.
func HashBarcode(payload string) string {
	digest := md5.Sum([]byte(strings.TrimSpace(payload)))
	return hex.EncodeToString(digest[:])
}
