package services

import "strings"

// FormatSIUnits maps a DATANORM unit-of-measure code to the SI symbol stored
// on products. Piece-like codes (STCK, STK, VE) and anything unrecognized
// map to "", a dimensionless count.
func FormatSIUnits(unit string) string {
	switch strings.ToUpper(unit) {
	case "MTR", "M", "LFM":
		return "m"
	case "KG":
		return "kg"
	default:
		return ""
	}
}
