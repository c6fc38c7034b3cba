// Package datanorm is the boundary to supplier DATANORM catalog exports.
//
// A supplier delivers a file group: a base file (DATANORM.001) with the item
// lines, an optional product group file (*.WRG) mapping group ids to names,
// and an optional price file (DATPREIS.001). The package classifies files by
// their naming convention and extracts the record fields the scan pipeline
// consumes. The full DATANORM grammar is deliberately not covered here; the
// reader handles the semicolon-separated A/S/P/V record subset described on
// FileParser.
package datanorm

import (
	"path/filepath"
	"regexp"
	"strings"
)

// FileKind classifies a catalog export file by its naming convention.
type FileKind int

const (
	KindUnknown FileKind = iota
	// KindBase is the item file, e.g. DATANORM.001.
	KindBase
	// KindProductGroup is the group name file, e.g. SUPPLIER.WRG.
	KindProductGroup
	// KindPrice is the price file, e.g. DATPREIS.001.
	KindPrice
)

var numericExt = regexp.MustCompile(`^\.\d{3}$`)

// DetectKind classifies an attachment basename. Membership in a file kind is
// decided purely by the name convention, matching how suppliers ship the
// exports.
func DetectKind(basename string) FileKind {
	lower := strings.ToLower(basename)
	ext := filepath.Ext(lower)

	switch {
	case strings.HasPrefix(lower, "datpreis") && numericExt.MatchString(ext):
		return KindPrice
	case ext == ".wrg":
		return KindProductGroup
	case strings.HasPrefix(lower, "datanorm") && numericExt.MatchString(ext):
		return KindBase
	default:
		return KindUnknown
	}
}
