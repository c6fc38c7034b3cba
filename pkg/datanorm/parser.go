package datanorm

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/voltbridge/catalog-engine/pkg/models"
)

// Parser extracts catalog record fields from one supplier's file group.
// ParseBase marks the record valid when a line matches the identifier;
// a miss is not an error. The group and price parsers tolerate an empty
// path so a supplier may ship the base file alone.
type Parser interface {
	ParseBase(path, identifier string, rec *models.CatalogRecord) error
	ParseProductGroups(path string, rec *models.CatalogRecord) error
	ParsePrices(path string, rec *models.CatalogRecord) error
}

// FileParser reads the semicolon-separated record subset of DATANORM v4 that
// the scan pipeline consumes:
//
//	V;<DDMMYY>;<info>;<currency>           file header (base file)
//	A;<proc>;<sku>;<name>;<desc>;<matchcode>;<ean>;<unit>;<mpn>;<manufacturer>;<min pack qty>;<group id>;<main group id>
//	S;<group id>;<group name>              product group file
//	P;<sku>;<unit price>;<wholesale price> price file
//
// Base and price files are decoded as CP850 (the DOS codepage the exports are
// produced with); product group files are fixed to ISO 8859-1, a quirk of the
// format that has to be preserved.
type FileParser struct {
	BaseEncoding  *charmap.Charmap
	GroupEncoding *charmap.Charmap
	PriceEncoding *charmap.Charmap
}

// NewFileParser returns a parser with the standard encodings.
func NewFileParser() *FileParser {
	return &FileParser{
		BaseEncoding:  charmap.CodePage850,
		GroupEncoding: charmap.ISO8859_1,
		PriceEncoding: charmap.CodePage850,
	}
}

var _ Parser = (*FileParser)(nil)

// ParseBase scans the base file for an item line matching the identifier and
// populates the record from it. The record stays invalid when no line matches.
func (p *FileParser) ParseBase(path, identifier string, rec *models.CatalogRecord) error {
	return p.eachRecord(path, p.BaseEncoding, func(fields []string) {
		switch fields[0] {
		case "V":
			if len(fields) > 1 {
				if date, err := time.Parse("020106", fields[1]); err == nil {
					rec.Date = date
				}
			}
			if len(fields) > 3 {
				rec.Currency = strings.TrimSpace(fields[3])
			}
		case "A":
			if len(fields) < 13 || strings.TrimSpace(fields[6]) != identifier {
				return
			}
			rec.ArticleID = strings.TrimSpace(fields[2])
			rec.ItemName = strings.TrimSpace(fields[3])
			rec.Description = strings.TrimSpace(fields[4])
			rec.Matchcode = fields[5]
			rec.EAN = identifier
			rec.UnitOfMeasure = strings.TrimSpace(fields[7])
			rec.AlternateArticleID = strings.TrimSpace(fields[8])
			rec.ManufacturerName = strings.TrimSpace(fields[9])
			rec.MinimumPackagingQuantity = strings.TrimSpace(fields[10])
			if rec.MinimumPackagingQuantity == "" {
				rec.MinimumPackagingQuantity = "1"
			}
			rec.ProductGroupID = strings.TrimSpace(fields[11])
			rec.MainProductGroupID = strings.TrimSpace(fields[12])
			rec.Valid = true
		}
	})
}

// ParseProductGroups resolves the group ids captured from the base file to
// category names.
func (p *FileParser) ParseProductGroups(path string, rec *models.CatalogRecord) error {
	if path == "" {
		return nil
	}
	return p.eachRecord(path, p.GroupEncoding, func(fields []string) {
		if fields[0] != "S" || len(fields) < 3 {
			return
		}
		id := strings.TrimSpace(fields[1])
		name := strings.TrimSpace(fields[2])
		if id != "" && id == rec.ProductGroupID {
			rec.ProductGroup = name
		}
		if id != "" && id == rec.MainProductGroupID {
			rec.MainProductGroup = name
		}
	})
}

// ParsePrices fills in the unit and wholesale prices for the record's SKU.
func (p *FileParser) ParsePrices(path string, rec *models.CatalogRecord) error {
	if path == "" {
		return nil
	}
	return p.eachRecord(path, p.PriceEncoding, func(fields []string) {
		if fields[0] != "P" || len(fields) < 4 {
			return
		}
		if strings.TrimSpace(fields[1]) != rec.ArticleID {
			return
		}
		if price, err := parseDecimal(fields[2]); err == nil {
			rec.UnitPrice = price
		}
		if price, err := parseDecimal(fields[3]); err == nil {
			rec.WholesalePrice = price
		}
	})
}

// eachRecord streams the file line by line through the given decoder and
// hands the split fields of every non-empty line to fn.
func (p *FileParser) eachRecord(path string, enc *charmap.Charmap, fn func(fields []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer f.Close()

	var decoder *encoding.Decoder
	if enc != nil {
		decoder = enc.NewDecoder()
	} else {
		decoder = charmap.CodePage850.NewDecoder()
	}

	scanner := bufio.NewScanner(transform.NewReader(f, decoder))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		fn(strings.Split(line, ";"))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return nil
}

// parseDecimal accepts both decimal point and the German comma separator.
func parseDecimal(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	return decimal.NewFromString(cleaned)
}
