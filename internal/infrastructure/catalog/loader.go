package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shelfcheck/backend/internal/domain"
)

// UnknownPlaceholder replaces blank names and categories at load time, so
// the engine never sees empty values.
const UnknownPlaceholder = "Unknown"

// Expected CSV column headers, matched case-insensitively.
const (
	columnName     = "productname"
	columnCategory = "category"
	columnPrice    = "pricegbp"
	columnAgeFlag  = "ageverificationrequired"
)

// Load reads the head-office catalog CSV into an immutable snapshot.
// Blank names and categories are normalised to the Unknown placeholder;
// rows without a parseable price are skipped with a log line rather than
// poisoning the price band.
func Load(path string) ([]domain.CatalogRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogLoad, err)
	}
	defer f.Close()

	return parse(f, path)
}

func parse(r io.Reader, source string) ([]domain.CatalogRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header from %s: %v", domain.ErrCatalogLoad, source, err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCatalogLoad, source, err)
	}

	var records []domain.CatalogRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", domain.ErrCatalogLoad, source, line, err)
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[cols.price]), 64)
		if err != nil {
			log.Printf("[CATALOG] Skipping line %d: unparseable price %q", line, row[cols.price])
			continue
		}

		records = append(records, domain.CatalogRecord{
			Name:                    orUnknown(row[cols.name]),
			Category:                orUnknown(row[cols.category]),
			Price:                   price,
			AgeVerificationRequired: parseAgeFlag(row[cols.ageFlag]),
		})
	}

	return records, nil
}

type columnIndexes struct {
	name, category, price, ageFlag int
}

func mapColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{name: -1, category: -1, price: -1, ageFlag: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case columnName:
			cols.name = i
		case columnCategory:
			cols.category = i
		case columnPrice:
			cols.price = i
		case columnAgeFlag:
			cols.ageFlag = i
		}
	}

	if cols.name < 0 || cols.category < 0 || cols.price < 0 || cols.ageFlag < 0 {
		return cols, fmt.Errorf("header missing one of ProductName, Category, PriceGBP, AgeVerificationRequired (got %v)", header)
	}
	return cols, nil
}

func orUnknown(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return UnknownPlaceholder
	}
	return value
}

func parseAgeFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "y":
		return true
	default:
		return false
	}
}
