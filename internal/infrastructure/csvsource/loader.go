package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"BrandMentionScanner/internal/domain"
	"BrandMentionScanner/internal/ports"
)

// Loader reads the delimited brand table from disk.
type Loader struct {
	path      string
	separator rune
}

var _ ports.RecordSource = (*Loader)(nil)

// NewLoader wires the table path and column separator.
func NewLoader(path string, separator rune) *Loader {
	return &Loader{path: path, separator: separator}
}

// Load parses the table and returns one record per row with a non-blank
// brand. A missing file or absent Brand/Category columns is an error.
func (l *Loader) Load(_ context.Context) ([]domain.Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open input table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = l.separator
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", l.path, err)
	}

	brandIdx, categoryIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "brand":
			brandIdx = i
		case "category":
			categoryIdx = i
		}
	}
	if brandIdx < 0 || categoryIdx < 0 {
		return nil, fmt.Errorf("input %s: Brand and Category columns are required", l.path)
	}

	var records []domain.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row of %s: %w", l.path, err)
		}

		brand := strings.TrimSpace(row[brandIdx])
		if brand == "" {
			continue
		}
		records = append(records, domain.Record{
			Brand:    brand,
			Category: strings.TrimSpace(row[categoryIdx]),
		})
	}

	return records, nil
}
