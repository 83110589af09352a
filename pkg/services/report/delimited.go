package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/tidwall/gjson"
)

// CSVEncoder writes a table when the report is a single uniform list, and Attribute,Value
// rows for every flattened leaf of every section otherwise.
type CSVEncoder struct{}

func (CSVEncoder) ContentType() string { return "text/csv" }
func (CSVEncoder) Extension() string   { return "csv" }

func (CSVEncoder) Encode(r *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if rows, columns, ok := primaryTable(r); ok {
		if err := w.Write(columns); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		for _, row := range rows {
			cells := tableCells(row, columns)
			record := make([]string, 0, len(cells))
			for _, c := range cells {
				record = append(record, cellText(c))
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	} else {
		if err := w.Write([]string{"Attribute", "Value"}); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		for _, d := range Flatten(r) {
			if err := w.Write([]string{d.Name, d.Value}); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", d.Name, err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// primaryTable only applies to one-section reports; anything wider would drop sections.
func primaryTable(r *domain.Report) ([]gjson.Result, []string, bool) {
	if len(r.Sections) != 1 {
		return nil, nil, false
	}

	value := gjson.ParseBytes(r.Sections[0].Value)
	columns, ok := uniformTable(value)
	if !ok {
		return nil, nil, false
	}
	return value.Array(), columns, true
}
