package report

import (
	"fmt"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// WorkbookEncoder writes one sheet per section: a table for uniform lists, Attribute/Value
// rows otherwise.
type WorkbookEncoder struct{}

func (WorkbookEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (WorkbookEncoder) Extension() string { return "xlsx" }

func (WorkbookEncoder) Encode(r *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, s := range r.Sections {
		name := sheetName(s.Key)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}

		if err := writeSection(f, name, header, s); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(f *excelize.File, sheet string, headerStyle int, s domain.ReportSection) error {
	value := gjson.ParseBytes(s.Value)

	var rows [][]any
	columns, table := uniformTable(value)
	if table {
		rows = append(rows, toAny(columns))
		for _, row := range value.Array() {
			cells := tableCells(row, columns)
			record := make([]any, 0, len(cells))
			for _, c := range cells {
				record = append(record, cellValue(c))
			}
			rows = append(rows, record)
		}
	} else {
		rows = append(rows, []any{"Attribute", "Value"})
		prefix := len(s.Key) + 1
		for _, d := range FlattenSection(s) {
			name := d.Name
			if len(name) > prefix {
				name = name[prefix:]
			}
			rows = append(rows, []any{name, d.Value})
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("failed to address header of %s: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}
	return nil
}

func cellValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Number:
		return v.Float()
	case gjson.True, gjson.False:
		return v.Bool()
	}
	return cellText(v)
}

func toAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func sheetName(key string) string {
	if len(key) > maxSheetName {
		return key[:maxSheetName]
	}
	return key
}
