package report

import (
	"slices"
	"strconv"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/tidwall/gjson"
)

// Flatten turns every section into dotted-path leaves, in section and field order.
func Flatten(r *domain.Report) []domain.ReportDetail {
	var details []domain.ReportDetail
	for _, s := range r.Sections {
		details = append(details, FlattenSection(s)...)
	}
	return details
}

// FlattenSection flattens one section; leaf names are prefixed with the section key.
func FlattenSection(s domain.ReportSection) []domain.ReportDetail {
	var details []domain.ReportDetail
	flatten(s.Key, gjson.ParseBytes(s.Value), &details)
	return details
}

func flatten(prefix string, value gjson.Result, out *[]domain.ReportDetail) {
	if !value.IsObject() && !value.IsArray() {
		*out = append(*out, domain.ReportDetail{Name: prefix, Value: leafValue(value)})
		return
	}

	empty := true
	i := 0
	value.ForEach(func(key, child gjson.Result) bool {
		empty = false
		name := key.String()
		if value.IsArray() {
			name = strconv.Itoa(i)
			i++
		}
		flatten(prefix+"."+name, child, out)
		return true
	})
	// Keep empty containers visible so no section disappears.
	if empty {
		*out = append(*out, domain.ReportDetail{Name: prefix, Value: value.Raw})
	}
}

func leafValue(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.String()
	default:
		return v.Raw
	}
}

// uniformTable reports whether value is a non-empty list of objects sharing one key sequence,
// and returns those keys.
func uniformTable(value gjson.Result) ([]string, bool) {
	if !value.IsArray() {
		return nil, false
	}
	rows := value.Array()
	if len(rows) == 0 {
		return nil, false
	}

	var columns []string
	for i, row := range rows {
		if !row.IsObject() {
			return nil, false
		}
		var keys []string
		row.ForEach(func(key, _ gjson.Result) bool {
			keys = append(keys, key.String())
			return true
		})
		if i == 0 {
			columns = keys
			continue
		}
		if !slices.Equal(columns, keys) {
			return nil, false
		}
	}
	return columns, true
}

// tableCells returns the row cells for columns; nested values are kept as raw JSON.
func tableCells(row gjson.Result, columns []string) []gjson.Result {
	cells := make([]gjson.Result, 0, len(columns))
	for _, c := range columns {
		cells = append(cells, row.Get(gjson.Escape(c)))
	}
	return cells
}

func cellText(v gjson.Result) string {
	if v.IsObject() || v.IsArray() {
		return v.Raw
	}
	return leafValue(v)
}
