package domain

import "encoding/json"

// Report represents a compiled report. Section order is the assembly order and every encoder
// must preserve it.
type Report struct {
	Template string
	Title    string
	Sections []ReportSection
}

// ReportSection represents a logical top-level section of the report
type ReportSection struct {
	Key   string
	Value json.RawMessage // compact JSON
}

// ReportDetail represents one flattened leaf of a section
type ReportDetail struct {
	Name  string
	Value string
}

// Section returns the section stored under key.
func (r *Report) Section(key string) (ReportSection, bool) {
	for _, s := range r.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return ReportSection{}, false
}
