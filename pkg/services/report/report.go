package report

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTemplate   = errors.New("unknown report template")
	ErrUnsupportedFormat = errors.New("unsupported report format")
	ErrGenerationFailed  = errors.New("report generation failed")
	ErrDuplicateEncoder  = errors.New("encoder already registered")
)

type Template string

const (
	TemplateFinancial Template = "financial"
	TemplateAreas     Template = "areas"
	TemplateServices  Template = "services"
	TemplateTrends    Template = "trends"
	TemplateCustom    Template = "custom"
)

func Templates() []Template {
	return []Template{TemplateFinancial, TemplateAreas, TemplateServices, TemplateTrends, TemplateCustom}
}

func ParseTemplate(s string) (Template, error) {
	t := Template(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Templates() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, s)
}

// FilenamePrefix is the template-specific part of the download filename.
func (t Template) FilenamePrefix() string {
	switch t {
	case TemplateFinancial:
		return "Financial_Report"
	case TemplateAreas:
		return "Areas_Report"
	case TemplateServices:
		return "Services_Report"
	case TemplateTrends:
		return "Trends_Report"
	case TemplateCustom:
		return "Custom_Report"
	}
	return "Report"
}

func (t Template) Title() string {
	switch t {
	case TemplateFinancial:
		return "Financial Report"
	case TemplateAreas:
		return "Hospital Areas Report"
	case TemplateServices:
		return "Services Report"
	case TemplateTrends:
		return "Trends Report"
	case TemplateCustom:
		return "Custom Report"
	}
	return "Report"
}

type Format string

const (
	FormatWorkbook   Format = "xlsx"
	FormatDelimited  Format = "csv"
	FormatStructured Format = "json"
	FormatYAML       Format = "yaml"
)

var formatAliases = map[string]Format{
	"xlsx":            FormatWorkbook,
	"excel":           FormatWorkbook,
	"workbook":        FormatWorkbook,
	"csv":             FormatDelimited,
	"delimited-text":  FormatDelimited,
	"json":            FormatStructured,
	"structured-dump": FormatStructured,
	"yaml":            FormatYAML,
	"yml":             FormatYAML,
}

func ParseFormat(s string) (Format, error) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// Request selects a template and an encoding. Areas accepts area identifiers in either
// language; empty means every area.
type Request struct {
	Template           string
	Format             string
	Period             string
	Areas              []string
	IncludeComparative bool
	IncludePredictions bool
	IncludeGraphics    bool
	Archive            bool
}

type Result struct {
	Payload     []byte
	Filename    string
	ContentType string
	// ArchiveLocation is set only when an archive was requested and the upload succeeded.
	ArchiveLocation string
}
