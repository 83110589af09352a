package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/report"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  48,
		ValueWidth: 48,
	}
}

// Reporter prints a compiled report as one two-column table per section.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(r *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, value string) string {
			return fmt.Sprintf("| %-*s | %-*s |",
				c.config.NameWidth, truncate(name, c.config.NameWidth),
				c.config.ValueWidth, truncate(value, c.config.ValueWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"details": func(s domain.ReportSection) []domain.ReportDetail {
			details := report.FlattenSection(s)
			for i := range details {
				details[i].Name = strings.TrimPrefix(strings.TrimPrefix(details[i].Name, s.Key), ".")
				if details[i].Name == "" {
					details[i].Name = s.Key
				}
			}
			return details
		},
	}

	tmpl := `
{{.Title}}
{{range .Sections}}
=== {{.Key}} ===
{{separator}}
{{formatRow "Name" "Value"}}
{{separator}}
{{range details .}}{{formatRow .Name .Value}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, r)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "~"
}
