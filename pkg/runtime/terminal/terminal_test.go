package terminal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/metrics"
	"github.com/de-tools/health-atlas/pkg/services/report"
	"github.com/de-tools/health-atlas/pkg/services/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleLoader struct{}

func (sampleLoader) Load(context.Context) (domain.LoadedDocument, error) {
	return domain.LoadedDocument{Document: metrics.SampleDocument(), Source: domain.SourceSample}, nil
}

func newTestCLI(out *bytes.Buffer) *CLI {
	tr := views.NewTransformer(views.DefaultRatios()).
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) })
	return NewCLI(Options{
		Loader:   sampleLoader{},
		Compiler: report.NewCompiler(tr, nil, nil),
		Output:   out,
	})
}

func TestCLI_Report(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	cli := newTestCLI(&out)
	cli.Command().SetArgs([]string{"report", "--template", "trends", "--format", "json", "-o", dir})

	require.NoError(t, cli.Execute())

	path := filepath.Join(dir, "Trends_Report_2025-06-01.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	decoded, err := report.DecodeStructured(data)
	require.NoError(t, err)
	assert.Equal(t, "monthly_trends", decoded.Sections[0].Key)
	assert.Contains(t, out.String(), path)
	assert.Contains(t, out.String(), "sample source")
}

func TestCLI_ReportRejectsUnknownFormat(t *testing.T) {
	var out bytes.Buffer
	cli := newTestCLI(&out)
	cli.Command().SetArgs([]string{"report", "--template", "trends", "--format", "pdf", "-o", t.TempDir()})

	err := cli.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestCLI_Summary(t *testing.T) {
	var out bytes.Buffer
	cli := newTestCLI(&out)
	cli.Command().SetArgs([]string{"summary", "--template", "areas", "--areas", "emergency,laboratory"})

	require.NoError(t, cli.Execute())

	assert.Contains(t, out.String(), "Areas Report")
	assert.Contains(t, out.String(), "=== area_analysis ===")
	assert.Contains(t, out.String(), "=== department_supplies ===")
}

func TestCLI_SummaryUnknownArea(t *testing.T) {
	var out bytes.Buffer
	cli := newTestCLI(&out)
	cli.Command().SetArgs([]string{"summary", "--template", "areas", "--areas", "radiology"})

	err := cli.Execute()

	assert.ErrorIs(t, err, views.ErrAreaNotFound)
}
