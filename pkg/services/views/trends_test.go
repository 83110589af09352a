package views

import (
	"testing"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrends_ChangeRates(t *testing.T) {
	tr := newTestTransformer()
	doc := decodeDocument(t, `{
		"tendencias_temporales": {
			"2025-03": {"total_facturado": 150, "total_pacientes": 0, "costo_promedio": 30},
			"2025-01": {"total_facturado": 100, "total_pacientes": 10, "costo_promedio": 10},
			"2025-02": {"total_facturado": 0, "total_pacientes": 0, "costo_promedio": 20}
		}
	}`)

	view := tr.Trends(domain.LoadedDocument{Document: doc, Source: domain.SourceCanonical})

	require.Len(t, view.Points, 3)
	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03"},
		[]string{view.Points[0].Period, view.Points[1].Period, view.Points[2].Period})
	assert.Equal(t, "Jan 2025", view.Points[0].Label)

	require.Len(t, view.ChangeRates, 3)
	assert.Equal(t, domain.ChangeRate{Period: "2025-01", Label: "Jan 2025"}, view.ChangeRates[0])

	feb := view.ChangeRates[1]
	assert.Equal(t, -100.0, feb.BilledChange)
	assert.Equal(t, -100.0, feb.PatientsChange)
	assert.Equal(t, 100.0, feb.AverageCostChange)

	mar := view.ChangeRates[2]
	assert.Equal(t, 0.0, mar.BilledChange, "previous of zero must yield zero")
	assert.Equal(t, 0.0, mar.PatientsChange)
	assert.Equal(t, 50.0, mar.AverageCostChange)
}

func TestTrends_ServiceSplit(t *testing.T) {
	tr := newTestTransformer()
	doc := decodeDocument(t, `{"tendencias_temporales": {"2025-01": {"total_facturado": 1000}}}`)

	view := tr.Trends(domain.LoadedDocument{Document: doc, Source: domain.SourceCanonical})

	require.Len(t, view.Splits, 1)
	assert.InDelta(t, 860.0, view.Splits[0].Emergency, 1e-9)
	assert.InDelta(t, 140.0, view.Splits[0].Inpatient, 1e-9)
	assert.InDelta(t, 50.0, view.Splits[0].Laboratory, 1e-9)
}

func TestTrends_GapUsesNearestEarlierPeriod(t *testing.T) {
	doc := decodeDocument(t, `{
		"tendencias_temporales": {
			"2025-01": {"total_facturado": 100},
			"2025-04": {"total_facturado": 200}
		}
	}`)

	rates := ChangeRates(TrendPoints(doc))
	require.Len(t, rates, 2)
	assert.Equal(t, 100.0, rates[1].BilledChange)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Dec 2024", PeriodLabel("2024-12"))
	assert.Equal(t, "Q1-2025", PeriodLabel("Q1-2025"))
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 50.0, PercentChange(10, 15))
	assert.Equal(t, -50.0, PercentChange(10, 5))
	assert.Equal(t, 0.0, PercentChange(0, 15))
}
