package views

import (
	"testing"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	tr := newTestTransformer()
	doc := decodeDocument(t, `{
		"metricas_principales": {"financieras": {"total_facturado": 500}, "operacionales": {"total_pacientes": 5}},
		"analisis_servicios": {
			"S1": {"total_facturado": 1}, "S2": {"total_facturado": 2}, "S3": {"total_facturado": 3},
			"S4": {"total_facturado": 4}, "S5": {"total_facturado": 5}
		},
		"analisis_motivos_alta": {"M1": {"porcentaje_casos": 70}, "M2": {"porcentaje_casos": 30}},
		"tendencias_temporales": {"2025-01": {"total_facturado": 100}, "2025-02": {"total_facturado": 110}},
		"alertas": [
			{"titulo": "ops", "tipo": "operacional"},
			{"titulo": "money", "tipo": "financiero"},
			{"titulo": "care", "tipo": "clinico"}
		]
	}`)

	view := tr.Overview(domain.LoadedDocument{Document: doc, Source: domain.SourceCanonical})
	require.Len(t, view.Contexts, 3)

	emergency, inpatient, combined := view.Contexts[0], view.Contexts[1], view.Contexts[2]

	assert.Equal(t, domain.OverviewEmergency, emergency.Kind)
	assert.Equal(t, 500.0, emergency.TotalBilled)
	assert.InDelta(t, 10.0, emergency.ChangePercent, 1e-9)
	assert.Len(t, emergency.Distribution, 5)
	require.Len(t, emergency.Alerts, 2)
	assert.Equal(t, "care", emergency.Alerts[1].Title)

	assert.Len(t, inpatient.Distribution, 2)
	assert.Equal(t, 70.0, inpatient.Distribution[0].Percentage)
	require.Len(t, inpatient.Alerts, 1)
	assert.Equal(t, "money", inpatient.Alerts[0].Title)

	require.Len(t, combined.Distribution, 6)
	assert.Equal(t, "Service: S1", combined.Distribution[0].Label)
	assert.Equal(t, "Motive: M1", combined.Distribution[4].Label)
	assert.Len(t, combined.Alerts, 3)
	assert.Len(t, combined.TopEntries, 5)
}

func TestGeographicAndMotives(t *testing.T) {
	tr := newTestTransformer()
	doc := decodeDocument(t, `{
		"analisis_geografico": {
			"alcaldias": {"IZTAPALAPA": {"total_pacientes": 10, "porcentaje_pacientes": 40}, "COYOACAN": {"total_pacientes": 5}},
			"estados": {"CDMX": {"total_pacientes": 15}}
		},
		"analisis_motivos_alta": {"MEJORIA": {"total_pacientes": 9, "estancia_promedio": 2.5}}
	}`)

	districts := tr.Geographic(doc, "")
	assert.Equal(t, domain.RegionLevelDistrict, districts.Level)
	require.Len(t, districts.Regions, 2)
	assert.Equal(t, "IZTAPALAPA", districts.Regions[0].Name)
	assert.Equal(t, 40.0, districts.Regions[0].PatientShare)

	states := tr.Geographic(doc, domain.RegionLevelState)
	require.Len(t, states.Regions, 1)
	assert.Equal(t, "CDMX", states.Regions[0].Name)

	motives := tr.Motives(doc)
	require.Len(t, motives, 1)
	assert.Equal(t, domain.MotiveCost{Motive: "MEJORIA", Patients: 9, AverageStay: 2.5}, motives[0])

	assert.Empty(t, tr.Motives(decodeDocument(t, `{}`)))
}
