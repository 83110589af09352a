package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestBreakdown_PreservesSourceOrder(t *testing.T) {
	raw := `{"ZETA": {"total_facturado": 1}, "ALPHA": {"total_facturado": 2}, "MID": {"total_facturado": 3}}`

	var b Breakdown[ServiceStats]
	require.NoError(t, json.Unmarshal([]byte(raw), &b))

	var keys []string
	for _, e := range b.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"ZETA", "ALPHA", "MID"}, keys)

	head := b.Head(2)
	require.Len(t, head, 2)
	assert.Equal(t, "ALPHA", head[1].Key)
	assert.Equal(t, 2.0, head[1].Value.TotalBilled)

	out, err := json.Marshal(b)
	require.NoError(t, err)

	var marshalled []string
	gjson.ParseBytes(out).ForEach(func(key, value gjson.Result) bool {
		marshalled = append(marshalled, key.String())
		return true
	})
	assert.Equal(t, []string{"ZETA", "ALPHA", "MID"}, marshalled)
	assert.Equal(t, 3.0, gjson.GetBytes(out, "MID.total_facturado").Float())
}

func TestBreakdown_EmptyValues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "null", raw: `null`},
		{name: "empty object", raw: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Breakdown[MotiveStats]
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &b))
			assert.Equal(t, 0, b.Len())
			assert.Empty(t, b.Entries())
		})
	}

	var zero Breakdown[MotiveStats]
	_, ok := zero.Get("missing")
	assert.False(t, ok)
	out, err := json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestAnalyticsDocument_MissingSectionsDecodeToZero(t *testing.T) {
	var doc AnalyticsDocument
	require.NoError(t, json.Unmarshal([]byte(`{"metricas_principales": {"financieras": {"total_facturado": 10}}}`), &doc))

	assert.Equal(t, 10.0, doc.PrincipalMetrics.Financial.TotalBilled)
	assert.Zero(t, doc.PrincipalMetrics.Operational.Patients)
	assert.Equal(t, 0, doc.Services.Len())
	assert.False(t, doc.Predictive.Available)
}

func TestFilterAlerts(t *testing.T) {
	alerts := []Alert{
		{Title: "a", Category: AlertCategoryOperational},
		{Title: "b", Category: AlertCategoryFinancial},
		{Title: "c", Category: AlertCategoryClinical},
	}

	got := FilterAlerts(alerts, AlertCategoryOperational, AlertCategoryClinical)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, "c", got[1].Title)
	assert.Empty(t, FilterAlerts(nil, AlertCategoryFinancial))
}
