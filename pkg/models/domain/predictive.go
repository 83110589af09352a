package domain

// PredictiveSummary is the optional "machine_learning" block of the document. The values
// are produced by simple statistical models upstream; nothing here is computed locally.
type PredictiveSummary struct {
	Available       bool                `json:"disponible"`
	Kind            string              `json:"tipo,omitempty"` // Estadistico_Simple, ML_Avanzado
	Note            string              `json:"nota,omitempty"`
	DemandForecasts []DemandForecast    `json:"predicciones_demanda,omitempty"`
	CostForecasts   []CostForecast      `json:"predicciones_costos,omitempty"`
	Clusters        []ClusterAssignment `json:"clustering_ml,omitempty"`
	Alerts          []PredictiveAlert   `json:"alertas_ml,omitempty"`
	Models          ModelSummary        `json:"resumen_modelos"`
}

type DemandForecast struct {
	Date               string  `json:"fecha"`
	PredictedPatients  float64 `json:"pacientes_predichos"`
	PredictedEmergency float64 `json:"urgencias_estimadas"`
	PredictedInpatient float64 `json:"hospitalizacion_estimada"`
}

type ForecastKind string

const (
	ForecastKindHistorical ForecastKind = "historico"
	ForecastKindForecast   ForecastKind = "prediccion"
)

type CostForecast struct {
	Label     string       `json:"name"`
	Actual    *float64     `json:"actual"` // nil for forecast periods
	Predicted float64      `json:"prediccion"`
	Kind      ForecastKind `json:"tipo"`
}

type ClusterAssignment struct {
	Service      string  `json:"servicio"`
	ClusterID    int     `json:"cluster"`
	ClusterLabel string  `json:"cluster_name"`
	Patients     int64   `json:"pacientes"`
	AverageCost  float64 `json:"costo_promedio"`
	TotalBilled  float64 `json:"total_facturado,omitempty"`
	Share        float64 `json:"porcentaje"`
}

type PredictiveAlert struct {
	ID           int      `json:"id"`
	Service      string   `json:"service"`
	Prediction   string   `json:"prediction"`
	Confidence   string   `json:"confidence"` // Alta, Media, Baja
	Impact       string   `json:"impact"`
	Description  string   `json:"descripcion"`
	CurrentValue *float64 `json:"valor_actual,omitempty"`
	Model        string   `json:"modelo_usado,omitempty"`
}

type ModelSummary struct {
	Version         string            `json:"version,omitempty"`
	Algorithms      map[string]string `json:"algoritmos_usados,omitempty"`
	Metrics         ModelMetrics      `json:"metricas"`
	AvailableModels map[string]bool   `json:"modelos_disponibles,omitempty"`
}

type ModelMetrics struct {
	Demand     DemandModelMetrics     `json:"demanda"`
	Costs      CostModelMetrics       `json:"costos"`
	Clustering ClusteringModelMetrics `json:"clustering"`
}

type DemandModelMetrics struct {
	EstimatedPrecision string  `json:"precision_estimada,omitempty"`
	DailyTrend         float64 `json:"tendencia_diaria"`
	HistoricalAverage  float64 `json:"promedio_historico"`
}

type CostModelMetrics struct {
	EstimatedPrecision string  `json:"precision_estimada,omitempty"`
	MonthlyGrowthPct   float64 `json:"crecimiento_mensual_pct"`
	MonthlyAverage     float64 `json:"promedio_mensual"`
}

type ClusteringModelMetrics struct {
	Clusters int `json:"n_clusters"`
	Services int `json:"n_servicios"`
}
