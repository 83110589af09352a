package domain

// AnalyticsDocument is the aggregated metrics document produced upstream by the batch
// pipeline. It is read-only for the lifetime of a request.
type AnalyticsDocument struct {
	Timestamp        string                  `json:"timestamp,omitempty"`
	PrincipalMetrics PrincipalMetrics        `json:"metricas_principales"`
	Services         Breakdown[ServiceStats] `json:"analisis_servicios"`
	DischargeMotives Breakdown[MotiveStats]  `json:"analisis_motivos_alta"`
	Geography        Geography               `json:"analisis_geografico"`
	MonthlyTrends    map[string]MonthlyTrend `json:"tendencias_temporales"`
	Alerts           []Alert                 `json:"alertas"`
	Predictive       PredictiveSummary       `json:"machine_learning"`
	Metadata         DocumentMetadata        `json:"metadatos"`
}

type PrincipalMetrics struct {
	Financial   FinancialMetrics   `json:"financieras"`
	Operational OperationalMetrics `json:"operacionales"`
}

type FinancialMetrics struct {
	TotalBilled     float64 `json:"total_facturado"`
	TotalDirectCost float64 `json:"total_costo_directo"`
	AverageCost     float64 `json:"costo_promedio"`
	GrossMargin     float64 `json:"margen_bruto"` // percent
}

type OperationalMetrics struct {
	Patients          int64   `json:"total_pacientes"`
	PatientsLastMonth int64   `json:"pacientes_ultimo_mes"`
	AverageStay       float64 `json:"estancia_promedio"` // days
	MortalityRate     float64 `json:"tasa_mortalidad"`   // percent
}

// ServiceStats is one department entry of the service breakdown.
type ServiceStats struct {
	TotalBilled    float64 `json:"total_facturado"`
	AverageCost    float64 `json:"costo_promedio"`
	Patients       int64   `json:"total_pacientes"`
	AverageStay    float64 `json:"estancia_promedio"`
	AdmissionShare float64 `json:"porcentaje_ingresos"`
}

// MotiveStats is one discharge-reason entry of the motive breakdown.
type MotiveStats struct {
	TotalBilled float64 `json:"total_facturado"`
	AverageCost float64 `json:"costo_promedio"`
	Patients    int64   `json:"total_pacientes"`
	AverageStay float64 `json:"estancia_promedio"`
	CaseShare   float64 `json:"porcentaje_casos"`
}

// RegionStats is shared by district (alcaldia) and state entries.
type RegionStats struct {
	AverageCost  float64 `json:"costo_promedio"`
	Patients     int64   `json:"total_pacientes"`
	TotalBilled  float64 `json:"total_facturado"`
	PatientShare float64 `json:"porcentaje_pacientes"`
}

type Geography struct {
	Districts Breakdown[RegionStats] `json:"alcaldias"`
	States    Breakdown[RegionStats] `json:"estados"`
}

// MonthlyTrend is keyed by period "YYYY-MM" in AnalyticsDocument.MonthlyTrends.
type MonthlyTrend struct {
	TotalBilled float64 `json:"total_facturado"`
	AverageCost float64 `json:"costo_promedio"`
	Patients    int64   `json:"total_pacientes"`
	AverageStay float64 `json:"estancia_promedio"`
}

type AlertSeverity string

const (
	AlertSeverityLow    AlertSeverity = "baja"
	AlertSeverityMedium AlertSeverity = "media"
	AlertSeverityHigh   AlertSeverity = "alta"
)

type AlertCategory string

const (
	AlertCategoryOperational AlertCategory = "operacional"
	AlertCategoryFinancial   AlertCategory = "financiero"
	AlertCategoryClinical    AlertCategory = "clinico"
)

type Alert struct {
	Title       string        `json:"titulo"`
	Description string        `json:"descripcion"`
	Severity    AlertSeverity `json:"severidad"`
	Category    AlertCategory `json:"tipo"`
	Value       float64       `json:"valor,omitempty"`
}

type DocumentMetadata struct {
	TotalRecords  int64      `json:"total_registros_procesados"`
	DetailRecords int64      `json:"registros_detalle"`
	Period        DataPeriod `json:"periodo_datos"`
}

type DataPeriod struct {
	Start string `json:"inicio"`
	End   string `json:"fin"`
}

// FilterAlerts returns the alerts whose category is one of categories, in source order.
func FilterAlerts(alerts []Alert, categories ...AlertCategory) []Alert {
	filtered := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		for _, c := range categories {
			if a.Category == c {
				filtered = append(filtered, a)
				break
			}
		}
	}
	return filtered
}
