package api

import "time"

type Metadata struct {
	Source       string    `json:"source"`
	RealData     bool      `json:"real_data"`
	PeriodStart  string    `json:"period_start,omitempty"`
	PeriodEnd    string    `json:"period_end,omitempty"`
	TotalRecords int64     `json:"total_records"`
	Note         string    `json:"note"`
	GeneratedAt  time.Time `json:"generated_at"`
}

type CostCategory struct {
	Category   string  `json:"category"`
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

type Reason struct {
	Reason     string  `json:"reason"`
	Percentage float64 `json:"percentage"`
}

type Supply struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	MonthlyQuantity float64 `json:"monthly_quantity"`
	UnitCost        float64 `json:"unit_cost"`
	MonthlyCost     float64 `json:"monthly_cost"`
}

type Area struct {
	Area              string         `json:"area"`
	Title             string         `json:"title"`
	CostTotal         float64        `json:"cost_total"`
	PatientsServed    int64          `json:"patients_served"`
	CostAverage       float64        `json:"cost_average"`
	AverageStay       float64        `json:"average_stay"`
	PercentageOfTotal float64        `json:"percentage_of_total"`
	Estimated         bool           `json:"estimated"`
	Note              string         `json:"note,omitempty"`
	CostBreakdown     []CostCategory `json:"cost_breakdown"`
	Reasons           []Reason       `json:"reasons"`
	Supplies          []Supply       `json:"supplies"`
}

type AreasResponse struct {
	Areas    []Area   `json:"areas"`
	Metadata Metadata `json:"metadata"`
}

type Region struct {
	Name         string  `json:"name"`
	AverageCost  float64 `json:"average_cost"`
	Patients     int64   `json:"patients"`
	TotalBilled  float64 `json:"total_billed"`
	PatientShare float64 `json:"patient_share"`
}

type GeographicResponse struct {
	Level   string   `json:"level"`
	Regions []Region `json:"regions"`
}

type Motive struct {
	Motive      string  `json:"motive"`
	AverageCost float64 `json:"average_cost"`
	Patients    int64   `json:"patients"`
	TotalBilled float64 `json:"total_billed"`
	AverageStay float64 `json:"average_stay"`
	CaseShare   float64 `json:"case_share"`
}

type MotivesResponse struct {
	Motives []Motive `json:"motives"`
}

type TrendPoint struct {
	Period      string  `json:"period"`
	Label       string  `json:"label"`
	TotalBilled float64 `json:"total_billed"`
	AverageCost float64 `json:"average_cost"`
	Patients    int64   `json:"patients"`
	AverageStay float64 `json:"average_stay"`
}

type ChangeRate struct {
	Period            string  `json:"period"`
	Label             string  `json:"label"`
	BilledChange      float64 `json:"billed_change"`
	PatientsChange    float64 `json:"patients_change"`
	AverageCostChange float64 `json:"average_cost_change"`
}

type ServiceSplit struct {
	Period     string  `json:"period"`
	Label      string  `json:"label"`
	Emergency  float64 `json:"emergency"`
	Inpatient  float64 `json:"inpatient"`
	Laboratory float64 `json:"laboratory"`
	Estimated  bool    `json:"estimated"`
}

type TrendsResponse struct {
	Points        []TrendPoint   `json:"points"`
	ChangeRates   []ChangeRate   `json:"change_rates"`
	ServiceSplits []ServiceSplit `json:"service_splits"`
	Metadata      Metadata       `json:"metadata"`
}

type DemandForecast struct {
	Date               string  `json:"date"`
	PredictedPatients  float64 `json:"predicted_patients"`
	PredictedEmergency float64 `json:"predicted_emergency"`
	PredictedInpatient float64 `json:"predicted_inpatient"`
}

type CostForecast struct {
	Label     string   `json:"label"`
	Actual    *float64 `json:"actual"`
	Predicted float64  `json:"predicted"`
	Kind      string   `json:"kind"`
}

type Segment struct {
	Service      string  `json:"service"`
	ClusterID    int     `json:"cluster_id"`
	ClusterLabel string  `json:"cluster_label"`
	Patients     int64   `json:"patients"`
	AverageCost  float64 `json:"average_cost"`
	Share        float64 `json:"share"`
}

type PredictiveAlert struct {
	Service     string `json:"service"`
	Prediction  string `json:"prediction"`
	Confidence  string `json:"confidence"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type ModelMetric struct {
	Precision string       `json:"precision,omitempty"`
	Algorithm string       `json:"algorithm"`
	Values    []NamedValue `json:"values"`
}

type ModelMetrics struct {
	Demand     ModelMetric `json:"demand"`
	Costs      ModelMetric `json:"costs"`
	Clustering ModelMetric `json:"clustering"`
}

type PredictiveResponse struct {
	DemandForecasts []DemandForecast  `json:"demand_forecasts"`
	CostForecasts   []CostForecast    `json:"cost_forecasts"`
	Segments        []Segment         `json:"segments"`
	Alerts          []PredictiveAlert `json:"alerts"`
	Models          ModelMetrics      `json:"models"`
	AvailableModels map[string]bool   `json:"available_models"`
	ModelVersion    string            `json:"model_version"`
	LastUpdated     string            `json:"last_updated"`
	Metadata        Metadata          `json:"metadata"`
}

type Alert struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
	Category    string  `json:"category"`
	Value       float64 `json:"value,omitempty"`
}

type DistributionEntry struct {
	Label      string  `json:"label"`
	Total      float64 `json:"total"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type OverviewContext struct {
	Context       string              `json:"context"`
	TotalBilled   float64             `json:"total_billed"`
	AverageCost   float64             `json:"average_cost"`
	Patients      int64               `json:"patients"`
	AverageStay   float64             `json:"average_stay"`
	ChangePercent float64             `json:"change_percent"`
	Distribution  []DistributionEntry `json:"distribution"`
	TopEntries    []DistributionEntry `json:"top_entries"`
	Alerts        []Alert             `json:"alerts"`
}

type OverviewResponse struct {
	Contexts []OverviewContext `json:"contexts"`
	Metadata Metadata          `json:"metadata"`
}

// DownloadRequest keeps the camelCase flags the dashboard client posts.
type DownloadRequest struct {
	Template           string   `json:"template"`
	Format             string   `json:"format"`
	Period             string   `json:"period,omitempty"`
	Areas              []string `json:"areas,omitempty"`
	IncludeComparative bool     `json:"includeComparative"`
	IncludePredictions bool     `json:"includePredictions"`
	IncludeGraphics    bool     `json:"includeGraphics"`
	Archive            bool     `json:"archive"`
}
