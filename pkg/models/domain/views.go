package domain

import "time"

// ViewMetadata describes where a view's data came from. Only descriptive text depends on
// the document source.
type ViewMetadata struct {
	Source       DocumentSource
	PeriodStart  string
	PeriodEnd    string
	TotalRecords int64
	Note         string
	GeneratedAt  time.Time
}

type AreaView struct {
	Kind              AreaKind
	Title             string
	CostTotal         float64
	PatientsServed    int64
	CostAverage       float64
	AverageStay       float64
	PercentageOfTotal float64
	// Estimated marks figures produced from fixed ratios rather than observed in the document.
	Estimated     bool
	Note          string
	CostBreakdown []CostCategoryAmount
	Reasons       []ReasonShare
	Supplies      []SupplyEstimate
}

type CostCategoryAmount struct {
	Category   CostCategory
	Percentage float64
	Amount     float64
}

type ReasonShare struct {
	Reason     string
	Percentage float64
}

type SupplyEstimate struct {
	SupplyItem
	MonthlyCost float64
}

type AreaBundle struct {
	Areas    []AreaView
	Metadata ViewMetadata
}

type RegionLevel string

const (
	RegionLevelDistrict RegionLevel = "district"
	RegionLevelState    RegionLevel = "state"
)

type RegionCost struct {
	Name         string
	AverageCost  float64
	Patients     int64
	TotalBilled  float64
	PatientShare float64
}

type GeographicView struct {
	Level   RegionLevel
	Regions []RegionCost
}

type MotiveCost struct {
	Motive      string
	AverageCost float64
	Patients    int64
	TotalBilled float64
	AverageStay float64
	CaseShare   float64
}

type TrendPoint struct {
	Period      string // YYYY-MM
	Label       string
	TotalBilled float64
	AverageCost float64
	Patients    int64
	AverageStay float64
}

// ChangeRate holds month-over-month percentage changes against the previous present period.
type ChangeRate struct {
	Period            string
	Label             string
	BilledChange      float64
	PatientsChange    float64
	AverageCostChange float64
}

// ServiceSplit apportions a month's billing across areas with fixed shares. It is an estimate.
type ServiceSplit struct {
	Period     string
	Label      string
	Emergency  float64
	Inpatient  float64
	Laboratory float64
}

type TrendsView struct {
	Points      []TrendPoint
	ChangeRates []ChangeRate
	Splits      []ServiceSplit
	Metadata    ViewMetadata
}

type ModelMetricView struct {
	Precision string
	Algorithm string
	// Values holds the model-specific figures in display order.
	Values []NamedValue
}

type NamedValue struct {
	Name  string
	Value float64
}

type PredictiveView struct {
	DemandForecasts []DemandForecast
	CostForecasts   []CostForecast
	Segments        []ClusterAssignment
	Alerts          []PredictiveAlert
	Demand          ModelMetricView
	Costs           ModelMetricView
	Clustering      ModelMetricView
	AvailableModels map[string]bool
	ModelVersion    string
	// RealData is false when the placeholder dataset was substituted.
	RealData    bool
	LastUpdated string
	Metadata    ViewMetadata
}

type OverviewContextKind string

const (
	OverviewEmergency OverviewContextKind = "emergency"
	OverviewInpatient OverviewContextKind = "inpatient"
	OverviewCombined  OverviewContextKind = "combined"
)

type DistributionEntry struct {
	Label      string
	Total      float64
	Count      int64
	Percentage float64
}

type OverviewContext struct {
	Kind          OverviewContextKind
	TotalBilled   float64
	AverageCost   float64
	Patients      int64
	AverageStay   float64
	ChangePercent float64
	Distribution  []DistributionEntry
	TopEntries    []DistributionEntry
	Alerts        []Alert
}

type OverviewView struct {
	Contexts []OverviewContext
	Metadata ViewMetadata
}

// ModelPrecision summarizes the upstream predictive models for report metadata.
type ModelPrecision struct {
	Available   bool
	Kind        string
	Version     string
	Note        string
	Models      []ModelPrecisionEntry
	Limitations []string
}

type ModelPrecisionEntry struct {
	Name      string
	Algorithm string
	Precision string
	Figures   []NamedValue
	Note      string
}
