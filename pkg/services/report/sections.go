package report

import (
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// Section payloads. Field order here is the column order of every encoder.

type executiveSummary struct {
	TotalBilled   float64 `json:"total_billed"`
	TotalPatients int64   `json:"total_patients"`
	AverageCost   float64 `json:"average_cost"`
	GrossMargin   float64 `json:"gross_margin"`
	AverageStay   float64 `json:"average_stay"`
	MortalityRate float64 `json:"mortality_rate"`
}

type serviceRow struct {
	Service        string  `json:"service"`
	TotalBilled    float64 `json:"total_billed"`
	TotalPatients  int64   `json:"total_patients"`
	AverageCost    float64 `json:"average_cost"`
	AverageStay    float64 `json:"average_stay"`
	AdmissionShare float64 `json:"admission_share"`
}

type regionRow struct {
	Region        string  `json:"region"`
	TotalBilled   float64 `json:"total_billed"`
	TotalPatients int64   `json:"total_patients"`
	AverageCost   float64 `json:"average_cost"`
	PatientShare  float64 `json:"patient_share"`
}

type geographicDistribution struct {
	Districts []regionRow `json:"districts"`
	States    []regionRow `json:"states"`
}

type alertRow struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
	Category    string  `json:"category"`
	Value       float64 `json:"value"`
}

type changeRow struct {
	Period            string  `json:"period"`
	BilledChange      float64 `json:"billed_change"`
	PatientsChange    float64 `json:"patients_change"`
	AverageCostChange float64 `json:"average_cost_change"`
}

type trendRow struct {
	Period        string  `json:"period"`
	Label         string  `json:"label"`
	TotalBilled   float64 `json:"total_billed"`
	AverageCost   float64 `json:"average_cost"`
	TotalPatients int64   `json:"total_patients"`
	AverageStay   float64 `json:"average_stay"`
}

type demandRow struct {
	Date               string  `json:"date"`
	PredictedPatients  float64 `json:"predicted_patients"`
	PredictedEmergency float64 `json:"predicted_emergency"`
	PredictedInpatient float64 `json:"predicted_inpatient"`
}

type costForecastRow struct {
	Label     string   `json:"label"`
	Actual    *float64 `json:"actual"`
	Predicted float64  `json:"predicted"`
	Kind      string   `json:"kind"`
}

type predictiveAlertRow struct {
	Service     string `json:"service"`
	Prediction  string `json:"prediction"`
	Confidence  string `json:"confidence"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

type predictions struct {
	Demand []demandRow          `json:"demand"`
	Costs  []costForecastRow    `json:"costs"`
	Alerts []predictiveAlertRow `json:"alerts"`
}

type costCategoryRow struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

type reasonRow struct {
	Reason     string  `json:"reason"`
	Percentage float64 `json:"percentage"`
}

type areaRow struct {
	Area              string            `json:"area"`
	Title             string            `json:"title"`
	CostTotal         float64           `json:"cost_total"`
	PatientsServed    int64             `json:"patients_served"`
	CostAverage       float64           `json:"cost_average"`
	AverageStay       float64           `json:"average_stay"`
	PercentageOfTotal float64           `json:"percentage_of_total"`
	Estimated         bool              `json:"estimated"`
	Note              string            `json:"note,omitempty"`
	CostBreakdown     []costCategoryRow `json:"cost_breakdown"`
	Reasons           []reasonRow       `json:"reasons"`
}

type supplyRow struct {
	Name          string  `json:"name"`
	EstimatedCost float64 `json:"estimated_cost"`
}

type departmentSupplies struct {
	Department  string      `json:"department"`
	TotalBilled float64     `json:"total_billed"`
	Supplies    []supplyRow `json:"supplies"`
}

type totalSummary struct {
	TotalBilled   float64 `json:"total_billed"`
	TotalPatients int64   `json:"total_patients"`
}

type laboratoryEstimate struct {
	Estimate          string  `json:"estimate"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
}

type configuration struct {
	Template           string   `json:"template"`
	Format             string   `json:"format"`
	Period             string   `json:"period,omitempty"`
	Areas              []string `json:"areas"`
	IncludeComparative bool     `json:"include_comparative"`
	IncludePredictions bool     `json:"include_predictions"`
	IncludeGraphics    bool     `json:"include_graphics"`
}

type period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type modelEntry struct {
	Name      string             `json:"name"`
	Algorithm string             `json:"algorithm"`
	Precision string             `json:"precision,omitempty"`
	Figures   map[string]float64 `json:"figures,omitempty"`
	Note      string             `json:"note"`
}

type modelPrecision struct {
	Available   bool         `json:"available"`
	Kind        string       `json:"kind,omitempty"`
	Version     string       `json:"version,omitempty"`
	Note        string       `json:"note,omitempty"`
	Models      []modelEntry `json:"models,omitempty"`
	Limitations []string     `json:"limitations,omitempty"`
}

type metadata struct {
	GeneratedAt    string         `json:"generated_at"`
	Source         string         `json:"source"`
	Period         period         `json:"period"`
	TotalRecords   int64          `json:"total_records"`
	Note           string         `json:"note"`
	ModelPrecision modelPrecision `json:"model_precision"`
}

func newMetadata(loaded domain.LoadedDocument, precision domain.ModelPrecision, now time.Time) metadata {
	doc := loaded.Document
	mp := modelPrecision{
		Available:   precision.Available,
		Kind:        precision.Kind,
		Version:     precision.Version,
		Note:        precision.Note,
		Limitations: precision.Limitations,
	}
	for _, m := range precision.Models {
		entry := modelEntry{Name: m.Name, Algorithm: m.Algorithm, Precision: m.Precision, Note: m.Note}
		if len(m.Figures) > 0 {
			entry.Figures = make(map[string]float64, len(m.Figures))
			for _, f := range m.Figures {
				entry.Figures[f.Name] = f.Value
			}
		}
		mp.Models = append(mp.Models, entry)
	}

	return metadata{
		GeneratedAt:    now.UTC().Format(time.RFC3339),
		Source:         string(loaded.Source),
		Period:         period{Start: doc.Metadata.Period.Start, End: doc.Metadata.Period.End},
		TotalRecords:   doc.Metadata.TotalRecords,
		Note:           loaded.Source.Note(),
		ModelPrecision: mp,
	}
}

func serviceRows(doc *domain.AnalyticsDocument) []serviceRow {
	entries := doc.Services.Entries()
	rows := make([]serviceRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toServiceRow(e.Key, e.Value))
	}
	return rows
}

func toServiceRow(name string, s domain.ServiceStats) serviceRow {
	return serviceRow{
		Service:        name,
		TotalBilled:    s.TotalBilled,
		TotalPatients:  s.Patients,
		AverageCost:    s.AverageCost,
		AverageStay:    s.AverageStay,
		AdmissionShare: s.AdmissionShare,
	}
}

func alertRows(alerts []domain.Alert) []alertRow {
	rows := make([]alertRow, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, alertRow{
			Title:       a.Title,
			Description: a.Description,
			Severity:    string(a.Severity),
			Category:    string(a.Category),
			Value:       a.Value,
		})
	}
	return rows
}

func regionRows(view domain.GeographicView) []regionRow {
	rows := make([]regionRow, 0, len(view.Regions))
	for _, r := range view.Regions {
		rows = append(rows, regionRow{
			Region:        r.Name,
			TotalBilled:   r.TotalBilled,
			TotalPatients: r.Patients,
			AverageCost:   r.AverageCost,
			PatientShare:  r.PatientShare,
		})
	}
	return rows
}

func toAreaRow(v domain.AreaView) areaRow {
	row := areaRow{
		Area:              string(v.Kind),
		Title:             v.Title,
		CostTotal:         v.CostTotal,
		PatientsServed:    v.PatientsServed,
		CostAverage:       v.CostAverage,
		AverageStay:       v.AverageStay,
		PercentageOfTotal: v.PercentageOfTotal,
		Estimated:         v.Estimated,
		Note:              v.Note,
		CostBreakdown:     make([]costCategoryRow, 0, len(v.CostBreakdown)),
		Reasons:           make([]reasonRow, 0, len(v.Reasons)),
	}
	for _, c := range v.CostBreakdown {
		row.CostBreakdown = append(row.CostBreakdown, costCategoryRow{
			Category:   c.Category.Label(),
			Percentage: c.Percentage,
			Amount:     c.Amount,
		})
	}
	for _, r := range v.Reasons {
		row.Reasons = append(row.Reasons, reasonRow{Reason: r.Reason, Percentage: r.Percentage})
	}
	return row
}

func demandRows(forecasts []domain.DemandForecast) []demandRow {
	rows := make([]demandRow, 0, len(forecasts))
	for _, f := range forecasts {
		rows = append(rows, demandRow{
			Date:               f.Date,
			PredictedPatients:  f.PredictedPatients,
			PredictedEmergency: f.PredictedEmergency,
			PredictedInpatient: f.PredictedInpatient,
		})
	}
	return rows
}

func newPredictions(ml domain.PredictiveSummary) predictions {
	p := predictions{
		Demand: demandRows(ml.DemandForecasts),
		Costs:  make([]costForecastRow, 0, len(ml.CostForecasts)),
		Alerts: make([]predictiveAlertRow, 0, len(ml.Alerts)),
	}
	for _, c := range ml.CostForecasts {
		p.Costs = append(p.Costs, costForecastRow{Label: c.Label, Actual: c.Actual, Predicted: c.Predicted, Kind: string(c.Kind)})
	}
	for _, a := range ml.Alerts {
		p.Alerts = append(p.Alerts, predictiveAlertRow{
			Service:     a.Service,
			Prediction:  a.Prediction,
			Confidence:  a.Confidence,
			Impact:      a.Impact,
			Description: a.Description,
		})
	}
	return p
}
