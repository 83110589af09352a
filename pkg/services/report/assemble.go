package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/views"
)

const topServicesLimit = 10

// builder accumulates sections in assembly order and keeps the first marshal error.
type builder struct {
	sections []domain.ReportSection
	err      error
}

func (b *builder) add(key string, value any) {
	if b.err != nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		b.err = fmt.Errorf("failed to encode section %s: %w", key, err)
		return
	}
	b.sections = append(b.sections, domain.ReportSection{Key: key, Value: raw})
}

type assembly struct {
	transformer *views.Transformer
	loaded      domain.LoadedDocument
	doc         *domain.AnalyticsDocument
	request     Request
	areas       []domain.AreaKind
	meta        metadata
}

func (a *assembly) financial(b *builder) {
	f := a.doc.PrincipalMetrics.Financial
	o := a.doc.PrincipalMetrics.Operational
	b.add("executive_summary", executiveSummary{
		TotalBilled:   f.TotalBilled,
		TotalPatients: o.Patients,
		AverageCost:   f.AverageCost,
		GrossMargin:   f.GrossMargin,
		AverageStay:   o.AverageStay,
		MortalityRate: o.MortalityRate,
	})
	b.add("services", serviceRows(a.doc))
	b.add("alerts", alertRows(a.doc.Alerts))
	if a.request.IncludeComparative {
		b.add("comparative", changeRows(views.ChangeRates(views.TrendPoints(a.doc))))
	}
	if a.request.IncludePredictions && a.doc.Predictive.Available {
		b.add("predictions", newPredictions(a.doc.Predictive))
	}
	b.add("metadata", a.meta)
}

func (a *assembly) areaSections(b *builder) error {
	selected := make([]string, 0, len(a.areas))
	rows := make([]areaRow, 0, len(a.areas))
	for _, kind := range a.areas {
		view, err := a.transformer.Area(a.doc, kind)
		if err != nil {
			return err
		}
		selected = append(selected, string(kind))
		rows = append(rows, toAreaRow(view))
	}

	var total totalSummary
	for _, e := range a.doc.Services.Entries() {
		total.TotalBilled += e.Value.TotalBilled
		total.TotalPatients += e.Value.Patients
	}

	b.add("selected_areas", selected)
	b.add("area_analysis", rows)
	b.add("department_supplies", a.departmentSupplies())
	b.add("total_summary", total)
	b.add("metadata", a.meta)
	return nil
}

// departmentSupplies covers the departments that make up the selected areas. Laboratory has
// no department of its own.
func (a *assembly) departmentSupplies() []departmentSupplies {
	emergency := slices.Contains(a.areas, domain.AreaEmergency)
	inpatient := slices.Contains(a.areas, domain.AreaInpatient)

	out := make([]departmentSupplies, 0)
	for _, e := range a.doc.Services.Entries() {
		isEmergency := a.transformer.IsEmergency(e.Key)
		if (isEmergency && !emergency) || (!isEmergency && !inpatient) {
			continue
		}
		out = append(out, departmentSupplies{
			Department:  e.Key,
			TotalBilled: e.Value.TotalBilled,
			Supplies:    estimatedSupplies(e.Key, e.Value.TotalBilled),
		})
	}
	return out
}

func estimatedSupplies(department string, total float64) []supplyRow {
	type share struct {
		name string
		pct  float64
	}
	var shares []share
	switch strings.ToUpper(department) {
	case "URGENCIAS", "EMERGENCY":
		shares = []share{{"Saline solution", 0.05}, {"Emergency medication", 0.15}, {"Wound care material", 0.08}}
	case "CIRUGÍA", "CIRUGIA", "SURGERY":
		shares = []share{{"Surgical material", 0.25}, {"Anesthetics", 0.12}, {"Sutures", 0.06}}
	default:
		shares = []share{{"General supplies", 0.10}}
	}

	rows := make([]supplyRow, 0, len(shares))
	for _, s := range shares {
		rows = append(rows, supplyRow{Name: s.name, EstimatedCost: total * s.pct})
	}
	return rows
}

func (a *assembly) services(b *builder) {
	rows := serviceRows(a.doc)

	top := slices.Clone(rows)
	slices.SortStableFunc(top, func(x, y serviceRow) int {
		return cmp.Compare(y.TotalBilled, x.TotalBilled)
	})
	if len(top) > topServicesLimit {
		top = top[:topServicesLimit]
	}

	b.add("services", rows)
	b.add("top_services", top)
	b.add("geographic_distribution", geographicDistribution{
		Districts: regionRows(a.transformer.Geographic(a.doc, domain.RegionLevelDistrict)),
		States:    regionRows(a.transformer.Geographic(a.doc, domain.RegionLevelState)),
	})
	b.add("metadata", a.meta)
}

func (a *assembly) trends(b *builder) {
	points := views.TrendPoints(a.doc)
	trends := make([]trendRow, 0, len(points))
	for _, p := range points {
		trends = append(trends, trendRow{
			Period:        p.Period,
			Label:         p.Label,
			TotalBilled:   p.TotalBilled,
			AverageCost:   p.AverageCost,
			TotalPatients: p.Patients,
			AverageStay:   p.AverageStay,
		})
	}

	b.add("monthly_trends", trends)
	b.add("monthly_variations", changeRows(views.ChangeRates(points)))
	b.add("future_predictions", demandRows(a.doc.Predictive.DemandForecasts))
	b.add("trend_alerts", alertRows(domain.FilterAlerts(a.doc.Alerts, domain.AlertCategoryOperational)))
	b.add("metadata", a.meta)
}

func (a *assembly) custom(b *builder) {
	areas := make([]string, 0, len(a.areas))
	for _, k := range a.areas {
		areas = append(areas, string(k))
	}
	b.add("configuration", configuration{
		Template:           a.request.Template,
		Format:             a.request.Format,
		Period:             a.request.Period,
		Areas:              areas,
		IncludeComparative: a.request.IncludeComparative,
		IncludePredictions: a.request.IncludePredictions,
		IncludeGraphics:    a.request.IncludeGraphics,
	})

	for _, kind := range a.areas {
		switch kind {
		case domain.AreaEmergency:
			b.add("emergency", a.emergencyDepartment())
		case domain.AreaInpatient:
			rows := make([]serviceRow, 0)
			for _, e := range a.doc.Services.Entries() {
				if !a.transformer.IsEmergency(e.Key) {
					rows = append(rows, toServiceRow(e.Key, e.Value))
				}
			}
			b.add("inpatient", rows)
		case domain.AreaLaboratory:
			b.add("laboratory", laboratoryEstimate{
				Estimate:          "Estimated from hospital standards",
				PercentageOfTotal: round2(a.transformer.Ratios().LaboratoryBillingShare * 100),
			})
		}
	}
	b.add("metadata", a.meta)
}

// emergencyDepartment returns the first emergency department, or an empty object.
func (a *assembly) emergencyDepartment() any {
	for _, e := range a.doc.Services.Entries() {
		if a.transformer.IsEmergency(e.Key) {
			return toServiceRow(e.Key, e.Value)
		}
	}
	return struct{}{}
}

// changeRows drops the first point, which has no previous period.
func changeRows(rates []domain.ChangeRate) []changeRow {
	rows := make([]changeRow, 0, len(rates))
	for i, r := range rates {
		if i == 0 {
			continue
		}
		rows = append(rows, changeRow{
			Period:            r.Period,
			BilledChange:      round2(r.BilledChange),
			PatientsChange:    round2(r.PatientsChange),
			AverageCostChange: round2(r.AverageCostChange),
		})
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
