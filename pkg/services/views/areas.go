package views

import (
	"fmt"
	"math"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// Areas builds the view of every known area.
func (t *Transformer) Areas(loaded domain.LoadedDocument) domain.AreaBundle {
	bundle := domain.AreaBundle{Metadata: t.metadata(loaded)}
	for _, kind := range domain.AllAreas() {
		view, _ := t.Area(loaded.Document, kind)
		bundle.Areas = append(bundle.Areas, view)
	}
	return bundle
}

// AreaByName resolves name to an area kind and builds its view.
func (t *Transformer) AreaByName(doc *domain.AnalyticsDocument, name string) (domain.AreaView, error) {
	kind, err := domain.ParseAreaKind(name)
	if err != nil {
		return domain.AreaView{}, fmt.Errorf("%w: %q", ErrAreaNotFound, name)
	}
	return t.Area(doc, kind)
}

func (t *Transformer) Area(doc *domain.AnalyticsDocument, kind domain.AreaKind) (domain.AreaView, error) {
	var view domain.AreaView
	switch kind {
	case domain.AreaEmergency:
		view = t.emergency(doc)
	case domain.AreaInpatient:
		view = t.inpatient(doc)
	case domain.AreaLaboratory:
		view = t.laboratory(doc)
	default:
		return domain.AreaView{}, fmt.Errorf("%w: %q", ErrAreaNotFound, kind)
	}

	view.Kind = kind
	view.Title = kind.Title()
	view.CostBreakdown = costBreakdown(kind, view.CostTotal)
	view.Supplies = supplies(kind)
	if limit := kind.ReasonLimit(); limit > 0 {
		view.Reasons = motiveReasons(doc, limit)
	} else {
		view.Reasons = kind.FixedReasons()
	}
	return view, nil
}

func (t *Transformer) emergency(doc *domain.AnalyticsDocument) domain.AreaView {
	var view domain.AreaView
	for _, e := range doc.Services.Entries() {
		if !t.IsEmergency(e.Key) {
			continue
		}
		view.CostTotal = e.Value.TotalBilled
		view.PatientsServed = e.Value.Patients
		view.AverageStay = e.Value.AverageStay
		view.PercentageOfTotal = e.Value.AdmissionShare
		break
	}
	view.CostAverage = SafeDiv(view.CostTotal, float64(view.PatientsServed))
	return view
}

// inpatient aggregates every department that is not an emergency department. Its share of
// admissions is whatever the emergency department does not take.
func (t *Transformer) inpatient(doc *domain.AnalyticsDocument) domain.AreaView {
	var (
		view           domain.AreaView
		staySum        float64
		stayCount      int
		emergencyShare float64
		seenEmergency  bool
	)
	for _, e := range doc.Services.Entries() {
		if t.IsEmergency(e.Key) {
			if !seenEmergency {
				emergencyShare = e.Value.AdmissionShare
				seenEmergency = true
			}
			continue
		}
		view.CostTotal += e.Value.TotalBilled
		view.PatientsServed += e.Value.Patients
		staySum += e.Value.AverageStay
		stayCount++
	}
	if doc.Services.Len() > 0 {
		view.PercentageOfTotal = 100 - emergencyShare
	}
	view.CostAverage = SafeDiv(view.CostTotal, float64(view.PatientsServed))
	view.AverageStay = SafeDiv(staySum, float64(stayCount))
	view.Note = "Aggregated from every non-emergency department"
	return view
}

// laboratory has no department of its own and is estimated from the hospital totals.
func (t *Transformer) laboratory(doc *domain.AnalyticsDocument) domain.AreaView {
	r := t.ratios
	view := domain.AreaView{
		CostTotal:         doc.PrincipalMetrics.Financial.TotalBilled * r.LaboratoryBillingShare,
		PatientsServed:    int64(math.Floor(float64(doc.PrincipalMetrics.Operational.Patients) * r.LaboratoryPatientMultiplier)),
		AverageStay:       r.LaboratoryAverageStay,
		PercentageOfTotal: r.LaboratoryBillingShare * 100,
		Estimated:         true,
		Note:              "Estimated from hospital standards, not observed in the source data",
	}
	view.CostAverage = SafeDiv(view.CostTotal, float64(view.PatientsServed))
	return view
}

func costBreakdown(kind domain.AreaKind, total float64) []domain.CostCategoryAmount {
	shares := kind.CostShares()
	out := make([]domain.CostCategoryAmount, 0, len(shares))
	for _, s := range shares {
		out = append(out, domain.CostCategoryAmount{
			Category:   s.Category,
			Percentage: s.Percentage,
			Amount:     total * s.Percentage / 100,
		})
	}
	return out
}

// motiveReasons truncates in source order. It does not rank.
func motiveReasons(doc *domain.AnalyticsDocument, limit int) []domain.ReasonShare {
	head := doc.DischargeMotives.Head(limit)
	out := make([]domain.ReasonShare, 0, len(head))
	for _, e := range head {
		out = append(out, domain.ReasonShare{Reason: e.Key, Percentage: e.Value.CaseShare})
	}
	return out
}

func supplies(kind domain.AreaKind) []domain.SupplyEstimate {
	items := kind.Supplies()
	out := make([]domain.SupplyEstimate, 0, len(items))
	for _, item := range items {
		out = append(out, domain.SupplyEstimate{
			SupplyItem:  item,
			MonthlyCost: item.MonthlyQuantity * item.UnitCost,
		})
	}
	return out
}
