package views

import "github.com/de-tools/health-atlas/pkg/models/domain"

// Geographic maps the district (or state) breakdown 1:1 to a list, without aggregation.
func (t *Transformer) Geographic(doc *domain.AnalyticsDocument, level domain.RegionLevel) domain.GeographicView {
	source := doc.Geography.Districts
	if level == domain.RegionLevelState {
		source = doc.Geography.States
	} else {
		level = domain.RegionLevelDistrict
	}

	view := domain.GeographicView{Level: level, Regions: make([]domain.RegionCost, 0, source.Len())}
	for _, e := range source.Entries() {
		view.Regions = append(view.Regions, domain.RegionCost{
			Name:         e.Key,
			AverageCost:  e.Value.AverageCost,
			Patients:     e.Value.Patients,
			TotalBilled:  e.Value.TotalBilled,
			PatientShare: e.Value.PatientShare,
		})
	}
	return view
}

// Motives maps the discharge motive breakdown 1:1 to a list.
func (t *Transformer) Motives(doc *domain.AnalyticsDocument) []domain.MotiveCost {
	out := make([]domain.MotiveCost, 0, doc.DischargeMotives.Len())
	for _, e := range doc.DischargeMotives.Entries() {
		out = append(out, domain.MotiveCost{
			Motive:      e.Key,
			AverageCost: e.Value.AverageCost,
			Patients:    e.Value.Patients,
			TotalBilled: e.Value.TotalBilled,
			AverageStay: e.Value.AverageStay,
			CaseShare:   e.Value.CaseShare,
		})
	}
	return out
}
