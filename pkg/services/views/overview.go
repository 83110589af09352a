package views

import "github.com/de-tools/health-atlas/pkg/models/domain"

const (
	distributionSize = 8
	topEntriesSize   = 10
	combinedEachSize = 4
)

// Overview builds the landing page contexts. Distributions and top entries are taken in source
// order, and the change percent is the latest month-over-month billing change.
func (t *Transformer) Overview(loaded domain.LoadedDocument) domain.OverviewView {
	doc := loaded.Document

	var change float64
	if rates := ChangeRates(TrendPoints(doc)); len(rates) > 0 {
		change = rates[len(rates)-1].BilledChange
	}

	base := func(kind domain.OverviewContextKind) domain.OverviewContext {
		return domain.OverviewContext{
			Kind:          kind,
			TotalBilled:   doc.PrincipalMetrics.Financial.TotalBilled,
			AverageCost:   doc.PrincipalMetrics.Financial.AverageCost,
			Patients:      doc.PrincipalMetrics.Operational.Patients,
			AverageStay:   doc.PrincipalMetrics.Operational.AverageStay,
			ChangePercent: change,
		}
	}

	emergency := base(domain.OverviewEmergency)
	emergency.Distribution = serviceEntries(doc.Services.Head(distributionSize), "")
	emergency.TopEntries = serviceEntries(doc.Services.Head(topEntriesSize), "")
	emergency.Alerts = domain.FilterAlerts(doc.Alerts, domain.AlertCategoryOperational, domain.AlertCategoryClinical)

	inpatient := base(domain.OverviewInpatient)
	inpatient.Distribution = motiveEntries(doc.DischargeMotives.Head(distributionSize), "")
	inpatient.TopEntries = motiveEntries(doc.DischargeMotives.Head(topEntriesSize), "")
	inpatient.Alerts = domain.FilterAlerts(doc.Alerts, domain.AlertCategoryFinancial)

	combined := base(domain.OverviewCombined)
	combined.Distribution = append(
		serviceEntries(doc.Services.Head(combinedEachSize), "Service: "),
		motiveEntries(doc.DischargeMotives.Head(combinedEachSize), "Motive: ")...,
	)
	combined.TopEntries = serviceEntries(doc.Services.Head(topEntriesSize), "")
	combined.Alerts = append([]domain.Alert(nil), doc.Alerts...)

	return domain.OverviewView{
		Contexts: []domain.OverviewContext{emergency, inpatient, combined},
		Metadata: t.metadata(loaded),
	}
}

func serviceEntries(entries []domain.BreakdownEntry[domain.ServiceStats], prefix string) []domain.DistributionEntry {
	out := make([]domain.DistributionEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.DistributionEntry{
			Label:      prefix + e.Key,
			Total:      e.Value.TotalBilled,
			Count:      e.Value.Patients,
			Percentage: e.Value.AdmissionShare,
		})
	}
	return out
}

func motiveEntries(entries []domain.BreakdownEntry[domain.MotiveStats], prefix string) []domain.DistributionEntry {
	out := make([]domain.DistributionEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.DistributionEntry{
			Label:      prefix + e.Key,
			Total:      e.Value.TotalBilled,
			Count:      e.Value.Patients,
			Percentage: e.Value.CaseShare,
		})
	}
	return out
}
