package views

import (
	"sort"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

const periodLayout = "2006-01"

// Trends sorts the monthly keys ascending and derives change rates and the estimated
// per-area split. Gaps between months are not detected: each point is compared with the
// nearest earlier present period.
func (t *Transformer) Trends(loaded domain.LoadedDocument) domain.TrendsView {
	points := TrendPoints(loaded.Document)
	view := domain.TrendsView{
		Points:      points,
		ChangeRates: ChangeRates(points),
		Splits:      make([]domain.ServiceSplit, 0, len(points)),
		Metadata:    t.metadata(loaded),
	}
	for _, p := range points {
		view.Splits = append(view.Splits, domain.ServiceSplit{
			Period:     p.Period,
			Label:      p.Label,
			Emergency:  p.TotalBilled * t.ratios.TrendEmergencyShare,
			Inpatient:  p.TotalBilled * t.ratios.TrendInpatientShare,
			Laboratory: p.TotalBilled * t.ratios.TrendLaboratoryShare,
		})
	}
	return view
}

func TrendPoints(doc *domain.AnalyticsDocument) []domain.TrendPoint {
	periods := make([]string, 0, len(doc.MonthlyTrends))
	for k := range doc.MonthlyTrends {
		periods = append(periods, k)
	}
	sort.Strings(periods)

	points := make([]domain.TrendPoint, 0, len(periods))
	for _, period := range periods {
		m := doc.MonthlyTrends[period]
		points = append(points, domain.TrendPoint{
			Period:      period,
			Label:       PeriodLabel(period),
			TotalBilled: m.TotalBilled,
			AverageCost: m.AverageCost,
			Patients:    m.Patients,
			AverageStay: m.AverageStay,
		})
	}
	return points
}

// ChangeRates compares each point with the one before it. The first rate is always zero.
func ChangeRates(points []domain.TrendPoint) []domain.ChangeRate {
	rates := make([]domain.ChangeRate, 0, len(points))
	for i, p := range points {
		rate := domain.ChangeRate{Period: p.Period, Label: p.Label}
		if i > 0 {
			prev := points[i-1]
			rate.BilledChange = PercentChange(prev.TotalBilled, p.TotalBilled)
			rate.PatientsChange = PercentChange(float64(prev.Patients), float64(p.Patients))
			rate.AverageCostChange = PercentChange(prev.AverageCost, p.AverageCost)
		}
		rates = append(rates, rate)
	}
	return rates
}

// PeriodLabel renders "2025-03" as "Mar 2025". Keys that are not YYYY-MM are returned as is.
func PeriodLabel(period string) string {
	ts, err := time.Parse(periodLayout, period)
	if err != nil {
		return period
	}
	return ts.Format("Jan 2006")
}
