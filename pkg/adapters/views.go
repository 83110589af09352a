package adapters

import (
	"maps"

	"github.com/de-tools/health-atlas/pkg/models/api"
	"github.com/de-tools/health-atlas/pkg/models/domain"
)

func MapViewMetadataDomainToApi(m domain.ViewMetadata) api.Metadata {
	return api.Metadata{
		Source:       string(m.Source),
		RealData:     m.Source.Real(),
		PeriodStart:  m.PeriodStart,
		PeriodEnd:    m.PeriodEnd,
		TotalRecords: m.TotalRecords,
		Note:         m.Note,
		GeneratedAt:  m.GeneratedAt,
	}
}

func MapAreaBundleDomainToApi(bundle domain.AreaBundle) api.AreasResponse {
	resp := api.AreasResponse{
		Areas:    make([]api.Area, 0, len(bundle.Areas)),
		Metadata: MapViewMetadataDomainToApi(bundle.Metadata),
	}
	for _, a := range bundle.Areas {
		resp.Areas = append(resp.Areas, MapAreaDomainToApi(a))
	}
	return resp
}

func MapAreaDomainToApi(v domain.AreaView) api.Area {
	area := api.Area{
		Area:              string(v.Kind),
		Title:             v.Title,
		CostTotal:         v.CostTotal,
		PatientsServed:    v.PatientsServed,
		CostAverage:       v.CostAverage,
		AverageStay:       v.AverageStay,
		PercentageOfTotal: v.PercentageOfTotal,
		Estimated:         v.Estimated,
		Note:              v.Note,
		CostBreakdown:     make([]api.CostCategory, 0, len(v.CostBreakdown)),
		Reasons:           make([]api.Reason, 0, len(v.Reasons)),
		Supplies:          make([]api.Supply, 0, len(v.Supplies)),
	}
	for _, c := range v.CostBreakdown {
		area.CostBreakdown = append(area.CostBreakdown, api.CostCategory{
			Category:   string(c.Category),
			Label:      c.Category.Label(),
			Percentage: c.Percentage,
			Amount:     c.Amount,
		})
	}
	for _, r := range v.Reasons {
		area.Reasons = append(area.Reasons, api.Reason{Reason: r.Reason, Percentage: r.Percentage})
	}
	for _, s := range v.Supplies {
		area.Supplies = append(area.Supplies, api.Supply{
			Name:            s.Name,
			Category:        string(s.Category),
			MonthlyQuantity: s.MonthlyQuantity,
			UnitCost:        s.UnitCost,
			MonthlyCost:     s.MonthlyCost,
		})
	}
	return area
}

func MapGeographicDomainToApi(v domain.GeographicView) api.GeographicResponse {
	resp := api.GeographicResponse{
		Level:   string(v.Level),
		Regions: make([]api.Region, 0, len(v.Regions)),
	}
	for _, r := range v.Regions {
		resp.Regions = append(resp.Regions, api.Region{
			Name:         r.Name,
			AverageCost:  r.AverageCost,
			Patients:     r.Patients,
			TotalBilled:  r.TotalBilled,
			PatientShare: r.PatientShare,
		})
	}
	return resp
}

func MapMotivesDomainToApi(motives []domain.MotiveCost) api.MotivesResponse {
	resp := api.MotivesResponse{Motives: make([]api.Motive, 0, len(motives))}
	for _, m := range motives {
		resp.Motives = append(resp.Motives, api.Motive{
			Motive:      m.Motive,
			AverageCost: m.AverageCost,
			Patients:    m.Patients,
			TotalBilled: m.TotalBilled,
			AverageStay: m.AverageStay,
			CaseShare:   m.CaseShare,
		})
	}
	return resp
}

func MapTrendsDomainToApi(v domain.TrendsView) api.TrendsResponse {
	resp := api.TrendsResponse{
		Points:        make([]api.TrendPoint, 0, len(v.Points)),
		ChangeRates:   make([]api.ChangeRate, 0, len(v.ChangeRates)),
		ServiceSplits: make([]api.ServiceSplit, 0, len(v.Splits)),
		Metadata:      MapViewMetadataDomainToApi(v.Metadata),
	}
	for _, p := range v.Points {
		resp.Points = append(resp.Points, api.TrendPoint{
			Period:      p.Period,
			Label:       p.Label,
			TotalBilled: p.TotalBilled,
			AverageCost: p.AverageCost,
			Patients:    p.Patients,
			AverageStay: p.AverageStay,
		})
	}
	for _, c := range v.ChangeRates {
		resp.ChangeRates = append(resp.ChangeRates, api.ChangeRate{
			Period:            c.Period,
			Label:             c.Label,
			BilledChange:      c.BilledChange,
			PatientsChange:    c.PatientsChange,
			AverageCostChange: c.AverageCostChange,
		})
	}
	for _, s := range v.Splits {
		resp.ServiceSplits = append(resp.ServiceSplits, api.ServiceSplit{
			Period:     s.Period,
			Label:      s.Label,
			Emergency:  s.Emergency,
			Inpatient:  s.Inpatient,
			Laboratory: s.Laboratory,
			Estimated:  true,
		})
	}
	return resp
}

func MapPredictiveDomainToApi(v domain.PredictiveView) api.PredictiveResponse {
	resp := api.PredictiveResponse{
		DemandForecasts: make([]api.DemandForecast, 0, len(v.DemandForecasts)),
		CostForecasts:   make([]api.CostForecast, 0, len(v.CostForecasts)),
		Segments:        make([]api.Segment, 0, len(v.Segments)),
		Alerts:          make([]api.PredictiveAlert, 0, len(v.Alerts)),
		Models: api.ModelMetrics{
			Demand:     MapModelMetricDomainToApi(v.Demand),
			Costs:      MapModelMetricDomainToApi(v.Costs),
			Clustering: MapModelMetricDomainToApi(v.Clustering),
		},
		AvailableModels: maps.Clone(v.AvailableModels),
		ModelVersion:    v.ModelVersion,
		LastUpdated:     v.LastUpdated,
		Metadata:        MapViewMetadataDomainToApi(v.Metadata),
	}
	// Placeholder predictions are never real, whatever tier loaded the document.
	resp.Metadata.RealData = v.RealData
	if resp.AvailableModels == nil {
		resp.AvailableModels = map[string]bool{}
	}
	for _, d := range v.DemandForecasts {
		resp.DemandForecasts = append(resp.DemandForecasts, api.DemandForecast{
			Date:               d.Date,
			PredictedPatients:  d.PredictedPatients,
			PredictedEmergency: d.PredictedEmergency,
			PredictedInpatient: d.PredictedInpatient,
		})
	}
	for _, c := range v.CostForecasts {
		resp.CostForecasts = append(resp.CostForecasts, api.CostForecast{
			Label:     c.Label,
			Actual:    c.Actual,
			Predicted: c.Predicted,
			Kind:      string(c.Kind),
		})
	}
	for _, s := range v.Segments {
		resp.Segments = append(resp.Segments, api.Segment{
			Service:      s.Service,
			ClusterID:    s.ClusterID,
			ClusterLabel: s.ClusterLabel,
			Patients:     s.Patients,
			AverageCost:  s.AverageCost,
			Share:        s.Share,
		})
	}
	for _, a := range v.Alerts {
		resp.Alerts = append(resp.Alerts, api.PredictiveAlert{
			Service:     a.Service,
			Prediction:  a.Prediction,
			Confidence:  a.Confidence,
			Impact:      a.Impact,
			Description: a.Description,
		})
	}
	return resp
}

func MapModelMetricDomainToApi(m domain.ModelMetricView) api.ModelMetric {
	metric := api.ModelMetric{
		Precision: m.Precision,
		Algorithm: m.Algorithm,
		Values:    make([]api.NamedValue, 0, len(m.Values)),
	}
	for _, v := range m.Values {
		metric.Values = append(metric.Values, api.NamedValue{Name: v.Name, Value: v.Value})
	}
	return metric
}

func MapOverviewDomainToApi(v domain.OverviewView) api.OverviewResponse {
	resp := api.OverviewResponse{
		Contexts: make([]api.OverviewContext, 0, len(v.Contexts)),
		Metadata: MapViewMetadataDomainToApi(v.Metadata),
	}
	for _, c := range v.Contexts {
		resp.Contexts = append(resp.Contexts, api.OverviewContext{
			Context:       string(c.Kind),
			TotalBilled:   c.TotalBilled,
			AverageCost:   c.AverageCost,
			Patients:      c.Patients,
			AverageStay:   c.AverageStay,
			ChangePercent: c.ChangePercent,
			Distribution:  mapDistribution(c.Distribution),
			TopEntries:    mapDistribution(c.TopEntries),
			Alerts:        MapAlertsDomainToApi(c.Alerts),
		})
	}
	return resp
}

func MapAlertsDomainToApi(alerts []domain.Alert) []api.Alert {
	out := make([]api.Alert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, api.Alert{
			Title:       a.Title,
			Description: a.Description,
			Severity:    string(a.Severity),
			Category:    string(a.Category),
			Value:       a.Value,
		})
	}
	return out
}

func mapDistribution(entries []domain.DistributionEntry) []api.DistributionEntry {
	out := make([]api.DistributionEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.DistributionEntry{
			Label:      e.Label,
			Total:      e.Total,
			Count:      e.Count,
			Percentage: e.Percentage,
		})
	}
	return out
}
