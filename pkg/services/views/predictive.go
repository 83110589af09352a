package views

import (
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

const maxCostForecasts = 12

// Predictive passes the upstream predictive block through when it is available and
// substitutes a fixed placeholder dataset otherwise. RealData tells the two apart.
func (t *Transformer) Predictive(loaded domain.LoadedDocument) domain.PredictiveView {
	doc := loaded.Document
	if !doc.Predictive.Available {
		view := placeholderPredictions()
		view.LastUpdated = t.now().UTC().Format(time.RFC3339)
		view.Metadata = t.metadata(loaded)
		view.Metadata.Note = "Placeholder data, predictive models are not available"
		return view
	}

	ml := doc.Predictive
	m := ml.Models.Metrics
	costs := ml.CostForecasts
	if len(costs) > maxCostForecasts {
		costs = costs[len(costs)-maxCostForecasts:]
	}

	return domain.PredictiveView{
		DemandForecasts: ml.DemandForecasts,
		CostForecasts:   costs,
		Segments:        ml.Clusters,
		Alerts:          ml.Alerts,
		Demand: domain.ModelMetricView{
			Precision: orDefault(m.Demand.EstimatedPrecision, "60.0%"),
			Algorithm: orDefault(ml.Models.Algorithms["demanda"], "Simple linear regression with seasonal patterns"),
			Values: []domain.NamedValue{
				{Name: "daily_trend", Value: orDefault(m.Demand.DailyTrend, -0.022)},
				{Name: "historical_average", Value: orDefault(m.Demand.HistoricalAverage, 13.98)},
			},
		},
		Costs: domain.ModelMetricView{
			Precision: orDefault(m.Costs.EstimatedPrecision, "75-85%"),
			Algorithm: orDefault(ml.Models.Algorithms["costos"], "Trend analysis with seasonal factors"),
			Values: []domain.NamedValue{
				{Name: "monthly_growth_pct", Value: orDefault(m.Costs.MonthlyGrowthPct, 22.74)},
				{Name: "monthly_average", Value: orDefault(m.Costs.MonthlyAverage, 11579931.50)},
			},
		},
		Clustering: domain.ModelMetricView{
			Precision: "85%",
			Algorithm: orDefault(ml.Models.Algorithms["segmentacion"], "Percentile clustering"),
			Values: []domain.NamedValue{
				{Name: "clusters", Value: float64(orDefault(m.Clustering.Clusters, 5))},
				{Name: "services", Value: float64(orDefault(m.Clustering.Services, 11))},
			},
		},
		AvailableModels: availableModels(ml.Models.AvailableModels),
		ModelVersion:    orDefault(ml.Models.Version, "1.0-Simple"),
		RealData:        true,
		LastUpdated:     orDefault(doc.Timestamp, t.now().UTC().Format(time.RFC3339)),
		Metadata:        t.metadata(loaded),
	}
}

func availableModels(models map[string]bool) map[string]bool {
	if len(models) > 0 {
		return models
	}
	return map[string]bool{"demanda": true, "costos": true, "clustering": true}
}

func placeholderPredictions() domain.PredictiveView {
	actual := func(v float64) *float64 { return &v }

	return domain.PredictiveView{
		DemandForecasts: []domain.DemandForecast{
			{Date: "2025-05-28", PredictedPatients: 12, PredictedEmergency: 8, PredictedInpatient: 3},
			{Date: "2025-05-29", PredictedPatients: 14, PredictedEmergency: 10, PredictedInpatient: 3},
			{Date: "2025-05-30", PredictedPatients: 11, PredictedEmergency: 7, PredictedInpatient: 3},
			{Date: "2025-05-31", PredictedPatients: 16, PredictedEmergency: 11, PredictedInpatient: 4},
			{Date: "2025-06-01", PredictedPatients: 9, PredictedEmergency: 6, PredictedInpatient: 2},
			{Date: "2025-06-02", PredictedPatients: 13, PredictedEmergency: 9, PredictedInpatient: 3},
			{Date: "2025-06-03", PredictedPatients: 15, PredictedEmergency: 10, PredictedInpatient: 4},
		},
		CostForecasts: []domain.CostForecast{
			{Label: "Jan", Actual: actual(69560814), Predicted: 69560814, Kind: domain.ForecastKindHistorical},
			{Label: "Feb", Actual: actual(61198406), Predicted: 61198406, Kind: domain.ForecastKindHistorical},
			{Label: "Mar", Actual: actual(69807376), Predicted: 69807376, Kind: domain.ForecastKindHistorical},
			{Label: "Apr", Actual: actual(64573943), Predicted: 64573943, Kind: domain.ForecastKindHistorical},
			{Label: "May (F)", Predicted: 72000000, Kind: domain.ForecastKindForecast},
			{Label: "Jun (F)", Predicted: 75000000, Kind: domain.ForecastKindForecast},
		},
		Segments: []domain.ClusterAssignment{
			{Service: "URGENCIAS", ClusterID: 0, ClusterLabel: "High volume", Patients: 1218, AverageCost: 183639, Share: 86.05},
			{Service: "CIRUGÍA", ClusterID: 1, ClusterLabel: "Specialized", Patients: 88, AverageCost: 148238, Share: 5.02},
			{Service: "ORL", ClusterID: 2, ClusterLabel: "Medium volume", Patients: 162, AverageCost: 62775, Share: 3.91},
			{Service: "NEUMOLOGÍA", ClusterID: 1, ClusterLabel: "Specialized", Patients: 35, AverageCost: 177793, Share: 2.39},
			{Service: "OTROS", ClusterID: 3, ClusterLabel: "Low volume", Patients: 175, AverageCost: 95000, Share: 2.63},
		},
		Alerts: []domain.PredictiveAlert{
			{ID: 1, Service: "URGENCIAS", Prediction: "Increase of 8.5%", Confidence: "High", Impact: "High",
				Description: "Forecast based on seasonal trends", Model: "Linear regression"},
			{ID: 2, Service: "CIRUGÍA", Prediction: "Decrease of 3.2%", Confidence: "Medium", Impact: "Medium",
				Description: "Expected reduction from process optimization", Model: "Time series analysis"},
			{ID: 3, Service: "NEUMOLOGÍA", Prediction: "Increase of 12.1%", Confidence: "High", Impact: "Medium",
				Description: "Expected seasonal increase", Model: "Seasonal model"},
		},
		Demand: domain.ModelMetricView{
			Precision: "60%",
			Algorithm: "Simple linear regression",
			Values: []domain.NamedValue{
				{Name: "daily_trend", Value: -0.022},
				{Name: "historical_average", Value: 13.98},
			},
		},
		Costs: domain.ModelMetricView{
			Precision: "75%",
			Algorithm: "Trend analysis",
			Values: []domain.NamedValue{
				{Name: "monthly_growth_pct", Value: 8.5},
				{Name: "monthly_average", Value: 66285135},
			},
		},
		Clustering: domain.ModelMetricView{
			Precision: "85%",
			Algorithm: "K-Means",
			Values: []domain.NamedValue{
				{Name: "clusters", Value: 5},
				{Name: "services", Value: 11},
			},
		},
		AvailableModels: map[string]bool{"demanda": true, "costos": true, "clustering": true},
		ModelVersion:    "1.0-Fallback",
		RealData:        false,
	}
}

// ModelPrecision summarizes the predictive block for report metadata.
func ModelPrecision(doc *domain.AnalyticsDocument) domain.ModelPrecision {
	ml := doc.Predictive
	if !ml.Available {
		return domain.ModelPrecision{
			Note: "Predictive models are not available for this dataset",
		}
	}

	m := ml.Models.Metrics
	return domain.ModelPrecision{
		Available: true,
		Kind:      orDefault(ml.Kind, "Estadistico_Simple"),
		Version:   orDefault(ml.Models.Version, "v1.0"),
		Models: []domain.ModelPrecisionEntry{
			{
				Name:      "demand",
				Algorithm: "Linear regression with seasonal patterns",
				Precision: orDefault(m.Demand.EstimatedPrecision, "60%"),
				Figures:   []domain.NamedValue{{Name: "daily_trend", Value: m.Demand.DailyTrend}},
				Note:      "Forecast from historical trends and seasonal patterns",
			},
			{
				Name:      "costs",
				Algorithm: "Trend analysis with seasonal factors",
				Precision: orDefault(m.Costs.EstimatedPrecision, "75-85%"),
				Figures:   []domain.NamedValue{{Name: "monthly_growth_pct", Value: m.Costs.MonthlyGrowthPct}},
				Note:      "Forecast from time series analysis",
			},
			{
				Name:      "clustering",
				Algorithm: "Billing percentile clustering",
				Figures: []domain.NamedValue{
					{Name: "clusters", Value: float64(orDefault(m.Clustering.Clusters, 5))},
					{Name: "services_analyzed", Value: float64(m.Clustering.Services)},
				},
				Note: "Service segmentation by billing volume",
			},
		},
		Limitations: []string{
			"Models are simple statistical estimators",
			"Precision is estimated from simple cross-validation",
			"Forecasts are valid for short horizons (30 to 90 days)",
			"Models require periodic retraining with new data",
		},
	}
}
