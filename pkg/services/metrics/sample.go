package metrics

import "github.com/de-tools/health-atlas/pkg/models/domain"

// SampleDocument is the minimal document served when no real document can be loaded.
func SampleDocument() *domain.AnalyticsDocument {
	return &domain.AnalyticsDocument{
		PrincipalMetrics: domain.PrincipalMetrics{
			Financial: domain.FinancialMetrics{
				TotalBilled: 253109430,
				AverageCost: 168403,
				GrossMargin: 0,
			},
			Operational: domain.OperationalMetrics{
				Patients:    1503,
				AverageStay: 11.5,
			},
		},
		Services: domain.NewBreakdown(
			domain.BreakdownEntry[domain.ServiceStats]{Key: "URGENCIAS", Value: domain.ServiceStats{
				TotalBilled: 223672146, AverageCost: 183639, Patients: 1218, AverageStay: 11.5, AdmissionShare: 86,
			}},
			domain.BreakdownEntry[domain.ServiceStats]{Key: "CIRUGÍA", Value: domain.ServiceStats{
				TotalBilled: 13044939, AverageCost: 148238, Patients: 88, AverageStay: 9.2, AdmissionShare: 5.02,
			}},
			domain.BreakdownEntry[domain.ServiceStats]{Key: "ORL", Value: domain.ServiceStats{
				TotalBilled: 10169585, AverageCost: 62775, Patients: 162, AverageStay: 3.1, AdmissionShare: 3.91,
			}},
			domain.BreakdownEntry[domain.ServiceStats]{Key: "NEUMOLOGÍA", Value: domain.ServiceStats{
				TotalBilled: 6222760, AverageCost: 177793, Patients: 35, AverageStay: 12.4, AdmissionShare: 2.39,
			}},
		),
		DischargeMotives: domain.NewBreakdown(
			domain.BreakdownEntry[domain.MotiveStats]{Key: "MEJORIA", Value: domain.MotiveStats{
				TotalBilled: 198000000, AverageCost: 150000, Patients: 1320, AverageStay: 10.8, CaseShare: 87.8,
			}},
			domain.BreakdownEntry[domain.MotiveStats]{Key: "DEFUNCION", Value: domain.MotiveStats{
				TotalBilled: 41000000, AverageCost: 380000, Patients: 108, AverageStay: 16.2, CaseShare: 7.2,
			}},
			domain.BreakdownEntry[domain.MotiveStats]{Key: "TRASLADO", Value: domain.MotiveStats{
				TotalBilled: 14109430, AverageCost: 188125, Patients: 75, AverageStay: 7.9, CaseShare: 5,
			}},
		),
		Geography: domain.Geography{
			Districts: domain.NewBreakdown(
				domain.BreakdownEntry[domain.RegionStats]{Key: "IZTAPALAPA", Value: domain.RegionStats{
					AverageCost: 171000, Patients: 420, TotalBilled: 71820000, PatientShare: 27.9,
				}},
				domain.BreakdownEntry[domain.RegionStats]{Key: "GUSTAVO A. MADERO", Value: domain.RegionStats{
					AverageCost: 166000, Patients: 260, TotalBilled: 43160000, PatientShare: 17.3,
				}},
				domain.BreakdownEntry[domain.RegionStats]{Key: "TLALPAN", Value: domain.RegionStats{
					AverageCost: 159000, Patients: 180, TotalBilled: 28620000, PatientShare: 12,
				}},
			),
		},
		MonthlyTrends: map[string]domain.MonthlyTrend{
			"2025-01": {TotalBilled: 69560814, AverageCost: 170492, Patients: 408, AverageStay: 11.2},
			"2025-02": {TotalBilled: 61198406, AverageCost: 151606, Patients: 404, AverageStay: 11.6},
			"2025-03": {TotalBilled: 69807376, AverageCost: 181589, Patients: 384, AverageStay: 11.9},
			"2025-04": {TotalBilled: 64573943, AverageCost: 192186, Patients: 336, AverageStay: 11.3},
		},
		Alerts: []domain.Alert{
			{
				Title:       "High emergency concentration",
				Description: "Emergency accounts for most of the billed total",
				Severity:    domain.AlertSeverityMedium,
				Category:    domain.AlertCategoryOperational,
				Value:       86,
			},
		},
		Metadata: domain.DocumentMetadata{
			TotalRecords: 1503,
			Period:       domain.DataPeriod{Start: "2025-01-01", End: "2025-04-30"},
		},
	}
}
