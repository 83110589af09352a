package views

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

var ErrAreaNotFound = errors.New("area not found")

// EstimationRatios are fixed design constants used where the document has no direct figure.
// They are externally configurable but their defaults must not change without domain input.
type EstimationRatios struct {
	LaboratoryBillingShare      float64
	LaboratoryPatientMultiplier float64
	LaboratoryAverageStay       float64
	EmergencyDepartments        []string
	TrendEmergencyShare         float64
	TrendInpatientShare         float64
	TrendLaboratoryShare        float64
}

func DefaultRatios() EstimationRatios {
	return EstimationRatios{
		LaboratoryBillingShare:      0.08,
		LaboratoryPatientMultiplier: 1.5,
		LaboratoryAverageStay:       0.5,
		EmergencyDepartments:        []string{"URGENCIAS", "EMERGENCY"},
		TrendEmergencyShare:         0.86,
		TrendInpatientShare:         0.14,
		TrendLaboratoryShare:        0.05,
	}
}

// Transformer derives views from an AnalyticsDocument. It never mutates the document and
// performs no I/O.
type Transformer struct {
	ratios EstimationRatios
	now    func() time.Time
}

func NewTransformer(ratios EstimationRatios) *Transformer {
	return &Transformer{
		ratios: ratios,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for generated-at timestamps.
func (t *Transformer) WithClock(now func() time.Time) *Transformer {
	return &Transformer{ratios: t.ratios, now: now}
}

func (t *Transformer) Ratios() EstimationRatios {
	return t.ratios
}

func (t *Transformer) Now() time.Time {
	return t.now()
}

func (t *Transformer) metadata(loaded domain.LoadedDocument) domain.ViewMetadata {
	doc := loaded.Document
	return domain.ViewMetadata{
		Source:       loaded.Source,
		PeriodStart:  doc.Metadata.Period.Start,
		PeriodEnd:    doc.Metadata.Period.End,
		TotalRecords: doc.Metadata.TotalRecords,
		Note:         loaded.Source.Note(),
		GeneratedAt:  t.now(),
	}
}

func (t *Transformer) IsEmergency(department string) bool {
	for _, d := range t.ratios.EmergencyDepartments {
		if strings.EqualFold(d, department) {
			return true
		}
	}
	return false
}

// SafeDiv returns a/b, or 0 when the result would not be finite.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	r := a / b
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// PercentChange is (current - previous) / previous * 100, or 0 when previous is 0.
func PercentChange(previous, current float64) float64 {
	return SafeDiv(current-previous, previous) * 100
}

// orDefault substitutes def for an absent (zero) value.
func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
