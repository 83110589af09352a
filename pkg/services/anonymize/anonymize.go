package anonymize

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// Record is one raw patient-level record as posted by clients. Identifying fields (name,
// address, phone) are never read.
type Record struct {
	AdmissionDate    string   `json:"fecha_ingreso,omitempty"`
	Date             string   `json:"fecha,omitempty"`
	AdmissionService string   `json:"servicio_ingreso,omitempty"`
	Service          string   `json:"servicio,omitempty"`
	Age              *int     `json:"edad,omitempty"`
	District         string   `json:"alcaldia,omitempty"`
	StayDays         *float64 `json:"dias_estancia,omitempty"`
	TotalBilled      *float64 `json:"total_facturado,omitempty"`
	AverageCost      *float64 `json:"costo_promedio,omitempty"`
}

type Anonymized struct {
	ID            string
	AdmissionDate string
	Service       string
	AgeRange      string
	DistrictCode  string
	StayDays      float64
	TotalBilled   float64
	AverageCost   float64
}

const UnknownAgeRange = "unknown"

var ageRanges = []string{
	"0-4", "5-9", "10-14", "15-19", "20-24", "25-29", "30-34",
	"35-39", "40-44", "45-49", "50-54", "55-59", "60-64", "65+",
}

var districtCodes = map[string]string{
	"IZTAPALAPA":       "IZT",
	"GUSTAVO_A_MADERO": "GAM",
	"TLALPAN":          "TLP",
	"COYOACAN":         "COY",
	"ALVARO_OBREGON":   "AOB",
}

// AgeRanges lists the five-year buckets in ascending order.
func AgeRanges() []string {
	return append([]string(nil), ageRanges...)
}

func AgeRange(age int) string {
	if age < 0 {
		return UnknownAgeRange
	}
	if idx := age / 5; idx < len(ageRanges)-1 {
		return ageRanges[idx]
	}
	return ageRanges[len(ageRanges)-1]
}

// DistrictCode maps a district name to its three-letter code, OTR for anything unlisted.
func DistrictCode(district string) string {
	key := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(district)), " ", "_")
	if code, ok := districtCodes[key]; ok {
		return code
	}
	return "OTR"
}

// Records replaces identifiers with sequential ANON ids and coarsens age and district.
func Records(records []Record) []Anonymized {
	out := make([]Anonymized, 0, len(records))
	for i, r := range records {
		a := Anonymized{
			ID:            fmt.Sprintf("ANON_%06d", i),
			AdmissionDate: firstNonEmpty(r.AdmissionDate, r.Date),
			Service:       firstNonEmpty(r.AdmissionService, r.Service),
			AgeRange:      UnknownAgeRange,
			DistrictCode:  DistrictCode(r.District),
			StayDays:      deref(r.StayDays),
			TotalBilled:   deref(r.TotalBilled),
			AverageCost:   deref(r.AverageCost),
		}
		if r.Age != nil {
			a.AgeRange = AgeRange(*r.Age)
		}
		out = append(out, a)
	}
	return out
}

var csvHeader = []string{
	"id_anonimo", "fecha_ingreso", "servicio_ingreso", "edad_rango",
	"alcaldia_codigo", "dias_estancia", "total_facturado", "costo_promedio",
}

func CSV(records []Anonymized) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.AdmissionDate,
			r.Service,
			r.AgeRange,
			r.DistrictCode,
			formatFloat(r.StayDays),
			formatFloat(r.TotalBilled),
			formatFloat(r.AverageCost),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write record %s: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
