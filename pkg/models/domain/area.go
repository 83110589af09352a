package domain

import (
	"fmt"
	"strings"
)

// AreaKind is a reporting grouping. It may aggregate or estimate departments of the
// service breakdown rather than match one of them.
type AreaKind string

const (
	AreaEmergency  AreaKind = "emergency"
	AreaInpatient  AreaKind = "inpatient"
	AreaLaboratory AreaKind = "laboratory"
)

var areaAliases = map[string]AreaKind{
	"emergency":       AreaEmergency,
	"urgencias":       AreaEmergency,
	"inpatient":       AreaInpatient,
	"hospitalizacion": AreaInpatient,
	"hospitalización": AreaInpatient,
	"laboratory":      AreaLaboratory,
	"laboratorios":    AreaLaboratory,
}

// AllAreas lists every area in display order.
func AllAreas() []AreaKind {
	return []AreaKind{AreaEmergency, AreaInpatient, AreaLaboratory}
}

// ParseAreaKind accepts the English identifiers and the dashboard's Spanish ones, case-insensitively.
func ParseAreaKind(s string) (AreaKind, error) {
	kind, ok := areaAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown area %q", s)
	}
	return kind, nil
}

func (a AreaKind) Title() string {
	switch a {
	case AreaEmergency:
		return "Emergency"
	case AreaInpatient:
		return "Inpatient"
	case AreaLaboratory:
		return "Laboratory and Diagnostics"
	}
	return string(a)
}

// ReasonLimit is how many discharge motives the area shows, taken in source order.
func (a AreaKind) ReasonLimit() int {
	switch a {
	case AreaEmergency:
		return 5
	case AreaInpatient:
		return 4
	}
	return 0
}

type CostCategory string

const (
	CostMedicalStaff     CostCategory = "medical_staff"
	CostTechnicalStaff   CostCategory = "technical_staff"
	CostMedication       CostCategory = "medication"
	CostMedicalEquipment CostCategory = "medical_equipment"
	CostEquipment        CostCategory = "equipment"
	CostGeneralSupplies  CostCategory = "general_supplies"
	CostFood             CostCategory = "food"
	CostReagents         CostCategory = "reagents"
)

func (c CostCategory) Label() string {
	switch c {
	case CostMedicalStaff:
		return "Medical staff"
	case CostTechnicalStaff:
		return "Technical staff"
	case CostMedication:
		return "Medication"
	case CostMedicalEquipment:
		return "Medical equipment"
	case CostEquipment:
		return "Equipment"
	case CostGeneralSupplies:
		return "General supplies"
	case CostFood:
		return "Food"
	case CostReagents:
		return "Reagents"
	}
	return string(c)
}

type CostShare struct {
	Category   CostCategory
	Percentage float64 // 0-100
}

// CostShares is the fixed cost-category table of an area. Shares of every area sum to 100.
// The table is a hospital-standard estimate and is never derived from the document.
func (a AreaKind) CostShares() []CostShare {
	switch a {
	case AreaEmergency:
		return []CostShare{
			{Category: CostMedicalStaff, Percentage: 42},
			{Category: CostMedication, Percentage: 28},
			{Category: CostMedicalEquipment, Percentage: 18},
			{Category: CostGeneralSupplies, Percentage: 12},
		}
	case AreaInpatient:
		return []CostShare{
			{Category: CostMedicalStaff, Percentage: 35},
			{Category: CostMedication, Percentage: 25},
			{Category: CostMedicalEquipment, Percentage: 22},
			{Category: CostFood, Percentage: 8},
			{Category: CostGeneralSupplies, Percentage: 10},
		}
	case AreaLaboratory:
		return []CostShare{
			{Category: CostTechnicalStaff, Percentage: 32},
			{Category: CostReagents, Percentage: 38},
			{Category: CostEquipment, Percentage: 22},
			{Category: CostGeneralSupplies, Percentage: 8},
		}
	}
	return nil
}

type SupplyItem struct {
	Name            string
	MonthlyQuantity float64
	UnitCost        float64
	Category        CostCategory
}

// Supplies is the fixed list of representative supplies of an area.
func (a AreaKind) Supplies() []SupplyItem {
	switch a {
	case AreaEmergency:
		return []SupplyItem{
			{Name: "Saline solution", MonthlyQuantity: 2450, UnitCost: 25, Category: CostMedication},
			{Name: "Sterile gauze", MonthlyQuantity: 1800, UnitCost: 15, Category: CostGeneralSupplies},
			{Name: "Disposable syringes", MonthlyQuantity: 3200, UnitCost: 8, Category: CostGeneralSupplies},
			{Name: "Medical oxygen", MonthlyQuantity: 850, UnitCost: 120, Category: CostMedication},
			{Name: "Vital signs monitor", MonthlyQuantity: 12, UnitCost: 15000, Category: CostMedicalEquipment},
		}
	case AreaInpatient:
		return []SupplyItem{
			{Name: "Hospital bed", MonthlyQuantity: 45, UnitCost: 2500, Category: CostMedicalEquipment},
			{Name: "IV antibiotics", MonthlyQuantity: 680, UnitCost: 180, Category: CostMedication},
			{Name: "Urinary catheters", MonthlyQuantity: 320, UnitCost: 45, Category: CostGeneralSupplies},
			{Name: "Enteral nutrition", MonthlyQuantity: 890, UnitCost: 85, Category: CostFood},
			{Name: "Mechanical ventilator", MonthlyQuantity: 8, UnitCost: 45000, Category: CostMedicalEquipment},
		}
	case AreaLaboratory:
		return []SupplyItem{
			{Name: "Biochemistry reagents", MonthlyQuantity: 1200, UnitCost: 35, Category: CostReagents},
			{Name: "Test tubes", MonthlyQuantity: 4500, UnitCost: 12, Category: CostGeneralSupplies},
			{Name: "Radiological contrast", MonthlyQuantity: 180, UnitCost: 250, Category: CostReagents},
			{Name: "Radiographic plates", MonthlyQuantity: 890, UnitCost: 28, Category: CostGeneralSupplies},
			{Name: "Automated analyzer", MonthlyQuantity: 2, UnitCost: 85000, Category: CostEquipment},
		}
	}
	return nil
}

// FixedReasons is the reason distribution of areas that have no motive data of their own.
func (a AreaKind) FixedReasons() []ReasonShare {
	if a != AreaLaboratory {
		return nil
	}
	return []ReasonShare{
		{Reason: "Initial diagnosis", Percentage: 45},
		{Reason: "Follow-up", Percentage: 35},
		{Reason: "Post-operative control", Percentage: 15},
		{Reason: "Preventive screening", Percentage: 5},
	}
}
