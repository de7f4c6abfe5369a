package model

import "fmt"

// Category classifies a lifecycle cost record.
// Keep these values stable; they are written to model files and ledger CSV output.
type Category string

const (
	CategoryConstruction  Category = "Construction"
	CategorySalvage       Category = "Salvage"
	CategoryMaintenance   Category = "Maintenance"
	CategoryOperation     Category = "Operation"
	CategoryReplacement   Category = "Replacement"
	CategoryMinorOverhaul Category = "MinorOverhaul"
	CategoryMajorOverhaul Category = "MajorOverhaul"
)

// IsCapital reports whether costs in this category count toward capital cost
// (the construction and salvage side of the ledger).
func (c Category) IsCapital() bool {
	return c == CategoryConstruction || c == CategorySalvage
}

// IsRecurring reports whether the category is written as a recurring cost when
// translated to a workspace.
func (c Category) IsRecurring() bool {
	switch c {
	case CategoryMaintenance, CategoryOperation, CategoryReplacement, CategoryMinorOverhaul, CategoryMajorOverhaul:
		return true
	default:
		return false
	}
}

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryConstruction, CategorySalvage, CategoryMaintenance, CategoryOperation,
		CategoryReplacement, CategoryMinorOverhaul, CategoryMajorOverhaul:
		return c, nil
	default:
		return "", fmt.Errorf("unknown lifecycle cost category %q", s)
	}
}

// CostUnits describes how a record's cost scales with the item it is attached to.
type CostUnits string

// CostPerEach is the only unit the measures create: the cost applies once per item.
const CostPerEach CostUnits = "CostPerEach"

func ParseCostUnits(s string) (CostUnits, error) {
	if CostUnits(s) == CostPerEach {
		return CostPerEach, nil
	}
	return "", fmt.Errorf("unsupported lifecycle cost units %q", s)
}
