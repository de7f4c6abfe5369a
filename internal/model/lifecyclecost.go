package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// LifeCycleCost is a dated monetary entry attached to a model object.
//
// Records are value objects: measures remove and recreate them freely, and no
// other object holds a reference to one.
type LifeCycleCost struct {
	Handle    Handle
	Name      string
	Item      Handle // object the cost is attached to
	Category  Category
	CostUnits CostUnits
	Cost      decimal.Decimal

	// RepeatPeriodYears of 0 means the cost occurs once.
	RepeatPeriodYears int
	YearsFromStart    int
}

// TotalCost is the cost of one occurrence of the record. With CostPerEach
// units the record cost applies to its single item.
func (l *LifeCycleCost) TotalCost() decimal.Decimal {
	return l.Cost
}

// IsYear0Capital reports whether the record is a construction or salvage cost
// that lands in the first year of the study.
func (l *LifeCycleCost) IsYear0Capital() bool {
	return l.Category.IsCapital() && l.YearsFromStart == 0
}

// Validate checks the record on its own, without the model it belongs to.
func (l *LifeCycleCost) Validate() error {
	if _, err := ParseCategory(string(l.Category)); err != nil {
		return err
	}
	if _, err := ParseCostUnits(string(l.CostUnits)); err != nil {
		return err
	}
	if l.RepeatPeriodYears < 0 {
		return errors.New("RepeatPeriodYears must be >= 0")
	}
	if l.YearsFromStart < 0 {
		return errors.New("YearsFromStart must be >= 0")
	}
	return nil
}

// LifeCycleCostParameters controls how lifecycle costs are analysed.
type LifeCycleCostParameters struct {
	AnalysisType             string
	LengthOfStudyPeriodYears int
	RealDiscountRate         float64
}

// DefaultLifeCycleCostParameters mirrors the usual federal (FEMP) defaults.
func DefaultLifeCycleCostParameters() LifeCycleCostParameters {
	return LifeCycleCostParameters{
		AnalysisType:             "FEMP",
		LengthOfStudyPeriodYears: 25,
		RealDiscountRate:         0.03,
	}
}

func (p LifeCycleCostParameters) Validate() error {
	if p.LengthOfStudyPeriodYears < 1 || p.LengthOfStudyPeriodYears > 100 {
		return errors.New("LengthOfStudyPeriodYears must be in [1, 100]")
	}
	if p.RealDiscountRate < 0 || p.RealDiscountRate >= 1 {
		return errors.New("RealDiscountRate must be in [0, 1)")
	}
	return nil
}

// CreateLifeCycleCost attaches a new record to item and returns it.
func (m *Model) CreateLifeCycleCost(name string, item Object, cost decimal.Decimal, units CostUnits, category Category, repeatPeriodYears, yearsFromStart int) (*LifeCycleCost, error) {
	if item == nil {
		return nil, errors.New("lifecycle cost item is nil")
	}
	if _, err := m.ObjectByHandle(item.Handle()); err != nil {
		return nil, fmt.Errorf("lifecycle cost %q: %w", name, err)
	}
	lcc := &LifeCycleCost{
		Handle:            NewHandle(),
		Name:              name,
		Item:              item.Handle(),
		Category:          category,
		CostUnits:         units,
		Cost:              cost,
		RepeatPeriodYears: repeatPeriodYears,
		YearsFromStart:    yearsFromStart,
	}
	if err := lcc.Validate(); err != nil {
		return nil, fmt.Errorf("lifecycle cost %q: %w", name, err)
	}
	m.lccs = append(m.lccs, lcc)
	return lcc, nil
}

// LifeCycleCosts returns the records attached to item, in creation order.
func (m *Model) LifeCycleCosts(item Handle) []*LifeCycleCost {
	var out []*LifeCycleCost
	for _, l := range m.lccs {
		if l.Item == item {
			out = append(out, l)
		}
	}
	return out
}

// AllLifeCycleCosts returns every record in the model.
func (m *Model) AllLifeCycleCosts() []*LifeCycleCost {
	out := make([]*LifeCycleCost, len(m.lccs))
	copy(out, m.lccs)
	return out
}

// RemoveLifeCycleCosts deletes every record attached to item and returns how
// many were removed.
func (m *Model) RemoveLifeCycleCosts(item Handle) int {
	kept := m.lccs[:0]
	removed := 0
	for _, l := range m.lccs {
		if l.Item == item {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	// clear the tail so removed records can be collected
	for i := len(kept); i < len(m.lccs); i++ {
		m.lccs[i] = nil
	}
	m.lccs = kept
	return removed
}

// Year0CapitalCost sums the construction and salvage records that occur in
// year zero.
func Year0CapitalCost(records []*LifeCycleCost) decimal.Decimal {
	total := decimal.Zero
	for _, l := range records {
		if l.IsYear0Capital() {
			total = total.Add(l.TotalCost())
		}
	}
	return total
}

// SumByCategory totals records of one category regardless of timing.
func SumByCategory(records []*LifeCycleCost, category Category) decimal.Decimal {
	total := decimal.Zero
	for _, l := range records {
		if l.Category == category {
			total = total.Add(l.TotalCost())
		}
	}
	return total
}

// Occurrences lists the years within a study of studyYears in which the
// record is incurred: once at YearsFromStart when RepeatPeriodYears is 0,
// otherwise every RepeatPeriodYears from there on.
func (l *LifeCycleCost) Occurrences(studyYears int) []int {
	var years []int
	for y := l.YearsFromStart; y <= studyYears; y += l.RepeatPeriodYears {
		years = append(years, y)
		if l.RepeatPeriodYears == 0 {
			break
		}
	}
	return years
}
