package workflow

import (
	"energy-measures/internal/analysis"
	"energy-measures/internal/model"

	"github.com/shopspring/decimal"
)

// LedgerRow is one lifecycle cost record of the final model, with the object
// it is attached to and its present value over the model's study period.
type LedgerRow struct {
	Index int

	Handle model.Handle
	Name   string

	ItemHandle model.Handle
	ItemName   string
	ItemType   model.ObjectType

	Category          model.Category
	CostUnits         model.CostUnits
	Cost              decimal.Decimal
	RepeatPeriodYears int
	YearsFromStart    int

	Year0Capital bool
	PresentValue decimal.Decimal
}

func BuildLedger(m *model.Model) []LedgerRow {
	records := m.AllLifeCycleCosts()
	rows := make([]LedgerRow, 0, len(records))
	for i, l := range records {
		row := LedgerRow{
			Index:             i,
			Handle:            l.Handle,
			Name:              l.Name,
			ItemHandle:        l.Item,
			Category:          l.Category,
			CostUnits:         l.CostUnits,
			Cost:              l.Cost,
			RepeatPeriodYears: l.RepeatPeriodYears,
			YearsFromStart:    l.YearsFromStart,
			Year0Capital:      l.IsYear0Capital(),
			PresentValue:      analysis.Summarize([]*model.LifeCycleCost{l}, m.LCCParameters).PresentValue,
		}
		if item, err := m.ObjectByHandle(l.Item); err == nil {
			row.ItemName = item.Name()
			row.ItemType = item.Type()
		}
		rows = append(rows, row)
	}
	return rows
}

// Year0CapitalTotal sums the year-0 capital rows.
func Year0CapitalTotal(rows []LedgerRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if r.Year0Capital {
			total = total.Add(r.Cost)
		}
	}
	return total
}
