package analysis

import (
	"sort"

	"energy-measures/internal/model"

	"github.com/shopspring/decimal"
)

// ObjectCost is the lifecycle cost attached to one model object.
type ObjectCost struct {
	Handle       model.Handle     `json:"handle"`
	Name         string           `json:"name"`
	Type         model.ObjectType `json:"type"`
	Records      int              `json:"records"`
	Year0Capital decimal.Decimal  `json:"year0_capital"`
	Undiscounted decimal.Decimal  `json:"undiscounted"`
	PresentValue decimal.Decimal  `json:"present_value"`
}

// RankByPresentValue summarizes every object that carries lifecycle costs and
// sorts them by present value, most expensive first.
func RankByPresentValue(m *model.Model) []ObjectCost {
	var out []ObjectCost
	for _, o := range m.Objects() {
		records := m.LifeCycleCosts(o.Handle())
		if len(records) == 0 {
			continue
		}
		s := Summarize(records, m.LCCParameters)
		out = append(out, ObjectCost{
			Handle:       o.Handle(),
			Name:         o.Name(),
			Type:         o.Type(),
			Records:      len(records),
			Year0Capital: s.Year0Capital,
			Undiscounted: s.Undiscounted,
			PresentValue: s.PresentValue,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PresentValue.Equal(out[j].PresentValue) {
			return out[i].PresentValue.GreaterThan(out[j].PresentValue)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
