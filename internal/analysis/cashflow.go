package analysis

import (
	"sort"

	"energy-measures/internal/model"

	"github.com/shopspring/decimal"
)

// CashFlow is what is spent in one year of the study, undiscounted.
type CashFlow struct {
	Year       int                                `json:"year"`
	ByCategory map[model.Category]decimal.Decimal `json:"by_category"`
	Total      decimal.Decimal                    `json:"total"`
}

// Summary is the lifecycle cost picture of a set of records over one study.
type Summary struct {
	StudyYears   int                                `json:"study_years"`
	DiscountRate float64                            `json:"discount_rate"`
	Records      int                                `json:"records"`
	Years        []CashFlow                         `json:"years"`
	ByCategory   map[model.Category]decimal.Decimal `json:"by_category"`
	Undiscounted decimal.Decimal                    `json:"undiscounted"`
	PresentValue decimal.Decimal                    `json:"present_value"`
	Year0Capital decimal.Decimal                    `json:"year0_capital"`
}

// CashFlows spreads records over years 0..studyYears. Occurrences past the
// end of the study are dropped.
func CashFlows(records []*model.LifeCycleCost, studyYears int) []CashFlow {
	if studyYears < 0 {
		studyYears = 0
	}
	flows := make([]CashFlow, studyYears+1)
	for y := range flows {
		flows[y] = CashFlow{Year: y, ByCategory: map[model.Category]decimal.Decimal{}, Total: decimal.Zero}
	}
	for _, l := range records {
		cost := l.TotalCost()
		for _, y := range l.Occurrences(studyYears) {
			f := &flows[y]
			f.ByCategory[l.Category] = f.ByCategory[l.Category].Add(cost)
			f.Total = f.Total.Add(cost)
		}
	}
	return flows
}

// PresentValue discounts each year's total at rate, year 0 undiscounted, and
// rounds to cents.
func PresentValue(flows []CashFlow, rate float64) decimal.Decimal {
	pv := decimal.Zero
	base := decimal.NewFromFloat(1 + rate)
	for _, f := range flows {
		if f.Total.IsZero() {
			continue
		}
		factor := base.Pow(decimal.NewFromInt(int64(f.Year)))
		pv = pv.Add(f.Total.Div(factor))
	}
	return pv.Round(2)
}

// Summarize runs the study described by params over records.
func Summarize(records []*model.LifeCycleCost, params model.LifeCycleCostParameters) Summary {
	flows := CashFlows(records, params.LengthOfStudyPeriodYears)
	s := Summary{
		StudyYears:   params.LengthOfStudyPeriodYears,
		DiscountRate: params.RealDiscountRate,
		Records:      len(records),
		Years:        flows,
		ByCategory:   map[model.Category]decimal.Decimal{},
		Undiscounted: decimal.Zero,
		PresentValue: PresentValue(flows, params.RealDiscountRate),
		Year0Capital: model.Year0CapitalCost(records),
	}
	for _, f := range flows {
		for cat, v := range f.ByCategory {
			s.ByCategory[cat] = s.ByCategory[cat].Add(v)
		}
		s.Undiscounted = s.Undiscounted.Add(f.Total)
	}
	return s
}

// Categories returns the categories present in s, sorted.
func (s Summary) Categories() []model.Category {
	out := make([]model.Category, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
