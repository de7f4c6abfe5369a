// Package twospeedcop sets the rated high and low speed COP of two-speed DX
// cooling coils and optionally replaces their lifecycle costs.
package twospeedcop

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"energy-measures/internal/measure"
	"energy-measures/internal/model"

	"github.com/shopspring/decimal"
)

const (
	argObject               = "object"
	argCOPHigh              = "cop_high"
	argCOPLow               = "cop_low"
	argRemoveCosts          = "remove_costs"
	argMaterialCost         = "material_cost"
	argDemolitionCost       = "demolition_cost"
	argYearsUntilCostsStart = "years_until_costs_start"
	argDemoCostInitialConst = "demo_cost_initial_const"
	argExpectedLife         = "expected_life"
	argOMCost               = "om_cost"
	argOMFrequency          = "om_frequency"

	allAirLoops = "*All Air Loops*"

	// COPs above this are accepted with a warning.
	plausibleMaxCOP = 10.0
)

// Measure edits the COP and lifecycle costs of two-speed DX cooling coils.
type Measure struct{}

// New returns the two-speed COP measure.
func New() *Measure { return &Measure{} }

func (*Measure) Name() string        { return "set_cop_two_speed_dx" }
func (*Measure) DisplayName() string { return "Set COP for Two Speed DX Cooling Units" }

func (*Measure) Description() string {
	return "Sets the rated high and low speed COP of two speed DX cooling units on one air loop or on all air loops, " +
		"and optionally replaces their lifecycle costs with new material, demolition and O & M costs."
}

func (*Measure) ModelerDescription() string {
	return "Both COP fields of every Coil:Cooling:DX:TwoSpeed among the supply components of the selected loop(s) are " +
		"overwritten. Existing lifecycle costs on those coils can be removed to model a replacement rather than an upgrade. " +
		"Year 0 Construction and Salvage costs are reported before and after."
}

// Arguments lists only air loops that hold a two-speed coil, sorted by name,
// followed by the building standing in for every loop.
func (*Measure) Arguments(m *model.Model) measure.ArgumentVector {
	var choices []measure.Choice
	for _, loop := range m.AirLoopHVACs() {
		if len(loop.TwoSpeedDXCoils()) == 0 {
			continue
		}
		choices = append(choices, measure.Choice{Value: loop.Handle().String(), Display: loop.Name()})
	}
	choices = append(choices, measure.Choice{Value: m.Building().Handle().String(), Display: allAirLoops})

	return measure.ArgumentVector{
		measure.NewChoice(argObject, "Choose an Air Loop with a two speed DX Cooling Unit to Alter.", choices, allAirLoops),
		measure.NewDouble(argCOPHigh, "Rated High Speed COP", 4.0),
		measure.NewDouble(argCOPLow, "Rated Low Speed COP", 4.0),
		measure.NewBool(argRemoveCosts, "Remove Baseline Costs From Effected Cooling Coil DX Two Speed Units?", true),
		measure.NewDouble(argMaterialCost, "Material and Installation Costs per Cooling Coil DX Two Speed Unit ($).", 0).
			WithDescription("", "$"),
		measure.NewDouble(argDemolitionCost, "Demolition Costs per Cooling Coil DX Two Speed Unit ($).", 0).
			WithDescription("", "$"),
		measure.NewInteger(argYearsUntilCostsStart, "Years Until Costs Start (whole years).", 0).
			WithDescription("", "years"),
		measure.NewBool(argDemoCostInitialConst, "Demolition Costs Occur During Initial Construction?", false),
		measure.NewInteger(argExpectedLife, "Expected Life (whole years).", 20).
			WithDescription("", "years"),
		measure.NewDouble(argOMCost, "O & M Costs per Cooling Coil DX Two Speed Unit ($).", 0).
			WithDescription("", "$"),
		measure.NewInteger(argOMFrequency, "O & M Frequency (whole years).", 1).
			WithDescription("", "years"),
	}
}

type params struct {
	copHigh, copLow      float64
	removeCosts          bool
	materialCost         decimal.Decimal
	demolitionCost       decimal.Decimal
	omCost               decimal.Decimal
	yearsUntilCostsStart int
	demoCostInitialConst bool
	expectedLife         int
	omFrequency          int
}

func readParams(v measure.Values) params {
	return params{
		copHigh:              v.Double(argCOPHigh),
		copLow:               v.Double(argCOPLow),
		removeCosts:          v.Bool(argRemoveCosts),
		materialCost:         decimal.NewFromFloat(v.Double(argMaterialCost)),
		demolitionCost:       decimal.NewFromFloat(v.Double(argDemolitionCost)),
		omCost:               decimal.NewFromFloat(v.Double(argOMCost)),
		yearsUntilCostsStart: v.Integer(argYearsUntilCostsStart),
		demoCostInitialConst: v.Bool(argDemoCostInitialConst),
		expectedLife:         v.Integer(argExpectedLife),
		omFrequency:          v.Integer(argOMFrequency),
	}
}

// check registers every problem with p and reports whether the run may go on.
func (p params) check(r *measure.Runner) bool {
	ok := true
	if !(p.copHigh > 0) || math.IsInf(p.copHigh, 0) {
		r.RegisterError("Please enter a positive value for Rated High Speed COP.")
		ok = false
	} else if p.copHigh > plausibleMaxCOP {
		r.RegisterWarning(fmt.Sprintf("The requested Rated High Speed COP of %s seems unusually high", fmtCOP(p.copHigh)))
	}
	if !(p.copLow > 0) || math.IsInf(p.copLow, 0) {
		r.RegisterError("Please enter a positive value for Rated Low Speed COP.")
		ok = false
	} else if p.copLow > plausibleMaxCOP {
		r.RegisterWarning(fmt.Sprintf("The requested Rated Low Speed COP of %s seems unusually high", fmtCOP(p.copLow)))
	}
	if p.yearsUntilCostsStart < 0 || p.yearsUntilCostsStart > p.expectedLife {
		r.RegisterError("Years until costs start should be a non-negative integer less than Expected Life.")
		ok = false
	}
	if p.expectedLife < 1 || p.expectedLife > 100 {
		r.RegisterError("Choose an integer greater than 0 and less than or equal to 100 for Expected Life.")
		ok = false
	}
	if p.omFrequency < 1 {
		r.RegisterError("Choose an integer greater than 0 for O & M Frequency.")
		ok = false
	}
	return ok
}

func (p params) costsRequested() bool {
	return !(p.materialCost.IsZero() && p.demolitionCost.IsZero() && p.omCost.IsZero())
}

type target struct {
	loop *model.AirLoopHVAC
	coil *model.CoilCoolingDXTwoSpeed
}

// Run validates the arguments before touching the model, then sets both COP
// fields on every targeted coil and rewrites its lifecycle costs.
func (ms *Measure) Run(ctx context.Context, m *model.Model, user measure.UserArguments) measure.Result {
	r := measure.NewRunner(ms.Name())
	defs := ms.Arguments(m)

	// A stale handle gets its own message instead of the generic choice error.
	if raw := strings.TrimSpace(user[argObject]); raw != "" {
		def, _ := defs.Lookup(argObject)
		if _, ok := def.MatchChoice(raw); !ok {
			r.RegisterError(fmt.Sprintf("The selected air_loop with handle '%s' was not found in the model. It may have been removed by another measure.", raw))
			return r.Result()
		}
	}

	vals, ok := r.ValidateUserArguments(defs, user)
	if !ok {
		return r.Result()
	}
	p := readParams(vals)

	loops, ok := resolveLoops(m, r, vals.String(argObject))
	if !ok {
		return r.Result()
	}
	if !p.check(r) {
		return r.Result()
	}
	if !p.costsRequested() {
		r.RegisterInfo("No costs were requested for Coil Cooling DX Two Speed units.")
	}
	if err := ctx.Err(); err != nil {
		r.RegisterError(err.Error())
		return r.Result()
	}

	var targets []target
	for _, loop := range loops {
		for _, coil := range loop.TwoSpeedDXCoils() {
			targets = append(targets, target{loop: loop, coil: coil})
		}
	}
	if len(targets) == 0 {
		r.RegisterInitialCondition(initialCondition(nil, nil, decimal.Zero))
		r.RegisterAsNotApplicable("The affected loop(s) does not contain any two speed DX cooling units, the model will not be altered.")
		return r.Result()
	}

	var highs, lows []float64
	var missingHigh, missingLow int
	baselineYear0, proposedYear0, baselineDemolitionCosts := decimal.Zero, decimal.Zero, decimal.Zero

	for _, t := range targets {
		coil, loopName := t.coil, t.loop.Name()

		if v, ok := coil.RatedHighSpeedCOP(); ok {
			r.RegisterInfo(fmt.Sprintf("Changing the Rated High Speed COP from %s to %s for two speed dx unit '%s' on air loop '%s'",
				fmtCOP(v), fmtCOP(p.copHigh), coil.Name(), loopName))
			highs = append(highs, v)
		} else {
			r.RegisterInfo(fmt.Sprintf("Setting the Rated High Speed COP to %s for two speed dx unit '%s' on air loop '%s'. The original object did not have a Rated High Speed COP value",
				fmtCOP(p.copHigh), coil.Name(), loopName))
			missingHigh++
		}
		if err := coil.SetRatedHighSpeedCOP(p.copHigh); err != nil {
			r.RegisterError(err.Error())
			return r.Result()
		}

		if v, ok := coil.RatedLowSpeedCOP(); ok {
			r.RegisterInfo(fmt.Sprintf("Changing the Rated Low Speed COP from %s to %s for two speed dx unit '%s' on air loop '%s'",
				fmtCOP(v), fmtCOP(p.copLow), coil.Name(), loopName))
			lows = append(lows, v)
		} else {
			r.RegisterInfo(fmt.Sprintf("Setting the Rated Low Speed COP to %s for two speed dx unit '%s' on air loop '%s'. The original object did not have a Rated Low Speed COP value",
				fmtCOP(p.copLow), coil.Name(), loopName))
			missingLow++
		}
		if err := coil.SetRatedLowSpeedCOP(p.copLow); err != nil {
			r.RegisterError(err.Error())
			return r.Result()
		}

		existing := m.LifeCycleCosts(coil.Handle())
		baselineYear0 = baselineYear0.Add(model.Year0CapitalCost(existing))
		baselineDemolitionCosts = baselineDemolitionCosts.Add(model.SumByCategory(existing, model.CategorySalvage))

		// Removing the old records models a replacement rather than an upgrade.
		if len(existing) > 0 && p.removeCosts {
			r.RegisterInfo(fmt.Sprintf("Removing existing lifecycle cost objects associated with %s", coil.Name()))
			m.RemoveLifeCycleCosts(coil.Handle())
		}

		if p.costsRequested() {
			created, err := addCosts(m, coil, p)
			if err != nil {
				r.RegisterError(err.Error())
				return r.Result()
			}
			proposedYear0 = proposedYear0.Add(model.Year0CapitalCost(created))
		}
	}

	if p.demoCostInitialConst {
		// One-time cost, so the repeat period is 0.
		demo, err := m.CreateLifeCycleCost("LCC_baseline_demo", m.Building(), baselineDemolitionCosts,
			model.CostPerEach, model.CategorySalvage, 0, p.yearsUntilCostsStart)
		if err != nil {
			r.RegisterError(err.Error())
			return r.Result()
		}
		r.RegisterInfo(fmt.Sprintf("Adding one time cost of $%s related to demolition of baseline objects.",
			measure.NeatNumber(demo.TotalCost(), 0)))
		if demo.IsYear0Capital() {
			proposedYear0 = proposedYear0.Add(demo.TotalCost())
		}
	}

	r.RegisterInitialCondition(initialCondition(highs, lows, baselineYear0))

	if len(highs)+missingHigh != len(lows)+missingLow {
		r.RegisterWarning("Something went wrong with the measure, not clear on count of two speed dx objects")
	}

	r.RegisterFinalCondition(fmt.Sprintf("%d two speed dx units had their High and Low speed COP values set to %s for high, and %s for low. Final year 0 capital costs for affected Coil Cooling DX Two Speed units is $%s.",
		len(targets), fmtCOP(p.copHigh), fmtCOP(p.copLow), measure.NeatNumber(proposedYear0, 0)))
	return r.Result()
}

// resolveLoops turns the chosen handle into the loops to edit. The building
// handle selects every loop in the model.
func resolveLoops(m *model.Model, r *measure.Runner, value string) ([]*model.AirLoopHVAC, bool) {
	if value == "" {
		r.RegisterError("No air loop was chosen.")
		return nil, false
	}
	h, err := model.ParseHandle(value)
	if err != nil {
		r.RegisterError(fmt.Sprintf("The selected air_loop with handle '%s' was not found in the model. It may have been removed by another measure.", value))
		return nil, false
	}
	obj, err := m.ObjectByHandle(h)
	if err != nil {
		r.RegisterError(fmt.Sprintf("The selected air_loop with handle '%s' was not found in the model. It may have been removed by another measure.", value))
		return nil, false
	}
	switch o := obj.(type) {
	case *model.AirLoopHVAC:
		return []*model.AirLoopHVAC{o}, true
	case *model.Building:
		return m.AirLoopHVACs(), true
	default:
		r.RegisterError(fmt.Sprintf("The selected object '%s' is a %s, not an air loop.", o.Name(), o.Type()))
		return nil, false
	}
}

// addCosts creates the material, demolition and O & M records for one coil
// and returns them.
func addCosts(m *model.Model, coil *model.CoilCoolingDXTwoSpeed, p params) ([]*model.LifeCycleCost, error) {
	specs := []struct {
		prefix   string
		cost     decimal.Decimal
		category model.Category
		repeat   int
		start    int
	}{
		{"LCC_Mat", p.materialCost, model.CategoryConstruction, p.expectedLife, p.yearsUntilCostsStart},
		// The demolition of this unit happens when it reaches the end of its life.
		{"LCC_Demo", p.demolitionCost, model.CategorySalvage, p.expectedLife, p.yearsUntilCostsStart + p.expectedLife},
		{"LCC_OM", p.omCost, model.CategoryMaintenance, p.omFrequency, 0},
	}

	created := make([]*model.LifeCycleCost, 0, len(specs))
	for _, s := range specs {
		lcc, err := m.CreateLifeCycleCost(fmt.Sprintf("%s - %s", s.prefix, coil.Name()), coil, s.cost,
			model.CostPerEach, s.category, s.repeat, s.start)
		if err != nil {
			return nil, fmt.Errorf("creating %s for %s: %w", s.prefix, coil.Name(), err)
		}
		created = append(created, lcc)
	}
	return created, nil
}

func initialCondition(highs, lows []float64, baselineYear0 decimal.Decimal) string {
	hiMin, hiMax := span(highs)
	loMin, loMax := span(lows)
	return fmt.Sprintf("The starting Rated High Speed COP values in affected loop(s) range from %s to %s. The starting Rated Low Speed COP values range from %s to %s. Initial year 0 capital costs for affected Coil Cooling DX Two Speed units is $%s.",
		hiMin, hiMax, loMin, loMax, measure.NeatNumber(baselineYear0, 0))
}

// span returns the formatted min and max of values, or "n/a" for both when
// there are none.
func span(values []float64) (string, string) {
	if len(values) == 0 {
		return "n/a", "n/a"
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return fmtCOP(lo), fmtCOP(hi)
}

func fmtCOP(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
