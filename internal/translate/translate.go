// Package translate renders a building model as a definition-format
// workspace the simulation engine can read.
package translate

import (
	"fmt"
	"strconv"

	"energy-measures/internal/idf"
	"energy-measures/internal/model"
)

const (
	EngineVersion = "24.1"

	alwaysOn = "Always On Discrete"
	autosize = "autosize"
)

// ToWorkspace translates m. Air loops come out sorted by name, each followed
// by its supply components in flow order, then the lifecycle cost objects.
func ToWorkspace(m *model.Model) *idf.Workspace {
	ws := idf.NewWorkspace()

	ws.AddObject(idf.NewObject("Version", EngineVersion).WithComments("Version Identifier"))
	ws.AddObject(building(m.Building()))
	if n, ok := m.TimestepsPerHour(); ok {
		ws.AddObject(idf.NewObject("Timestep", strconv.Itoa(n)).WithComments("Number of Timesteps per Hour"))
	}

	for _, loop := range m.AirLoopHVACs() {
		ws.AddObject(airLoop(loop))
		for _, c := range loop.SupplyComponents() {
			if o := component(c); o != nil {
				ws.AddObject(o)
			}
		}
	}

	params := m.LCCParameters
	ws.AddObject(lccParameters(params))
	for _, l := range m.AllLifeCycleCosts() {
		ws.AddObjects(lifeCycleCost(l, params.LengthOfStudyPeriodYears))
	}
	return ws
}

func building(b *model.Building) *idf.Object {
	return idf.NewObject("Building",
		b.Name(), "0", "Suburbs", "0.04", "0.4", "FullExterior", "25", "6",
	).WithComments(
		"Name",
		"North Axis {deg}",
		"Terrain",
		"Loads Convergence Tolerance Value {W}",
		"Temperature Convergence Tolerance Value {deltaC}",
		"Solar Distribution",
		"Maximum Number of Warmup Days",
		"Minimum Number of Warmup Days",
	)
}

func airLoop(a *model.AirLoopHVAC) *idf.Object {
	name := a.Name()
	return idf.NewObject("AirLoopHVAC",
		name, "", "", autosize, name+" Supply Branches", "",
		name+" Supply Inlet Node", name+" Demand Outlet Node", name+" Demand Inlet Node", name+" Supply Outlet Node",
	).WithComments(
		"Name",
		"Controller List Name",
		"Availability Manager List Name",
		"Design Supply Air Flow Rate {m3/s}",
		"Branch List Name",
		"Connector List Name",
		"Supply Side Inlet Node Name",
		"Demand Side Outlet Node Name",
		"Demand Side Inlet Node Names",
		"Supply Side Outlet Node Names",
	)
}

func component(c model.Component) *idf.Object {
	switch x := c.(type) {
	case *model.CoilCoolingDXTwoSpeed:
		return twoSpeedCoil(x)
	case *model.CoilCoolingDXSingleSpeed:
		return idf.NewObject("Coil:Cooling:DX:SingleSpeed",
			x.Name(), alwaysOn, autosize, autosize, cop(x.RatedCOP()), autosize,
		).WithComments(
			"Name",
			"Availability Schedule Name",
			"Gross Rated Total Cooling Capacity {W}",
			"Gross Rated Sensible Heat Ratio",
			"Gross Rated Cooling COP {W/W}",
			"Rated Air Flow Rate {m3/s}",
		)
	case *model.CoilHeatingGas:
		return idf.NewObject("Coil:Heating:Fuel",
			x.Name(), alwaysOn, "NaturalGas", formatFloat(x.BurnerEfficiency), autosize,
		).WithComments(
			"Name",
			"Availability Schedule Name",
			"Fuel Type",
			"Burner Efficiency",
			"Nominal Capacity {W}",
		)
	case *model.FanConstantVolume:
		return idf.NewObject("Fan:ConstantVolume",
			x.Name(), alwaysOn, formatFloat(x.FanEfficiency), formatFloat(x.PressureRisePa), autosize,
		).WithComments(
			"Name",
			"Availability Schedule Name",
			"Fan Total Efficiency",
			"Pressure Rise {Pa}",
			"Maximum Flow Rate {m3/s}",
		)
	}
	return nil
}

// twoSpeedCoil leaves a missing COP blank so the engine applies its default.
func twoSpeedCoil(c *model.CoilCoolingDXTwoSpeed) *idf.Object {
	name := c.Name()
	return idf.NewObject("Coil:Cooling:DX:TwoSpeed",
		name, alwaysOn,
		autosize, autosize, cop(c.RatedHighSpeedCOP()), autosize,
		"",
		name+" Inlet Node", name+" Outlet Node",
		name+" CapFT", name+" CapFF", name+" EIRFT", name+" EIRFF", name+" PLFFPLR",
		autosize, autosize, cop(c.RatedLowSpeedCOP()), autosize,
	).WithComments(
		"Name",
		"Availability Schedule Name",
		"High Speed Gross Rated Total Cooling Capacity {W}",
		"High Speed Rated Sensible Heat Ratio",
		"High Speed Gross Rated Cooling COP {W/W}",
		"High Speed Rated Air Flow Rate {m3/s}",
		"Unit Internal Static Air Pressure {Pa}",
		"Air Inlet Node Name",
		"Air Outlet Node Name",
		"Total Cooling Capacity Function of Temperature Curve Name",
		"Total Cooling Capacity Function of Flow Fraction Curve Name",
		"Energy Input Ratio Function of Temperature Curve Name",
		"Energy Input Ratio Function of Flow Fraction Curve Name",
		"Part Load Fraction Correlation Curve Name",
		"Low Speed Gross Rated Total Cooling Capacity {W}",
		"Low Speed Gross Rated Sensible Heat Ratio",
		"Low Speed Gross Rated Cooling COP {W/W}",
		"Low Speed Rated Air Flow Rate {m3/s}",
	)
}

func lccParameters(p model.LifeCycleCostParameters) *idf.Object {
	return idf.NewObject("LifeCycleCost:Parameters",
		"Life Cycle Cost Parameters", "EndOfYear", "ConstantDollar",
		formatFloat(p.RealDiscountRate), "", "",
		"January", "", "January", "",
		strconv.Itoa(p.LengthOfStudyPeriodYears),
	).WithComments(
		"Name",
		"Discounting Convention",
		"Inflation Approach",
		"Real Discount Rate",
		"Nominal Discount Rate",
		"Inflation",
		"Base Date Month",
		"Base Date Year",
		"Service Date Month",
		"Service Date Year",
		"Length of Study Period in Years",
	)
}

// lifeCycleCost translates one record. Capital costs become one
// NonrecurringCost per occurrence inside the study period; everything else is
// a single RecurringCosts object.
func lifeCycleCost(l *model.LifeCycleCost, studyYears int) []*idf.Object {
	if !l.Category.IsRecurring() {
		var out []*idf.Object
		for i, year := range l.Occurrences(studyYears) {
			name := l.Name
			if i > 0 {
				name = fmt.Sprintf("%s %d", l.Name, i)
			}
			out = append(out, idf.NewObject("LifeCycleCost:NonrecurringCost",
				name, string(l.Category), l.TotalCost().String(), "ServicePeriod", strconv.Itoa(year), "0",
			).WithComments(
				"Name",
				"Category",
				"Cost {$}",
				"Start of Costs",
				"Years from Start",
				"Months from Start",
			))
		}
		return out
	}
	return []*idf.Object{idf.NewObject("LifeCycleCost:RecurringCosts",
		l.Name, string(l.Category), l.TotalCost().String(), "ServicePeriod",
		strconv.Itoa(l.YearsFromStart), "0", strconv.Itoa(l.RepeatPeriodYears), "0",
	).WithComments(
		"Name",
		"Category",
		"Cost {$}",
		"Start of Costs",
		"Years from Start",
		"Months from Start",
		"Repeat Period Years",
		"Repeat Period Months",
	)}
}

func cop(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return formatFloat(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
