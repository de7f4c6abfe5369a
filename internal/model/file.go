package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// File is the JSON shape of a model on disk.
//
// Example:
//
//	{
//	  "building": {"handle": "…", "name": "Office"},
//	  "timesteps_per_hour": 6,
//	  "air_loops": [
//	    {"handle": "…", "name": "AHU-1", "supply_components": [
//	      {"type": "OS:Coil:Cooling:DX:TwoSpeed", "handle": "…", "name": "DX-1",
//	       "rated_high_speed_cop": 3.2, "rated_low_speed_cop": 3.4}
//	    ]}
//	  ],
//	  "life_cycle_costs": [ ... ]
//	}
type File struct {
	Building         ObjectFile          `json:"building"`
	TimestepsPerHour int                 `json:"timesteps_per_hour,omitempty"`
	AirLoops         []AirLoopFile       `json:"air_loops"`
	LifeCycleCosts   []LifeCycleCostFile `json:"life_cycle_costs"`
	LCCParameters    *LCCParametersFile  `json:"life_cycle_cost_parameters,omitempty"`
}

type ObjectFile struct {
	Handle Handle `json:"handle"`
	Name   string `json:"name"`
}

type AirLoopFile struct {
	ObjectFile
	SupplyComponents []ComponentFile `json:"supply_components"`
}

// ComponentFile is a tagged union over the component kinds; only the fields
// relevant to Type are populated.
type ComponentFile struct {
	Type ObjectType `json:"type"`
	ObjectFile

	RatedHighSpeedCOP *float64 `json:"rated_high_speed_cop,omitempty"`
	RatedLowSpeedCOP  *float64 `json:"rated_low_speed_cop,omitempty"`
	RatedCOP          *float64 `json:"rated_cop,omitempty"`
	BurnerEfficiency  *float64 `json:"burner_efficiency,omitempty"`
	FanEfficiency     *float64 `json:"fan_efficiency,omitempty"`
	PressureRisePa    *float64 `json:"pressure_rise_pa,omitempty"`
}

type LifeCycleCostFile struct {
	Handle            Handle          `json:"handle"`
	Name              string          `json:"name"`
	Item              Handle          `json:"item"`
	Category          string          `json:"category"`
	CostUnits         string          `json:"cost_units"`
	Cost              decimal.Decimal `json:"cost"`
	RepeatPeriodYears int             `json:"repeat_period_years"`
	YearsFromStart    int             `json:"years_from_start"`
}

type LCCParametersFile struct {
	AnalysisType             string  `json:"analysis_type"`
	LengthOfStudyPeriodYears int     `json:"length_of_study_period_years"`
	RealDiscountRate         float64 `json:"real_discount_rate"`
}

// ToFile converts the model to its on-disk shape.
func (m *Model) ToFile() File {
	f := File{
		Building:         ObjectFile{Handle: m.building.handle, Name: m.building.name},
		TimestepsPerHour: m.timestepsPerHour,
		AirLoops:         make([]AirLoopFile, 0, len(m.airLoops)),
		LifeCycleCosts:   make([]LifeCycleCostFile, 0, len(m.lccs)),
		LCCParameters: &LCCParametersFile{
			AnalysisType:             m.LCCParameters.AnalysisType,
			LengthOfStudyPeriodYears: m.LCCParameters.LengthOfStudyPeriodYears,
			RealDiscountRate:         m.LCCParameters.RealDiscountRate,
		},
	}
	for _, loop := range m.airLoops {
		lf := AirLoopFile{
			ObjectFile:       ObjectFile{Handle: loop.handle, Name: loop.name},
			SupplyComponents: make([]ComponentFile, 0, len(loop.supply)),
		}
		for _, c := range loop.supply {
			lf.SupplyComponents = append(lf.SupplyComponents, componentToFile(c))
		}
		f.AirLoops = append(f.AirLoops, lf)
	}
	for _, l := range m.lccs {
		f.LifeCycleCosts = append(f.LifeCycleCosts, LifeCycleCostFile{
			Handle:            l.Handle,
			Name:              l.Name,
			Item:              l.Item,
			Category:          string(l.Category),
			CostUnits:         string(l.CostUnits),
			Cost:              l.Cost,
			RepeatPeriodYears: l.RepeatPeriodYears,
			YearsFromStart:    l.YearsFromStart,
		})
	}
	return f
}

// FromFile builds a model from its on-disk shape and validates it.
func FromFile(f File) (*Model, error) {
	m := &Model{
		building:         &Building{object: object{handle: orNew(f.Building.Handle), name: f.Building.Name}},
		timestepsPerHour: f.TimestepsPerHour,
		LCCParameters:    DefaultLifeCycleCostParameters(),
	}
	if f.TimestepsPerHour != 0 {
		if err := m.SetTimestepsPerHour(f.TimestepsPerHour); err != nil {
			return nil, err
		}
	}
	if p := f.LCCParameters; p != nil {
		m.LCCParameters = LifeCycleCostParameters{
			AnalysisType:             p.AnalysisType,
			LengthOfStudyPeriodYears: p.LengthOfStudyPeriodYears,
			RealDiscountRate:         p.RealDiscountRate,
		}
	}
	for _, lf := range f.AirLoops {
		loop := &AirLoopHVAC{object: object{handle: orNew(lf.Handle), name: lf.Name}}
		for _, cf := range lf.SupplyComponents {
			c, err := componentFromFile(cf)
			if err != nil {
				return nil, fmt.Errorf("air loop %q: %w", lf.Name, err)
			}
			loop.supply = append(loop.supply, c)
		}
		m.airLoops = append(m.airLoops, loop)
	}
	for _, lf := range f.LifeCycleCosts {
		cat, err := ParseCategory(lf.Category)
		if err != nil {
			return nil, fmt.Errorf("lifecycle cost %q: %w", lf.Name, err)
		}
		units, err := ParseCostUnits(lf.CostUnits)
		if err != nil {
			return nil, fmt.Errorf("lifecycle cost %q: %w", lf.Name, err)
		}
		m.lccs = append(m.lccs, &LifeCycleCost{
			Handle:            orNew(lf.Handle),
			Name:              lf.Name,
			Item:              lf.Item,
			Category:          cat,
			CostUnits:         units,
			Cost:              lf.Cost,
			RepeatPeriodYears: lf.RepeatPeriodYears,
			YearsFromStart:    lf.YearsFromStart,
		})
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToFile())
}

func (m *Model) UnmarshalJSON(raw []byte) error {
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return err
	}
	loaded, err := FromFile(f)
	if err != nil {
		return err
	}
	*m = *loaded
	return nil
}

func componentToFile(c Component) ComponentFile {
	cf := ComponentFile{
		Type:       c.Type(),
		ObjectFile: ObjectFile{Handle: c.Handle(), Name: c.Name()},
	}
	switch x := c.(type) {
	case *CoilCoolingDXTwoSpeed:
		cf.RatedHighSpeedCOP = x.ratedHighSpeedCOP
		cf.RatedLowSpeedCOP = x.ratedLowSpeedCOP
	case *CoilCoolingDXSingleSpeed:
		cf.RatedCOP = x.ratedCOP
	case *CoilHeatingGas:
		cf.BurnerEfficiency = &x.BurnerEfficiency
	case *FanConstantVolume:
		cf.FanEfficiency = &x.FanEfficiency
		cf.PressureRisePa = &x.PressureRisePa
	}
	return cf
}

func componentFromFile(cf ComponentFile) (Component, error) {
	obj := object{handle: orNew(cf.Handle), name: cf.Name}
	switch cf.Type {
	case TypeCoilCoolingDXTwoSpeed:
		coil := &CoilCoolingDXTwoSpeed{object: obj}
		if cf.RatedHighSpeedCOP != nil {
			if err := coil.SetRatedHighSpeedCOP(*cf.RatedHighSpeedCOP); err != nil {
				return nil, err
			}
		}
		if cf.RatedLowSpeedCOP != nil {
			if err := coil.SetRatedLowSpeedCOP(*cf.RatedLowSpeedCOP); err != nil {
				return nil, err
			}
		}
		return coil, nil
	case TypeCoilCoolingDXSingleSpeed:
		coil := &CoilCoolingDXSingleSpeed{object: obj}
		if cf.RatedCOP != nil {
			if err := coil.SetRatedCOP(*cf.RatedCOP); err != nil {
				return nil, err
			}
		}
		return coil, nil
	case TypeCoilHeatingGas:
		coil := &CoilHeatingGas{object: obj, BurnerEfficiency: 0.8}
		if cf.BurnerEfficiency != nil {
			coil.BurnerEfficiency = *cf.BurnerEfficiency
		}
		return coil, nil
	case TypeFanConstantVolume:
		fan := &FanConstantVolume{object: obj, FanEfficiency: 0.7, PressureRisePa: 250}
		if cf.FanEfficiency != nil {
			fan.FanEfficiency = *cf.FanEfficiency
		}
		if cf.PressureRisePa != nil {
			fan.PressureRisePa = *cf.PressureRisePa
		}
		return fan, nil
	default:
		return nil, fmt.Errorf("component %q: unknown type %q", cf.Name, cf.Type)
	}
}

// orNew lets hand-written model files omit handles.
func orNew(h Handle) Handle {
	var zero Handle
	if h == zero {
		return NewHandle()
	}
	return h
}
