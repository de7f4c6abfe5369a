package model

// Building is the single root object of a model.
type Building struct {
	object
}

func (b *Building) Type() ObjectType { return TypeBuilding }

// AirLoopHVAC is an air distribution loop. Only its supply side is modelled.
type AirLoopHVAC struct {
	object
	supply []Component
}

func (a *AirLoopHVAC) Type() ObjectType { return TypeAirLoopHVAC }

// SupplyComponents returns the supply components in flow order.
// The returned slice is a copy; the components themselves are shared.
func (a *AirLoopHVAC) SupplyComponents() []Component {
	out := make([]Component, len(a.supply))
	copy(out, a.supply)
	return out
}

// AddSupplyComponent appends c to the end of the supply side.
func (a *AirLoopHVAC) AddSupplyComponent(c Component) {
	a.supply = append(a.supply, c)
}

// TwoSpeedDXCoils returns the two-speed DX cooling coils on the supply side.
func (a *AirLoopHVAC) TwoSpeedDXCoils() []*CoilCoolingDXTwoSpeed {
	var out []*CoilCoolingDXTwoSpeed
	for _, c := range a.supply {
		if coil, ok := ToCoilCoolingDXTwoSpeed(c); ok {
			out = append(out, coil)
		}
	}
	return out
}
