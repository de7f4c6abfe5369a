package model

import (
	"errors"
	"fmt"
	"sort"
)

// Model is an in-memory building description: one building, its air loops
// and their supply components, and the lifecycle costs attached to any of them.
type Model struct {
	building *Building
	airLoops []*AirLoopHVAC
	lccs     []*LifeCycleCost

	// timestepsPerHour is 0 when the model does not set a simulation timestep.
	timestepsPerHour int

	LCCParameters LifeCycleCostParameters
}

// New returns an empty model with a building of the given name.
func New(buildingName string) *Model {
	return &Model{
		building:      &Building{object: newObject(buildingName)},
		LCCParameters: DefaultLifeCycleCostParameters(),
	}
}

func (m *Model) Building() *Building { return m.building }

// TimestepsPerHour returns the simulation timestep and whether it is set.
func (m *Model) TimestepsPerHour() (int, bool) {
	return m.timestepsPerHour, m.timestepsPerHour != 0
}

// SetTimestepsPerHour sets the simulation timestep. EnergyPlus requires a
// value that evenly divides 60.
func (m *Model) SetTimestepsPerHour(n int) error {
	if n < 1 || n > 60 || 60%n != 0 {
		return fmt.Errorf("timesteps per hour must evenly divide 60, got %d", n)
	}
	m.timestepsPerHour = n
	return nil
}

// AddAirLoopHVAC creates an empty air loop.
func (m *Model) AddAirLoopHVAC(name string) *AirLoopHVAC {
	loop := &AirLoopHVAC{object: newObject(name)}
	m.airLoops = append(m.airLoops, loop)
	return loop
}

// AirLoopHVACs returns the air loops sorted by name.
func (m *Model) AirLoopHVACs() []*AirLoopHVAC {
	out := make([]*AirLoopHVAC, len(m.airLoops))
	copy(out, m.airLoops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Objects returns every named object: the building, then each air loop
// followed by its supply components.
func (m *Model) Objects() []Object {
	out := []Object{m.building}
	for _, loop := range m.airLoops {
		out = append(out, loop)
		for _, c := range loop.supply {
			out = append(out, c)
		}
	}
	return out
}

// ObjectByHandle resolves a handle to its object.
func (m *Model) ObjectByHandle(h Handle) (Object, error) {
	for _, o := range m.Objects() {
		if o.Handle() == h {
			return o, nil
		}
	}
	return nil, fmt.Errorf("handle %s: %w", h, ErrNotFound)
}

// Validate checks model-wide invariants: unique handles and lifecycle costs
// that point at objects in the model.
func (m *Model) Validate() error {
	if m == nil {
		return errors.New("model is nil")
	}
	if m.building == nil {
		return errors.New("model has no building")
	}
	seen := map[Handle]string{}
	for _, o := range m.Objects() {
		if prev, dup := seen[o.Handle()]; dup {
			return fmt.Errorf("duplicate handle %s on %q and %q", o.Handle(), prev, o.Name())
		}
		seen[o.Handle()] = o.Name()
	}
	for _, l := range m.lccs {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("lifecycle cost %q: %w", l.Name, err)
		}
		if _, ok := seen[l.Item]; !ok {
			return fmt.Errorf("lifecycle cost %q: item %s: %w", l.Name, l.Item, ErrNotFound)
		}
	}
	if err := m.LCCParameters.Validate(); err != nil {
		return fmt.Errorf("lifecycle cost parameters: %w", err)
	}
	return nil
}

// Clone returns a deep copy that shares no objects with m. Handles are kept.
func (m *Model) Clone() (*Model, error) {
	raw, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out := &Model{}
	if err := out.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return out, nil
}
