// Package measures wires every concrete measure into a registry.
package measures

import (
	"energy-measures/internal/measure"
	"energy-measures/internal/measures/tariffselect"
	"energy-measures/internal/measures/twospeedcop"
	"energy-measures/internal/tariff"
)

// NewRegistry registers the COP editor and a tariff selector backed by lib.
func NewRegistry(lib *tariff.Library) (*measure.Registry, error) {
	r := measure.NewRegistry()
	if err := r.RegisterModel(twospeedcop.New()); err != nil {
		return nil, err
	}
	if err := r.RegisterWorkspace(tariffselect.New(lib)); err != nil {
		return nil, err
	}
	return r, nil
}
