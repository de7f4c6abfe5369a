package model

import (
	"errors"
	"fmt"
	"math"
)

// Component is an HVAC component placed on the supply side of an air loop.
type Component interface {
	Object
	SetName(name string)
}

// CoilCoolingDXTwoSpeed is a two-speed direct-expansion cooling coil.
//
// Both rated COP fields are optional: a coil read from a file may not carry
// them, in which case the simulation engine autosizes or defaults them.
type CoilCoolingDXTwoSpeed struct {
	object
	ratedHighSpeedCOP *float64
	ratedLowSpeedCOP  *float64
}

func NewCoilCoolingDXTwoSpeed(name string) *CoilCoolingDXTwoSpeed {
	return &CoilCoolingDXTwoSpeed{object: newObject(name)}
}

func (c *CoilCoolingDXTwoSpeed) Type() ObjectType { return TypeCoilCoolingDXTwoSpeed }

// RatedHighSpeedCOP returns the rated high speed COP and whether it is set.
func (c *CoilCoolingDXTwoSpeed) RatedHighSpeedCOP() (float64, bool) {
	if c.ratedHighSpeedCOP == nil {
		return 0, false
	}
	return *c.ratedHighSpeedCOP, true
}

// RatedLowSpeedCOP returns the rated low speed COP and whether it is set.
func (c *CoilCoolingDXTwoSpeed) RatedLowSpeedCOP() (float64, bool) {
	if c.ratedLowSpeedCOP == nil {
		return 0, false
	}
	return *c.ratedLowSpeedCOP, true
}

func (c *CoilCoolingDXTwoSpeed) SetRatedHighSpeedCOP(cop float64) error {
	if err := checkCOP(cop); err != nil {
		return fmt.Errorf("coil %q high speed: %w", c.name, err)
	}
	c.ratedHighSpeedCOP = &cop
	return nil
}

func (c *CoilCoolingDXTwoSpeed) SetRatedLowSpeedCOP(cop float64) error {
	if err := checkCOP(cop); err != nil {
		return fmt.Errorf("coil %q low speed: %w", c.name, err)
	}
	c.ratedLowSpeedCOP = &cop
	return nil
}

// CoilCoolingDXSingleSpeed is a single-speed DX cooling coil.
type CoilCoolingDXSingleSpeed struct {
	object
	ratedCOP *float64
}

func NewCoilCoolingDXSingleSpeed(name string) *CoilCoolingDXSingleSpeed {
	return &CoilCoolingDXSingleSpeed{object: newObject(name)}
}

func (c *CoilCoolingDXSingleSpeed) Type() ObjectType { return TypeCoilCoolingDXSingleSpeed }

func (c *CoilCoolingDXSingleSpeed) RatedCOP() (float64, bool) {
	if c.ratedCOP == nil {
		return 0, false
	}
	return *c.ratedCOP, true
}

func (c *CoilCoolingDXSingleSpeed) SetRatedCOP(cop float64) error {
	if err := checkCOP(cop); err != nil {
		return fmt.Errorf("coil %q: %w", c.name, err)
	}
	c.ratedCOP = &cop
	return nil
}

// CoilHeatingGas is a gas-fired heating coil.
type CoilHeatingGas struct {
	object
	BurnerEfficiency float64
}

func NewCoilHeatingGas(name string) *CoilHeatingGas {
	return &CoilHeatingGas{object: newObject(name), BurnerEfficiency: 0.8}
}

func (c *CoilHeatingGas) Type() ObjectType { return TypeCoilHeatingGas }

// FanConstantVolume is a constant volume supply fan.
type FanConstantVolume struct {
	object
	FanEfficiency  float64
	PressureRisePa float64
}

func NewFanConstantVolume(name string) *FanConstantVolume {
	return &FanConstantVolume{object: newObject(name), FanEfficiency: 0.7, PressureRisePa: 250}
}

func (f *FanConstantVolume) Type() ObjectType { return TypeFanConstantVolume }

// ToCoilCoolingDXTwoSpeed downcasts a supply component.
func ToCoilCoolingDXTwoSpeed(c Component) (*CoilCoolingDXTwoSpeed, bool) {
	coil, ok := c.(*CoilCoolingDXTwoSpeed)
	return coil, ok
}

var errNonPositiveCOP = errors.New("COP must be a finite number > 0")

func checkCOP(cop float64) error {
	if !(cop > 0) || math.IsInf(cop, 1) {
		return errNonPositiveCOP
	}
	return nil
}
