package measure

import (
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.WarnLevel)
	os.Exit(m.Run())
}

func testArgs() ArgumentVector {
	return ArgumentVector{
		NewChoice("object", "Choose an Air Loop", []Choice{
			{Value: "h-1", Display: "AHU-1"},
			{Value: "h-all", Display: "*All Air Loops*"},
		}, "h-all"),
		NewDouble("cop_high", "Rated High Speed COP", 4.0),
		NewInteger("expected_life", "Expected Life (whole years)", 20),
		NewBool("remove_costs", "Remove Baseline Costs?", true),
	}
}

func TestValidateUserArguments_Defaults(t *testing.T) {
	vals, err := ValidateUserArguments(testArgs(), nil)
	require.NoError(t, err)

	assert.Equal(t, "h-all", vals.String("object"))
	assert.Equal(t, "*All Air Loops*", vals.ChoiceDisplay("object"))
	assert.Equal(t, 4.0, vals.Double("cop_high"))
	assert.Equal(t, 20, vals.Integer("expected_life"))
	assert.True(t, vals.Bool("remove_costs"))
}

func TestValidateUserArguments_ChoiceByValueOrDisplay(t *testing.T) {
	for _, in := range []string{"h-1", "AHU-1"} {
		vals, err := ValidateUserArguments(testArgs(), UserArguments{"object": in})
		require.NoError(t, err, in)
		assert.Equal(t, "h-1", vals.String("object"))
	}
}

func TestValidateUserArguments_Rejects(t *testing.T) {
	tests := []struct {
		name string
		user UserArguments
		want string
	}{
		{"bad double", UserArguments{"cop_high": "fast"}, "cop_high"},
		{"nan double", UserArguments{"cop_high": "NaN"}, "is not a finite number"},
		{"infinite double", UserArguments{"cop_high": "-Inf"}, "is not a finite number"},
		{"bad integer", UserArguments{"expected_life": "2.5"}, "expected_life"},
		{"bad bool", UserArguments{"remove_costs": "maybe"}, "remove_costs"},
		{"bad choice", UserArguments{"object": "AHU-9"}, "available choices"},
		{"unknown name", UserArguments{"colour": "red"}, "unknown argument"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateUserArguments(testArgs(), tc.user)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateUserArguments_RequiredWithoutDefault(t *testing.T) {
	defs := ArgumentVector{NewChoice("Electricity:Facility", "Select a Tariff", nil, "")}
	_, err := ValidateUserArguments(defs, nil)
	assert.ErrorContains(t, err, "is required")
}

func TestRunner_ValidationRegistersEveryError(t *testing.T) {
	r := NewRunner("m")
	_, ok := r.ValidateUserArguments(testArgs(), UserArguments{"cop_high": "x", "expected_life": "y"})
	assert.False(t, ok)

	res := r.Result()
	assert.Equal(t, Fail, res.Outcome)
	assert.Len(t, res.Errors, 2)
}

func TestRunner_Outcomes(t *testing.T) {
	r := NewRunner("m")
	r.RegisterInitialCondition("start")
	r.RegisterInfo("did a thing")
	r.RegisterWarning("odd value")
	r.RegisterFinalCondition("end")

	res := r.Result()
	assert.Equal(t, Success, res.Outcome)
	assert.False(t, res.Failed())
	assert.Equal(t, "start", res.InitialCondition)
	assert.Equal(t, "end", res.FinalCondition)
	assert.Equal(t, []string{"did a thing"}, res.Infos)
	assert.Equal(t, []string{"odd value"}, res.Warnings)

	na := NewRunner("m")
	na.RegisterAsNotApplicable("nothing to do")
	assert.Equal(t, NotApplicable, na.Result().Outcome)
	assert.Equal(t, "nothing to do", na.Result().FinalCondition)
}

func TestNeatNumber(t *testing.T) {
	tests := []struct {
		in     string
		places int32
		want   string
	}{
		{"4125001.256", 2, "4,125,001.26"},
		{"4125001.256", 0, "4,125,001"},
		{"999", 0, "999"},
		{"1000", 0, "1,000"},
		{"0", 2, "0.00"},
		{"-12345.5", 1, "-12,345.5"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NeatNumber(decimal.RequireFromString(tc.in), tc.places), tc.in)
	}
	assert.Equal(t, "3.5", NeatFloat(3.5, 1))
}
