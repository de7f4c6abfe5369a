package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"energy-measures/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDemo(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	steps := []config.Step{
		{Measure: "set_cop_two_speed_dx", Arguments: config.Args{"material_cost": "1000"}},
		{Measure: "tariff_selection_generic"},
	}

	require.NoError(t, runDemo(context.Background(), &buf, dir, steps))
	out := buf.String()
	assert.Contains(t, out, "== set_cop_two_speed_dx (Success)")
	assert.Contains(t, out, "== tariff_selection_generic (Success)")
	assert.FileExists(t, filepath.Join(dir, "in.idf"))
}

func TestRunDemo_StopsOnFailure(t *testing.T) {
	var buf bytes.Buffer
	steps := []config.Step{{Measure: "set_cop_two_speed_dx", Arguments: config.Args{"cop_high": "0"}}}
	assert.Error(t, runDemo(context.Background(), &buf, "", steps))
}

func TestDemoModel(t *testing.T) {
	m, err := demoModel()
	require.NoError(t, err)
	assert.Len(t, m.AirLoopHVACs(), 3)
	assert.Len(t, m.AllLifeCycleCosts(), 1)
}
