package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"energy-measures/internal/idf"
	"energy-measures/internal/model"
	"energy-measures/internal/tariff"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeModel(t *testing.T, dir string) string {
	t.Helper()
	m := model.New("Office")
	loop := m.AddAirLoopHVAC("AHU-1")
	coil := model.NewCoilCoolingDXTwoSpeed("DX-1")
	require.NoError(t, coil.SetRatedHighSpeedCOP(3))
	require.NoError(t, coil.SetRatedLowSpeedCOP(3))
	loop.AddSupplyComponent(coil)
	_, err := m.CreateLifeCycleCost("Mat", coil, decimal.NewFromInt(1200), model.CostPerEach, model.CategoryConstruction, 0, 0)
	require.NoError(t, err)

	path := filepath.Join(dir, "office.json")
	require.NoError(t, model.Save(m, path))
	return path
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "set_cop_two_speed_dx")
	assert.Contains(t, out, "tariff_selection_generic")
}

func TestArgs_WithModel(t *testing.T) {
	path := writeModel(t, t.TempDir())
	out, err := execute(t, "args", "set_cop_two_speed_dx", "--model", path)
	require.NoError(t, err)
	assert.Contains(t, out, "AHU-1")
	assert.Contains(t, out, "cop_high")

	_, err = execute(t, "args", "nope")
	assert.Error(t, err)
}

func TestRun_ModelMeasureWritesOut(t *testing.T) {
	// GIVEN a model file
	dir := t.TempDir()
	path := writeModel(t, dir)
	outPath := filepath.Join(dir, "after.json")

	// WHEN the COP editor runs with arguments
	out, err := execute(t, "run", "set_cop_two_speed_dx", "--model", path,
		"--arg", "cop_high=4.4", "--arg", "cop_low=4.9", "--out", outPath)

	// THEN the result is printed and the changed model saved
	require.NoError(t, err, out)
	assert.Contains(t, out, "set_cop_two_speed_dx: Success")
	got, err := model.Load(outPath)
	require.NoError(t, err)
	lo, _ := got.AirLoopHVACs()[0].TwoSpeedDXCoils()[0].RatedLowSpeedCOP()
	assert.Equal(t, 4.9, lo)
}

func TestRun_FailureIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir)
	outPath := filepath.Join(dir, "after.json")

	out, err := execute(t, "run", "set_cop_two_speed_dx", "--model", path, "--arg", "cop_low=-2", "--out", outPath)
	assert.ErrorIs(t, err, errMeasureFailed)
	assert.Contains(t, out, "error: Please enter a positive value for Rated Low Speed COP.")
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "failed runs are not saved")
}

func TestRun_WorkspaceMeasureFromModel(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir)
	outPath := filepath.Join(dir, "out.idf")

	_, err := execute(t, "run", "tariff_selection_generic", "--model", path, "--out", outPath, "--json")
	require.NoError(t, err)
	ws, err := idf.LoadFile(outPath)
	require.NoError(t, err)
	assert.Len(t, ws.ObjectsByType(tariff.TariffType), 2)

	_, err = execute(t, "run", "tariff_selection_generic")
	assert.ErrorContains(t, err, "--idf or --model")
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir)
	wf := filepath.Join(dir, "workflow.yaml")
	require.NoError(t, os.WriteFile(wf, []byte(`model: office.json
output_dir: results
steps:
  - measure: set_cop_two_speed_dx
    arguments:
      cop_high: 5
  - measure: tariff_selection_generic
`), 0o644))

	out, err := execute(t, "apply", wf)
	require.NoError(t, err, out)
	assert.Contains(t, out, "[0] set_cop_two_speed_dx: Success")
	assert.Contains(t, out, "[1] tariff_selection_generic: Success")
	for _, name := range []string{"model.json", "in.idf", "lifecycle_costs.csv", "results.json"} {
		assert.FileExists(t, filepath.Join(dir, "results", name))
	}
}

func TestTariffs_WritesIndex(t *testing.T) {
	index := filepath.Join(t.TempDir(), "idx", "tariffs.json")
	out, err := execute(t, "tariffs", "--index", index)
	require.NoError(t, err)
	assert.Contains(t, out, "NaturalGas:Facility")

	idx, err := tariff.LoadIndex(index)
	require.NoError(t, err)
	assert.Len(t, idx.Tariffs, 4)
}

func TestTranslate_Stdout(t *testing.T) {
	path := writeModel(t, t.TempDir())
	out, err := execute(t, "translate", "--model", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Coil:Cooling:DX:TwoSpeed,")
	assert.Contains(t, out, "LifeCycleCost:NonrecurringCost,")
}

func TestLCC(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir)
	csvPath := filepath.Join(dir, "nested", "ledger.csv")

	out, err := execute(t, "lcc", "--model", path, "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Year 0 capital: $1,200.00")
	assert.Contains(t, out, "DX-1")
	assert.FileExists(t, csvPath)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log", "chatty", "list")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestParseArgs(t *testing.T) {
	got, err := parseArgs([]string{"a=1", "b = x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, "1", got["a"])
	assert.Equal(t, " x=y", got["b"])
	assert.Equal(t, "", got["c"])

	_, err = parseArgs([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseArgs([]string{"=v"})
	assert.Error(t, err)
}
