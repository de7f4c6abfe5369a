package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlWorkflow = `
model: office.json
workspace: office.idf
steps:
  - measure: set_cop_two_speed_dx
    arguments:
      cop_high: 4.50
      remove_costs: true
      object: "*All Air Loops*"
  - measure: tariff_selection_generic
`

const hclWorkflowSrc = `
model      = "office.json"
workspace  = "office.idf"
output_dir = "results"

step "set_cop_two_speed_dx" {
  arguments = {
    cop_high     = 4.5
    expected_life = 15
    remove_costs = true
    object       = "*All Air Loops*"
  }
}

step "tariff_selection_generic" {}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_YAML(t *testing.T) {
	// GIVEN a workflow next to its seed model
	dir := t.TempDir()
	writeFile(t, dir, "office.json", "{}")
	path := writeFile(t, dir, "wf.yaml", yamlWorkflow)

	// WHEN it is loaded
	w, err := Load(path)
	require.NoError(t, err)

	// THEN existing relative paths resolve against the workflow directory
	assert.Equal(t, filepath.Join(dir, "office.json"), w.Model)
	assert.Equal(t, "office.idf", w.Workspace, "missing files are left as written")
	assert.Equal(t, filepath.Join(dir, "out"), w.OutputDir)

	require.Len(t, w.Steps, 2)
	assert.Equal(t, "set_cop_two_speed_dx", w.Steps[0].Measure)
	assert.Equal(t, Args{"cop_high": "4.50", "remove_costs": "true", "object": "*All Air Loops*"}, w.Steps[0].Arguments)
	assert.Empty(t, w.Steps[1].Arguments)
}

func TestLoad_HCL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wf.hcl", hclWorkflowSrc)

	w, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "results"), w.OutputDir)
	require.Len(t, w.Steps, 2)
	assert.Equal(t, Args{
		"cop_high":      "4.5",
		"expected_life": "15",
		"remove_costs":  "true",
		"object":        "*All Air Loops*",
	}, w.Steps[0].Arguments)
	assert.Equal(t, "tariff_selection_generic", w.Steps[1].Measure)
	assert.Empty(t, w.Steps[1].Arguments)
}

func TestParseYAML_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "model: m.json\nsteps: []\nextra: 1\n", "extra"},
		{"nested argument", "steps:\n  - measure: x\n    arguments:\n      cop: [1, 2]\n", "must be a scalar"},
		{"arguments list", "steps:\n  - measure: x\n    arguments: [1]\n", "must be a mapping"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.src))
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestParseHCL_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `step "x" {`, "failed to parse HCL"},
		{"unknown attribute", `colour = "red"`, "failed to decode HCL"},
		{"list argument", "step \"x\" {\n  arguments = { cop = [1, 2] }\n}\n", "unsupported type"},
		{"arguments not an object", "step \"x\" {\n  arguments = \"cop\"\n}\n", "must be an object"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseHCL([]byte(tc.src), "test.hcl")
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		w    Workflow
		want string
	}{
		{"no steps", Workflow{Model: "m.json"}, "no steps"},
		{"no inputs", Workflow{Steps: []Step{{Measure: "x"}}}, "model or a workspace"},
		{"blank measure", Workflow{Workspace: "w.idf", Steps: []Step{{Measure: " "}}}, "steps[0].measure"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorContains(t, tc.w.Validate(), tc.want)
		})
	}
	assert.NoError(t, (&Workflow{Model: "m.json", Steps: []Step{{Measure: "x"}}}).Validate())
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "wf.toml", "")
	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported workflow format")
}
