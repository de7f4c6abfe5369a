// Package config loads workflow files: a seed model and/or workspace plus an
// ordered list of measure steps. Workflows can be written in YAML or HCL.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Workflow is the on-disk workflow shape.
type Workflow struct {
	// Seed inputs. Either may be empty; model measures need Model and
	// workspace measures run on the translated model merged with Workspace.
	Model     string `yaml:"model"`
	Workspace string `yaml:"workspace"`

	// TariffDir replaces the bundled tariff library when set.
	TariffDir string `yaml:"tariff_dir"`
	OutputDir string `yaml:"output_dir"`

	Steps []Step `yaml:"steps"`
}

type Step struct {
	Measure   string `yaml:"measure"`
	Arguments Args   `yaml:"arguments"`
}

// Args are measure arguments. Any YAML scalar is accepted and kept as written,
// so `cop_high: 4.50` reaches the measure as "4.50".
type Args map[string]string

func (a *Args) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: arguments must be a mapping", n.Line)
	}
	out := make(Args, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: argument %q must be a scalar", v.Line, k.Value)
		}
		out[k.Value] = v.Value
	}
	*a = out
	return nil
}

const defaultOutputDir = "out"

// Load reads, resolves and validates a workflow file.
func Load(path string) (*Workflow, error) {
	w, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// LoadUnchecked parses a workflow by extension (.yaml, .yml or .hcl) and
// resolves its paths, without validating it.
func LoadUnchecked(path string) (*Workflow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var w *Workflow
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		w, err = ParseYAML(raw)
	case ".hcl":
		w, err = ParseHCL(raw, path)
	default:
		return nil, fmt.Errorf("%s: unsupported workflow format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if w.OutputDir == "" {
		w.OutputDir = defaultOutputDir
	}
	dir := filepath.Dir(path)
	w.Model = resolve(dir, w.Model)
	w.Workspace = resolve(dir, w.Workspace)
	w.TariffDir = resolve(dir, w.TariffDir)
	w.OutputDir = resolveOutput(dir, w.OutputDir)
	return w, nil
}

// ParseYAML decodes a YAML workflow. Unknown keys are errors.
func ParseYAML(raw []byte) (*Workflow, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var w Workflow
	if err := dec.Decode(&w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (w *Workflow) Validate() error {
	if w == nil {
		return errors.New("workflow is nil")
	}
	if len(w.Steps) == 0 {
		return errors.New("workflow has no steps")
	}
	if w.Model == "" && w.Workspace == "" {
		return errors.New("workflow needs a model or a workspace")
	}
	for i, s := range w.Steps {
		if strings.TrimSpace(s.Measure) == "" {
			return fmt.Errorf("steps[%d].measure is required", i)
		}
	}
	return nil
}

// resolve prefers interpreting a relative path against the workflow file's
// directory, falling back to the path as given (relative to the working
// directory) when nothing exists there.
func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(dir, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

// resolveOutput always anchors a relative output directory at the workflow
// file, since it usually does not exist yet.
func resolveOutput(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
