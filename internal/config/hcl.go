package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclWorkflow is the HCL form of Workflow:
//
//	model     = "office.json"
//	workspace = "office.idf"
//
//	step "set_cop_two_speed_dx" {
//	  arguments = {
//	    cop_high     = 4.5
//	    remove_costs = true
//	  }
//	}
type hclWorkflow struct {
	Model     string    `hcl:"model,optional"`
	Workspace string    `hcl:"workspace,optional"`
	TariffDir string    `hcl:"tariff_dir,optional"`
	OutputDir string    `hcl:"output_dir,optional"`
	Steps     []hclStep `hcl:"step,block"`
}

type hclStep struct {
	Measure   string    `hcl:"measure,label"`
	Arguments cty.Value `hcl:"arguments,optional"`
}

// ParseHCL decodes an HCL workflow. filename is only used in diagnostics.
func ParseHCL(src []byte, filename string) (*Workflow, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	var hw hclWorkflow
	if diags := gohcl.DecodeBody(file.Body, nil, &hw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}

	w := &Workflow{
		Model:     hw.Model,
		Workspace: hw.Workspace,
		TariffDir: hw.TariffDir,
		OutputDir: hw.OutputDir,
		Steps:     make([]Step, 0, len(hw.Steps)),
	}
	for _, hs := range hw.Steps {
		args, err := argsFromCty(hs.Arguments)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", hs.Measure, err)
		}
		w.Steps = append(w.Steps, Step{Measure: hs.Measure, Arguments: args})
	}
	return w, nil
}

// argsFromCty flattens an object of primitive values into measure arguments.
func argsFromCty(v cty.Value) (Args, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("arguments are not known")
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return nil, fmt.Errorf("arguments must be an object, got %s", v.Type().FriendlyName())
	}

	out := Args{}
	for it := v.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		s, err := ctyToString(ev)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", k.AsString(), err)
		}
		out[k.AsString()] = s
	}
	return out, nil
}

func ctyToString(v cty.Value) (string, error) {
	if v.IsNull() || !v.IsKnown() {
		return "", fmt.Errorf("value is null or unknown")
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case cty.Bool:
		if v.True() {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("unsupported type %s", v.Type().FriendlyName())
	}
}
