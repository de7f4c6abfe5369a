package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"energy-measures/internal/config"
	"energy-measures/internal/idf"
	"energy-measures/internal/model"
)

const (
	ModelFile   = "model.json"
	IDFFile     = "in.idf"
	LedgerFile  = "lifecycle_costs.csv"
	ResultsFile = "results.json"
)

// LoadInputs reads the seed model and workspace named by w.
func LoadInputs(w *config.Workflow) (Inputs, error) {
	var in Inputs
	if w.Model != "" {
		m, err := model.Load(w.Model)
		if err != nil {
			return Inputs{}, fmt.Errorf("failed to load model: %w", err)
		}
		in.Model = m
	}
	if w.Workspace != "" {
		ws, err := idf.LoadFile(w.Workspace)
		if err != nil {
			return Inputs{}, fmt.Errorf("failed to load workspace: %w", err)
		}
		in.Workspace = ws
	}
	return in, nil
}

// RunWorkflow loads the inputs of w and runs its steps.
func (e *Engine) RunWorkflow(ctx context.Context, w *config.Workflow) (*Result, error) {
	in, err := LoadInputs(w)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, in, w.Steps)
}

// Outputs lists the files WriteOutputs produced. Empty paths were skipped.
type Outputs struct {
	Model   string `json:"model,omitempty"`
	IDF     string `json:"idf,omitempty"`
	Ledger  string `json:"ledger,omitempty"`
	Results string `json:"results"`
}

// WriteOutputs saves the final documents, the cost ledger and the step
// results under dir.
func WriteOutputs(dir string, res *Result) (Outputs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Outputs{}, fmt.Errorf("failed to create directory: %w", err)
	}

	var out Outputs
	if res.Model != nil {
		out.Model = filepath.Join(dir, ModelFile)
		if err := model.Save(res.Model, out.Model); err != nil {
			return Outputs{}, err
		}
		out.Ledger = filepath.Join(dir, LedgerFile)
		if err := WriteLedgerCSV(out.Ledger, res.Ledger); err != nil {
			return Outputs{}, fmt.Errorf("failed to write ledger: %w", err)
		}
	}
	if res.Workspace != nil {
		out.IDF = filepath.Join(dir, IDFFile)
		if err := idf.SaveFile(res.Workspace, out.IDF); err != nil {
			return Outputs{}, err
		}
	}

	out.Results = filepath.Join(dir, ResultsFile)
	raw, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return Outputs{}, fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(out.Results, raw, 0o644); err != nil {
		return Outputs{}, fmt.Errorf("failed to write results: %w", err)
	}
	return out, nil
}
