// Package workflow runs an ordered list of measures against a model and the
// workspace translated from it, and writes what came out.
package workflow

import (
	"context"
	"fmt"

	"energy-measures/internal/config"
	"energy-measures/internal/idf"
	"energy-measures/internal/measure"
	"energy-measures/internal/model"
	"energy-measures/internal/translate"

	"github.com/sirupsen/logrus"
)

// Inputs are the seed documents of a run. Either may be nil.
type Inputs struct {
	Model     *model.Model
	Workspace *idf.Workspace
}

type StepResult struct {
	Index     int                   `json:"index"` // position in the workflow file
	Measure   string                `json:"measure"`
	Target    measure.Target        `json:"target"`
	Arguments measure.UserArguments `json:"arguments,omitempty"`
	Result    measure.Result        `json:"result"`
}

type Result struct {
	Outcome    measure.Outcome `json:"outcome"`
	FailedStep int             `json:"failed_step"` // -1 when every step passed
	Steps      []StepResult    `json:"steps"`

	Model     *model.Model   `json:"-"`
	Workspace *idf.Workspace `json:"-"`
	Ledger    []LedgerRow    `json:"-"`
}

type Engine struct {
	registry *measure.Registry
}

func New(registry *measure.Registry) *Engine { return &Engine{registry: registry} }

type plannedStep struct {
	index  int
	step   config.Step
	target measure.Target
}

// Run executes steps. Model measures run first, in workflow order; the model
// is then translated and merged over the seed workspace; workspace measures
// run last. The seed model is changed in place; the seed workspace is not.
// A failing step stops the run and is reported in the Result, not
// as an error. Errors are reserved for workflows that cannot start.
func (e *Engine) Run(ctx context.Context, in Inputs, steps []config.Step) (*Result, error) {
	if e.registry == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("no steps")
	}

	var modelSteps, workspaceSteps []plannedStep
	for i, s := range steps {
		target, err := e.registry.Target(s.Measure)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		p := plannedStep{index: i, step: s, target: target}
		if target == measure.TargetModel {
			if in.Model == nil {
				return nil, fmt.Errorf("step %d: measure %q needs a model", i, s.Measure)
			}
			modelSteps = append(modelSteps, p)
		} else {
			if in.Model == nil && in.Workspace == nil {
				return nil, fmt.Errorf("step %d: measure %q needs a model or a workspace", i, s.Measure)
			}
			workspaceSteps = append(workspaceSteps, p)
		}
	}

	res := &Result{Outcome: measure.Success, FailedStep: -1, Model: in.Model}

	for _, p := range modelSteps {
		m, _ := e.registry.Model(p.step.Measure)
		r := m.Run(ctx, in.Model, measure.UserArguments(p.step.Arguments))
		if !res.record(p, r) {
			return res.finish(), nil
		}
	}

	res.Workspace = buildWorkspace(in)

	for _, p := range workspaceSteps {
		m, _ := e.registry.Workspace(p.step.Measure)
		r := m.Run(ctx, res.Workspace, measure.UserArguments(p.step.Arguments))
		if !res.record(p, r) {
			return res.finish(), nil
		}
	}
	return res.finish(), nil
}

// record appends a step result and reports whether the run may continue.
func (res *Result) record(p plannedStep, r measure.Result) bool {
	res.Steps = append(res.Steps, StepResult{
		Index:     p.index,
		Measure:   p.step.Measure,
		Target:    p.target,
		Arguments: measure.UserArguments(p.step.Arguments),
		Result:    r,
	})
	logrus.WithFields(logrus.Fields{
		"step":    p.index,
		"measure": p.step.Measure,
		"outcome": r.Outcome,
	}).Info("step finished")

	if r.Failed() {
		res.Outcome = measure.Fail
		res.FailedStep = p.index
		return false
	}
	return true
}

func (res *Result) finish() *Result {
	if res.Model != nil {
		res.Ledger = BuildLedger(res.Model)
	}
	return res
}

// singletonTypes may appear once per workspace. The translated model wins
// over the seed workspace for these.
var singletonTypes = []string{"Version", "Building", "Timestep", "LifeCycleCost:Parameters", "SimulationControl"}

// buildWorkspace translates the model, when there is one, and merges the
// seed workspace into it.
func buildWorkspace(in Inputs) *idf.Workspace {
	if in.Model == nil {
		return in.Workspace.Clone()
	}
	ws := translate.ToWorkspace(in.Model)
	if in.Workspace == nil {
		return ws
	}
	for _, o := range in.Workspace.Objects() {
		if isSingleton(o) && len(ws.ObjectsByType(o.Type)) > 0 {
			continue
		}
		ws.AddObject(o)
	}
	return ws
}

func isSingleton(o *idf.Object) bool {
	for _, t := range singletonTypes {
		if o.Is(t) {
			return true
		}
	}
	return false
}
