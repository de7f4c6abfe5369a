package measure

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownMeasure = errors.New("unknown measure")

type Target string

const (
	TargetModel     Target = "model"
	TargetWorkspace Target = "workspace"
)

// Descriptor is the listing form of a registered measure.
type Descriptor struct {
	Name               string `json:"name"`
	DisplayName        string `json:"display_name"`
	Description        string `json:"description"`
	ModelerDescription string `json:"modeler_description"`
	Target             Target `json:"target"`
}

type Registry struct {
	models     map[string]ModelMeasure
	workspaces map[string]WorkspaceMeasure
}

func NewRegistry() *Registry {
	return &Registry{
		models:     make(map[string]ModelMeasure),
		workspaces: make(map[string]WorkspaceMeasure),
	}
}

func (r *Registry) RegisterModel(m ModelMeasure) error {
	if err := r.checkFree(m.Name()); err != nil {
		return err
	}
	r.models[m.Name()] = m
	return nil
}

func (r *Registry) RegisterWorkspace(m WorkspaceMeasure) error {
	if err := r.checkFree(m.Name()); err != nil {
		return err
	}
	r.workspaces[m.Name()] = m
	return nil
}

func (r *Registry) checkFree(name string) error {
	if name == "" {
		return fmt.Errorf("measure name is empty")
	}
	_, inModels := r.models[name]
	_, inWorkspaces := r.workspaces[name]
	if inModels || inWorkspaces {
		return fmt.Errorf("measure %q already registered", name)
	}
	return nil
}

func (r *Registry) Model(name string) (ModelMeasure, bool) {
	m, ok := r.models[name]
	return m, ok
}

func (r *Registry) Workspace(name string) (WorkspaceMeasure, bool) {
	m, ok := r.workspaces[name]
	return m, ok
}

// Target reports which kind of input the named measure runs against.
func (r *Registry) Target(name string) (Target, error) {
	if _, ok := r.models[name]; ok {
		return TargetModel, nil
	}
	if _, ok := r.workspaces[name]; ok {
		return TargetWorkspace, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMeasure, name)
}

// List returns every registered measure sorted by name.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.models)+len(r.workspaces))
	for _, m := range r.models {
		out = append(out, describe(m, TargetModel))
	}
	for _, m := range r.workspaces {
		out = append(out, describe(m, TargetWorkspace))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func describe(m Info, t Target) Descriptor {
	return Descriptor{
		Name:               m.Name(),
		DisplayName:        m.DisplayName(),
		Description:        m.Description(),
		ModelerDescription: m.ModelerDescription(),
		Target:             t,
	}
}
