// Package tariffselect merges tariff definitions from a tariff library into a
// workspace, one per meter, and sets the simulation timestep to match the
// tariffs' 15 minute demand window.
package tariffselect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"energy-measures/internal/idf"
	"energy-measures/internal/measure"
	"energy-measures/internal/tariff"
)

const (
	TimestepType = "Timestep"

	// Four steps per hour lines the simulation up with a QuarterHour demand
	// window.
	targetTimesteps = "4"
)

// Measure merges one tariff per meter from a library into a workspace.
type Measure struct {
	lib *tariff.Library
}

// New returns the tariff measure over lib.
func New(lib *tariff.Library) *Measure { return &Measure{lib: lib} }

func (*Measure) Name() string        { return "tariff_selection_generic" }
func (*Measure) DisplayName() string { return "Tariff Selection-Generic" }

func (*Measure) Description() string {
	return "This measure will add pre defined tariffs from IDF files in the resource directory for this measure."
}

func (*Measure) ModelerDescription() string {
	return "The measure works by cloning objects in from an external file into the current IDF file. " +
		"Change functionality by changing the resource files. This measure may also adjust the simulation timestep."
}

// Arguments declares one required choice per meter found in the library.
// Values are file names, display names are tariff names.
func (ms *Measure) Arguments(*idf.Workspace) measure.ArgumentVector {
	byMeter := ms.lib.ByMeter()
	var args measure.ArgumentVector
	for _, meter := range ms.lib.Meters() {
		entries := byMeter[meter]
		choices := make([]measure.Choice, 0, len(entries))
		for _, e := range entries {
			choices = append(choices, measure.Choice{Value: e.File, Display: e.TariffName})
		}
		args = append(args, measure.NewChoice(meter, fmt.Sprintf("Select a Tariff for %s.", meter), choices, choices[0].Value))
	}
	return args
}

type selection struct {
	meter   string
	file    string
	objects []*idf.Object
}

// Run merges the selected tariffs into ws and sets its timestep to 4 per hour.
func (ms *Measure) Run(ctx context.Context, ws *idf.Workspace, user measure.UserArguments) measure.Result {
	r := measure.NewRunner(ms.Name())
	defs := ms.Arguments(ws)

	for _, a := range defs {
		raw := strings.TrimSpace(user[a.Name])
		if raw == "" {
			continue
		}
		if _, ok := a.MatchChoice(raw); !ok {
			r.RegisterError(fmt.Sprintf("Unable to find the file %s.idf", strings.TrimSuffix(raw, ".idf")))
			return r.Result()
		}
	}
	vals, ok := r.ValidateUserArguments(defs, user)
	if !ok {
		return r.Result()
	}

	r.RegisterInitialCondition(fmt.Sprintf("The model started with %d tariff objects.", len(ws.ObjectsByType(tariff.TariffType))))

	// Every file is loaded before anything is merged so a bad selection leaves
	// the workspace as it was.
	sels := make([]selection, 0, len(defs))
	for _, a := range defs {
		file := vals.String(a.Name)
		objs, err := ms.lib.Load(file)
		if err != nil {
			if errors.Is(err, tariff.ErrNotFound) {
				r.RegisterError(fmt.Sprintf("Unable to find the file %s.idf", file))
			} else {
				r.RegisterError(fmt.Sprintf("Unable to load the file %s.idf: %v", file, err))
			}
			return r.Result()
		}
		sels = append(sels, selection{meter: a.Name, file: file, objects: objs})
	}
	if err := ctx.Err(); err != nil {
		r.RegisterError(err.Error())
		return r.Result()
	}

	for _, s := range sels {
		ws.AddObjects(s.objects)
		r.RegisterInfo(fmt.Sprintf("added a %s tariff from %s.idf", s.meter, s.file))
	}

	setTimestep(ws, r)

	r.RegisterFinalCondition(fmt.Sprintf("The model finished with %d tariff objects.", len(ws.ObjectsByType(tariff.TariffType))))
	return r.Result()
}

// setTimestep makes the first Timestep object 4 per hour, adding one when the
// workspace has none.
func setTimestep(ws *idf.Workspace, r *measure.Runner) {
	steps := ws.ObjectsByType(TimestepType)
	if len(steps) == 0 {
		ws.AddObject(idf.NewObject(TimestepType, targetTimesteps).WithComments("Number of Timesteps per Hour"))
		r.RegisterInfo("No timestep object found. Added a new timestep object set to 4 timesteps per hour")
		return
	}
	current, _ := steps[0].Field(0)
	if current == targetTimesteps {
		return
	}
	steps[0].SetField(0, targetTimesteps)
	r.RegisterInfo(fmt.Sprintf("Changing the simulation timestep to 4 timesteps per hour from %s per hour to match the demand window of the tariffs", current))
}
