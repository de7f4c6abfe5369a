// Package measure is the framework both measures are built on: argument
// declarations and validation, the Runner that collects messages and the
// terminal outcome, and a Registry the CLI and API look measures up in.
package measure

import (
	"context"

	"energy-measures/internal/idf"
	"energy-measures/internal/model"
)

// Info describes a measure to users.
type Info interface {
	Name() string
	DisplayName() string
	Description() string
	ModelerDescription() string
}

// ModelMeasure mutates a building model in place.
type ModelMeasure interface {
	Info
	Arguments(m *model.Model) ArgumentVector
	Run(ctx context.Context, m *model.Model, args UserArguments) Result
}

// WorkspaceMeasure mutates a definition-format workspace in place.
type WorkspaceMeasure interface {
	Info
	Arguments(ws *idf.Workspace) ArgumentVector
	Run(ctx context.Context, ws *idf.Workspace, args UserArguments) Result
}
