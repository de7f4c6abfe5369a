package measure

import (
	"context"
	"errors"
	"testing"

	"energy-measures/internal/idf"
	"energy-measures/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInfo struct{ name string }

func (f fakeInfo) Name() string               { return f.name }
func (f fakeInfo) DisplayName() string        { return f.name }
func (f fakeInfo) Description() string        { return "d" }
func (f fakeInfo) ModelerDescription() string { return "md" }

type fakeModelMeasure struct{ fakeInfo }

func (fakeModelMeasure) Arguments(*model.Model) ArgumentVector { return nil }
func (f fakeModelMeasure) Run(context.Context, *model.Model, UserArguments) Result {
	return NewRunner(f.name).Result()
}

type fakeWorkspaceMeasure struct{ fakeInfo }

func (fakeWorkspaceMeasure) Arguments(*idf.Workspace) ArgumentVector { return nil }
func (f fakeWorkspaceMeasure) Run(context.Context, *idf.Workspace, UserArguments) Result {
	return NewRunner(f.name).Result()
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterWorkspace(fakeWorkspaceMeasure{fakeInfo{"b_tariff"}}))
	require.NoError(t, r.RegisterModel(fakeModelMeasure{fakeInfo{"a_cop"}}))

	assert.Error(t, r.RegisterModel(fakeModelMeasure{fakeInfo{"b_tariff"}}), "names are shared across targets")
	assert.Error(t, r.RegisterModel(fakeModelMeasure{fakeInfo{""}}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a_cop", list[0].Name)
	assert.Equal(t, TargetModel, list[0].Target)
	assert.Equal(t, TargetWorkspace, list[1].Target)

	target, err := r.Target("b_tariff")
	require.NoError(t, err)
	assert.Equal(t, TargetWorkspace, target)

	_, err = r.Target("nope")
	assert.True(t, errors.Is(err, ErrUnknownMeasure))

	_, ok := r.Model("b_tariff")
	assert.False(t, ok)
}
