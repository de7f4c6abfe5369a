package model

import (
	"errors"

	"github.com/google/uuid"
)

// Handle identifies a model object. Handles are stable across save/load.
type Handle = uuid.UUID

// NewHandle returns a fresh random handle.
func NewHandle() Handle { return uuid.New() }

// ParseHandle accepts the plain, braced and urn forms of a UUID.
func ParseHandle(s string) (Handle, error) {
	return uuid.Parse(s)
}

// ErrNotFound is returned when a handle does not resolve to an object in the model.
var ErrNotFound = errors.New("object not found")

// ObjectType names the kind of a model object.
type ObjectType string

const (
	TypeBuilding                 ObjectType = "OS:Building"
	TypeAirLoopHVAC              ObjectType = "OS:AirLoopHVAC"
	TypeCoilCoolingDXTwoSpeed    ObjectType = "OS:Coil:Cooling:DX:TwoSpeed"
	TypeCoilCoolingDXSingleSpeed ObjectType = "OS:Coil:Cooling:DX:SingleSpeed"
	TypeCoilHeatingGas           ObjectType = "OS:Coil:Heating:Gas"
	TypeFanConstantVolume        ObjectType = "OS:Fan:ConstantVolume"
)

// Object is anything in the model that has a handle and a name. Lifecycle
// costs can be attached to any Object.
type Object interface {
	Handle() Handle
	Name() string
	Type() ObjectType
}

// object carries the identity shared by every model object.
type object struct {
	handle Handle
	name   string
}

func (o *object) Handle() Handle { return o.handle }
func (o *object) Name() string   { return o.name }

func (o *object) SetName(name string) { o.name = name }

func newObject(name string) object {
	return object{handle: NewHandle(), name: name}
}
