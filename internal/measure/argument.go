package measure

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidArgument is wrapped by every user-argument validation error.
var ErrInvalidArgument = errors.New("invalid argument")

type Kind string

const (
	KindChoice  Kind = "Choice"
	KindDouble  Kind = "Double"
	KindInteger Kind = "Integer"
	KindBool    Kind = "Boolean"
)

// Choice is one option of a choice argument. Value is what the measure
// receives; Display is what a user sees.
type Choice struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

// Argument declares one user-facing input of a measure. Default holds the
// string form of the default value; an empty Default with Required set means
// the user must supply a value.
type Argument struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description,omitempty"`
	Units       string   `json:"units,omitempty"`
	Kind        Kind     `json:"kind"`
	Required    bool     `json:"required"`
	Default     string   `json:"default,omitempty"`
	Choices     []Choice `json:"choices,omitempty"`
}

func NewDouble(name, display string, def float64) Argument {
	return Argument{Name: name, DisplayName: display, Kind: KindDouble, Required: true,
		Default: strconv.FormatFloat(def, 'f', -1, 64)}
}

func NewInteger(name, display string, def int) Argument {
	return Argument{Name: name, DisplayName: display, Kind: KindInteger, Required: true,
		Default: strconv.Itoa(def)}
}

func NewBool(name, display string, def bool) Argument {
	return Argument{Name: name, DisplayName: display, Kind: KindBool, Required: true,
		Default: strconv.FormatBool(def)}
}

// NewChoice declares a choice argument. def may be empty for no default.
func NewChoice(name, display string, choices []Choice, def string) Argument {
	return Argument{Name: name, DisplayName: display, Kind: KindChoice, Required: true,
		Choices: choices, Default: def}
}

// WithDescription returns a copy of a with the description and units set.
func (a Argument) WithDescription(desc, units string) Argument {
	a.Description = desc
	a.Units = units
	return a
}

// MatchChoice resolves s against the choice values first, then the display
// names.
func (a Argument) MatchChoice(s string) (Choice, bool) {
	for _, c := range a.Choices {
		if c.Value == s {
			return c, true
		}
	}
	for _, c := range a.Choices {
		if c.Display == s {
			return c, true
		}
	}
	return Choice{}, false
}

func (a Argument) parse(raw string) (any, error) {
	s := strings.TrimSpace(raw)
	switch a.Kind {
	case KindDouble:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not a number", ErrInvalidArgument, a.Name, raw)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %s: %q is not a finite number", ErrInvalidArgument, a.Name, raw)
		}
		return f, nil
	case KindInteger:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not an integer", ErrInvalidArgument, a.Name, raw)
		}
		return n, nil
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not a boolean", ErrInvalidArgument, a.Name, raw)
		}
		return b, nil
	case KindChoice:
		c, ok := a.MatchChoice(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %q is not one of the available choices", ErrInvalidArgument, a.Name, raw)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidArgument, a.Name, a.Kind)
	}
}

// ArgumentVector is the ordered list of arguments a measure declares.
type ArgumentVector []Argument

func (v ArgumentVector) Lookup(name string) (Argument, bool) {
	for _, a := range v {
		if a.Name == name {
			return a, true
		}
	}
	return Argument{}, false
}

// UserArguments are raw values keyed by argument name, as they arrive from a
// CLI flag, a workflow file or an HTTP body.
type UserArguments map[string]string

// Values holds validated, typed argument values.
type Values struct {
	typed map[string]any
}

// ValidateUserArguments fills defaults and parses every argument declared in
// defs. All problems are reported together; each wraps ErrInvalidArgument.
func ValidateUserArguments(defs ArgumentVector, user UserArguments) (Values, error) {
	vals := Values{typed: make(map[string]any, len(defs))}
	var errs []error

	for name := range user {
		if _, ok := defs.Lookup(name); !ok {
			errs = append(errs, fmt.Errorf("%w: unknown argument %q", ErrInvalidArgument, name))
		}
	}

	for _, a := range defs {
		raw, ok := user[a.Name]
		if !ok || strings.TrimSpace(raw) == "" {
			if a.Default == "" {
				if a.Required {
					errs = append(errs, fmt.Errorf("%w: %s is required", ErrInvalidArgument, a.Name))
				}
				continue
			}
			raw = a.Default
		}
		v, err := a.parse(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vals.typed[a.Name] = v
	}

	if len(errs) > 0 {
		return Values{}, errors.Join(errs...)
	}
	return vals, nil
}

func (v Values) Double(name string) float64 {
	f, _ := v.typed[name].(float64)
	return f
}

func (v Values) Integer(name string) int {
	n, _ := v.typed[name].(int)
	return n
}

func (v Values) Bool(name string) bool {
	b, _ := v.typed[name].(bool)
	return b
}

// String returns the selected value of a choice.
func (v Values) String(name string) string {
	c, _ := v.typed[name].(Choice)
	return c.Value
}

// ChoiceDisplay returns the display name of the selected choice.
func (v Values) ChoiceDisplay(name string) string {
	c, _ := v.typed[name].(Choice)
	return c.Display
}
