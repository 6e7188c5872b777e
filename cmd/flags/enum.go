package flags

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// EnumValue is a cli.Generic restricted to a fixed set of string values.
// Value is the default, returned until a valid value is set.
type EnumValue struct {
	Name  string
	Usage string
	Enum  []string
	Value string

	selected string
}

// Set stores value if it is one of the allowed values.
func (e *EnumValue) Set(value string) error {
	for _, allowed := range e.Enum {
		if allowed == value {
			e.selected = value
			return nil
		}
	}
	return errors.Errorf("allowed values are %s", strings.Join(e.Enum, ", "))
}

// String returns the selected value, or the default when none was set.
func (e *EnumValue) String() string {
	if e.selected == "" {
		return e.Value
	}
	return e.selected
}

// GenericFlag exposes the enum as a cli flag. The parsed value is read back
// with ctx.String or ctx.Generic on the flag name.
func (e EnumValue) GenericFlag() *cli.GenericFlag {
	return &cli.GenericFlag{Name: e.Name, Usage: e.Usage, Value: &e}
}
