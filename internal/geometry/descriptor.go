package geometry

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

type SetupSlot struct {
	Label string `json:"label"`
	Index int    `json:"index"`
}

// SetDescriptor is the static description of a set from the resource index.
type SetDescriptor struct {
	VariableName string      `json:"variable_name"`
	DisplayName  string      `json:"display_name,omitempty"`
	Setups       []SetupSlot `json:"setups"`
}

func (d *SetDescriptor) Validate() error {
	el := errors.NewErrorList()

	if d.VariableName == "" {
		el.Add(fmt.Errorf("variable_name is required"))
	}

	seen := map[string]bool{}
	for i, s := range d.Setups {
		if s.Label == "" {
			el.Add(fmt.Errorf("setup %d: label is required", i))
			continue
		}
		key := strings.ToLower(s.Label)
		if seen[key] {
			el.Add(fmt.Errorf("setup %d: duplicate label %q", i, s.Label))
		}
		seen[key] = true
	}

	return el.Err()
}

// SetupIndex looks a setup up by label, ignoring case.
func (d *SetDescriptor) SetupIndex(label string) (int, bool) {
	for _, s := range d.Setups {
		if strings.EqualFold(s.Label, label) {
			return s.Index, true
		}
	}
	return 0, false
}

func (d *SetDescriptor) SetupLabel(index int) (string, bool) {
	for _, s := range d.Setups {
		if s.Index == index {
			return s.Label, true
		}
	}
	return "", false
}

func (d *SetDescriptor) FirstSetup() (SetupSlot, bool) {
	if len(d.Setups) == 0 {
		return SetupSlot{}, false
	}
	return d.Setups[0], true
}
