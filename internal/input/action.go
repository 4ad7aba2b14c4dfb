package input

import (
	"fmt"
	"strings"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Action -trimprefix=Action

// Action is a player intent, independent of the device that produced it.
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionSoftDrop
	ActionRotate
	ActionHardDrop
	ActionPause
	ActionRestart
)

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction resolves an action by name, ignoring case. Bot scripts and
// config files use these names.
func ParseAction(name string) (Action, error) {
	for a := ActionLeft; a <= ActionRestart; a++ {
		if strings.EqualFold(a.String(), name) {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}
