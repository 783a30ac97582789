// Package command defines the closed set of robot states and the single character command
// tokens sent over the comms link for each of them.
package command

import (
	"github.com/pkg/errors"
)

// State is what the robot is commanded to do on a tick. Exactly one State is active at a time and
// it maps one to one onto the command sent over the wire.
type State int

// The known robot states. Stop is the zero value so that a fresh robot is stopped.
const (
	Stop State = iota
	MoveForward
	MoveBackward
	MoveLeft
	MoveRight
	RotateCW
	RotateCCW
	OpeningLeftWing
	OpeningRightWing
	ClosingLeftWing
	ClosingRightWing
)

type stateInfo struct {
	name string
	code string
}

var states = map[State]stateInfo{
	Stop:             {"STOP", "S"},
	MoveForward:      {"MOVE_FORWARD", "F"},
	MoveBackward:     {"MOVE_BACKWARD", "B"},
	MoveLeft:         {"MOVE_LEFT", "L"},
	MoveRight:        {"MOVE_RIGHT", "R"},
	RotateCW:         {"ROTATE_CW", "C"},
	RotateCCW:        {"ROTATE_CCW", "Z"},
	OpeningLeftWing:  {"OPENING_LEFT_WING", "1"},
	OpeningRightWing: {"OPENING_RIGHT_WING", "2"},
	ClosingLeftWing:  {"CLOSING_LEFT_WING", "3"},
	ClosingRightWing: {"CLOSING_RIGHT_WING", "4"},
}

// All returns every known state in declaration order.
func All() []State {
	all := make([]State, 0, len(states))
	for s := Stop; s <= ClosingRightWing; s++ {
		all = append(all, s)
	}
	return all
}

// String returns the upper snake case name of the state.
func (s State) String() string {
	if info, ok := states[s]; ok {
		return info.name
	}
	return "UNKNOWN"
}

// Code returns the command token sent to the robot for this state. Unknown states map to the stop
// token.
func (s State) Code() string {
	if info, ok := states[s]; ok {
		return info.code
	}
	return states[Stop].code
}

// IsLocomotion is true for the states that move the base.
func (s State) IsLocomotion() bool {
	return s >= MoveForward && s <= RotateCCW
}

// IsActuator is true for the wing actuator states.
func (s State) IsActuator() bool {
	return s >= OpeningLeftWing && s <= ClosingRightWing
}

// FromCode returns the state for a command token.
func FromCode(code string) (State, error) {
	for s, info := range states {
		if info.code == code {
			return s, nil
		}
	}
	return Stop, errors.Errorf("unknown command code %q", code)
}

// FromString returns the state with the given name, e.g. "ROTATE_CW".
func FromString(name string) (State, error) {
	for s, info := range states {
		if info.name == name {
			return s, nil
		}
	}
	return Stop, errors.Errorf("unknown robot state %q", name)
}
