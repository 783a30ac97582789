package tasks

import (
	"go.viam.com/rover/utils"
)

// Status is where a task is in its lifecycle. Tasks move NotStarted -> InProgress ->
// (Suspended <-> InProgress)* -> Complete. Complete is terminal; a task is single use.
type Status int

// The task statuses.
const (
	NotStarted Status = iota
	InProgress
	Suspended
	Complete
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "NOTSTARTED"
	case InProgress:
		return "INPROGRESS"
	case Suspended:
		return "SUSPENDED"
	case Complete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// validTransitions lists every status a task may move to from a given status.
var validTransitions = map[Status][]Status{
	NotStarted: {InProgress},
	InProgress: {Suspended, Complete},
	Suspended:  {InProgress},
}

func canTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Type tags each task variant.
type Type int

// The task variants. TypeNone is used where no type applies, e.g. no follow up task was requested.
const (
	TypeNone Type = iota
	TypeNavigate
	TypeControlWings
	TypeWait
)

// Static priorities of the task variants. Lower values run first; equal priorities run in the
// order the tasks were added.
const (
	DefaultPriority      = 10
	NavigatePriority     = DefaultPriority
	ControlWingsPriority = DefaultPriority
	WaitPriority         = DefaultPriority
)

var typeNames = map[Type]string{
	TypeNone:         "none",
	TypeNavigate:     "navigate",
	TypeControlWings: "control_wings",
	TypeWait:         "wait",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// TypeFromString returns the Type named s. The empty string is TypeNone.
func TypeFromString(s string) (Type, error) {
	if s == "" {
		return TypeNone, nil
	}
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeNone, utils.NewUnknownNameError("task type", s)
}
