package tasks

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/rover/command"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/navigation"
)

// WingState is the position a wing actuator should end up in.
type WingState string

// The wing positions.
const (
	WingOpen   WingState = "open"
	WingClosed WingState = "closed"
)

// DefaultActionPointTolerance is used when a ControlWings config leaves tolerance unset. An explicit
// 0 is kept and requires the robot to be exactly at the action point.
const DefaultActionPointTolerance = 0.1

// ControlWingsConfig describes a wing actuation at an action point.
type ControlWingsConfig struct {
	Left      WingState `json:"left"`
	Right     WingState `json:"right"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Tolerance *float64  `json:"tolerance,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *ControlWingsConfig) Validate() error {
	for side, state := range map[string]WingState{"left": cfg.Left, "right": cfg.Right} {
		if state != WingOpen && state != WingClosed {
			return errors.Errorf("%s must be %q or %q, got %q", side, WingOpen, WingClosed, state)
		}
	}
	if cfg.Tolerance != nil && *cfg.Tolerance < 0 {
		return errors.Errorf("tolerance must not be negative, got %g", *cfg.Tolerance)
	}
	return nil
}

// wingSequences holds the command issued on each step for every left/right combination. The right
// wing always moves first and the left wing second; the final entry completes the task.
var wingSequences = map[[2]WingState][]command.State{
	{WingOpen, WingOpen}:     {command.OpeningRightWing, command.OpeningLeftWing},
	{WingOpen, WingClosed}:   {command.ClosingRightWing, command.OpeningLeftWing},
	{WingClosed, WingOpen}:   {command.OpeningRightWing, command.ClosingLeftWing},
	{WingClosed, WingClosed}: {command.ClosingRightWing, command.ClosingLeftWing},
}

// ControlWings actuates the wings once the robot is at its action point. It does not move the
// robot; until the action point is reached it leaves the robot state alone.
type ControlWings struct {
	lifecycle

	desiredLeft   WingState
	desiredRight  WingState
	actionPoint   navigation.XYPoint
	tolerance     float64
	inActionState bool
	step          int
}

// NewControlWings returns a task driving the wings to left and right once the robot is within
// tolerance of actionPoint on both axes.
func NewControlWings(
	left, right WingState,
	actionPoint navigation.XYPoint,
	tolerance float64,
	logger logging.Logger,
) *ControlWings {
	return &ControlWings{
		lifecycle:    newLifecycle(TypeControlWings, ControlWingsPriority, logger),
		desiredLeft:  left,
		desiredRight: right,
		actionPoint:  actionPoint,
		tolerance:    tolerance,
	}
}

func newControlWingsFromConfig(cfg ControlWingsConfig, logger logging.Logger) *ControlWings {
	tolerance := lo.FromPtrOr(cfg.Tolerance, DefaultActionPointTolerance)
	return NewControlWings(cfg.Left, cfg.Right, navigation.NewXYPoint(cfg.X, cfg.Y), tolerance, logger)
}

func (t *ControlWings) String() string {
	return fmt.Sprintf("control wings left=%s right=%s at %s", t.desiredLeft, t.desiredRight, t.actionPoint)
}

// InAction reports whether the wing sequence has begun.
func (t *ControlWings) InAction() bool {
	return t.inActionState
}

// Step returns how many steps of the wing sequence have been issued.
func (t *ControlWings) Step() int {
	return t.step
}

// NotStarted has nothing to set up.
func (t *ControlWings) NotStarted(env *Env) error {
	if err := t.start(); err != nil {
		return err
	}
	t.logInfo()
	return nil
}

// InProgress issues one wing command per tick once at the action point. The task completes on the
// tick that issues the last command.
func (t *ControlWings) InProgress(env *Env) error {
	if err := t.expect("inProgress", InProgress); err != nil {
		return err
	}

	if !t.inActionState && !env.Navigator.IsNear(env.Map, t.actionPoint, t.tolerance) {
		return nil
	}
	t.inActionState = true

	sequence, ok := wingSequences[[2]WingState{t.desiredLeft, t.desiredRight}]
	if !ok {
		env.NextState = command.Stop
		return t.fail(errors.Errorf("no wing sequence for left=%q right=%q", t.desiredLeft, t.desiredRight))
	}

	env.NextState = sequence[t.step]
	t.step++
	t.logInfo()
	if t.step >= len(sequence) {
		return t.transition(Complete)
	}
	return nil
}

// Suspended stops the robot. The step counter is kept so no wing command is issued twice.
func (t *ControlWings) Suspended(env *Env) error {
	return t.suspend(env)
}

// Complete resets the action state.
func (t *ControlWings) Complete(env *Env) error {
	teardown, err := t.finish(env)
	if teardown {
		t.inActionState = false
		t.step = 0
	}
	return err
}

func (t *ControlWings) logInfo() {
	t.logger.Debugw("control wings",
		"status", t.status,
		"action_point", t.actionPoint.String(),
		"in_action", t.inActionState,
		"step", t.step,
		"tolerance", t.tolerance)
}
