package tasks

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"go.viam.com/rover/command"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/navigation"
)

// DefaultMaxRotationTicks bounds how long a Navigate task keeps rotating in place, either while its
// orientation cannot be classified or while turning toward an off path waypoint.
const DefaultMaxRotationTicks = 200

// sameWaypointTolerance decides whether the map still holds this task's destination.
const sameWaypointTolerance = 1e-9

// NavigateConfig describes a waypoint to drive to.
type NavigateConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// OrientationDeg is the heading wanted on arrival. Without it any heading is accepted.
	OrientationDeg *float64 `json:"orientation_deg,omitempty"`
	// MaxRotationTicks bounds consecutive rotation ticks. Defaults to DefaultMaxRotationTicks.
	MaxRotationTicks int `json:"max_rotation_ticks,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *NavigateConfig) Validate() error {
	if cfg.MaxRotationTicks < 0 {
		return errors.Errorf("max_rotation_ticks must not be negative, got %d", cfg.MaxRotationTicks)
	}
	return nil
}

// Navigate drives the robot to a destination and, optionally, turns it to face a heading there.
type Navigate struct {
	lifecycle

	destination      navigation.XYPoint
	orientation      *float64
	maxRotationTicks int

	lastRotation  command.State
	rotationTicks int
	steerTicks    int
}

// NewNavigate returns a Navigate task for cfg.
func NewNavigate(cfg NavigateConfig, logger logging.Logger) *Navigate {
	maxTicks := cfg.MaxRotationTicks
	if maxTicks == 0 {
		maxTicks = DefaultMaxRotationTicks
	}
	return &Navigate{
		lifecycle:        newLifecycle(TypeNavigate, NavigatePriority, logger),
		destination:      navigation.NewXYPoint(cfg.X, cfg.Y),
		orientation:      cfg.OrientationDeg,
		maxRotationTicks: maxTicks,
		lastRotation:     command.RotateCW,
	}
}

// Destination returns the waypoint this task drives to.
func (t *Navigate) Destination() navigation.XYPoint {
	return t.destination
}

func (t *Navigate) String() string {
	if t.orientation == nil {
		return fmt.Sprintf("navigate to %s", t.destination)
	}
	return fmt.Sprintf("navigate to %s facing %g", t.destination, *t.orientation)
}

// NotStarted points the map at this task's waypoint.
func (t *Navigate) NotStarted(env *Env) error {
	if err := t.expect("notStarted", NotStarted); err != nil {
		return err
	}
	t.aim(env.Map)
	t.logger.Debugw("navigate task started", "destination", t.destination.String(), "orientation", t.orientation)
	return t.transition(InProgress)
}

func (t *Navigate) aim(m *navigation.Map) {
	m.SetNextDestination(t.destination)
	if t.orientation != nil {
		m.SetDestinationOrientation(*t.orientation)
	}
}

// InProgress steers toward the waypoint: forward while on path, rotate toward it while off path,
// then rotate to the endpoint orientation once near. The task completes with the robot stopped.
func (t *Navigate) InProgress(env *Env) error {
	if err := t.expect("inProgress", InProgress); err != nil {
		return err
	}

	// a resumed task may find someone else's destination on the map.
	if dest, ok := env.Map.NextDestinationXY(); !ok || !dest.ApproxEqual(t.destination, sameWaypointTolerance) {
		t.aim(env.Map)
	}

	pose := env.Navigator.PoseToWaypoint(env.Map)
	switch pose {
	case navigation.None:
		env.NextState = command.Stop
	case navigation.OffPath:
		env.NextState = t.steer(env)
		if t.steerTicks > t.maxRotationTicks {
			t.logger.Warnw("giving up on heading", "ticks", t.steerTicks, "destination", t.destination.String())
			env.NextState = command.Stop
			return t.fail(ErrRotationTimeout)
		}
	case navigation.OnPath:
		t.steerTicks = 0
		env.NextState = command.MoveForward
	case navigation.Near:
		t.steerTicks = 0
		return t.orient(env)
	}

	t.logger.Debugw("navigate", "pose", pose, "next_state", env.NextState, "bearing", env.Navigator.LastAngle())
	return nil
}

// steer handles the OFFPATH case. Far from the waypoint the path band is a sliver of a degree, so
// a heading within the angular tolerance drives forward rather than rotating past the bearing.
func (t *Navigate) steer(env *Env) command.State {
	headingErr, ok := env.Navigator.HeadingError(env.Map)
	if !ok {
		return command.Stop
	}
	if math.Abs(headingErr) <= env.Navigator.Tolerances().AngularDeg {
		t.steerTicks = 0
		return command.MoveForward
	}
	t.steerTicks++
	if headingErr > 0 {
		return command.RotateCCW
	}
	return command.RotateCW
}

// orient handles the NEAR case.
func (t *Navigate) orient(env *Env) error {
	if t.orientation == nil {
		env.NextState = command.Stop
		return t.transition(Complete)
	}

	orientation := env.Navigator.Orientation(env.Map)
	switch orientation {
	case navigation.Oriented:
		env.NextState = command.Stop
		return t.transition(Complete)
	case navigation.OffToLeft:
		t.rotationTicks = 0
		t.lastRotation = command.RotateCW
	case navigation.OffToRight:
		t.rotationTicks = 0
		t.lastRotation = command.RotateCCW
	case navigation.NotOriented:
		t.rotationTicks++
		if t.rotationTicks > t.maxRotationTicks {
			t.logger.Warnw("giving up on orientation", "ticks", t.rotationTicks, "destination", t.destination.String())
			env.NextState = command.Stop
			return t.fail(ErrRotationTimeout)
		}
	}

	env.NextState = t.lastRotation
	t.logger.Debugw("orienting", "orientation", orientation, "next_state", env.NextState)
	return nil
}

// Suspended stops the robot. The waypoint is re-aimed on resume.
func (t *Navigate) Suspended(env *Env) error {
	return t.suspend(env)
}

// Complete clears the map destination if it is still this task's.
func (t *Navigate) Complete(env *Env) error {
	teardown, err := t.finish(env)
	if err != nil || !teardown {
		return err
	}
	if dest, ok := env.Map.NextDestinationXY(); ok && dest.ApproxEqual(t.destination, sameWaypointTolerance) {
		env.Map.ClearDestination()
	}
	t.rotationTicks = 0
	t.steerTicks = 0
	t.logger.Debugw("navigate task complete", "destination", t.destination.String(), "error", t.err)
	return nil
}
