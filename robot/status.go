package robot

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"go.viam.com/rover/command"
	"go.viam.com/rover/navigation"
)

// Status is a snapshot of what the robot is doing.
type Status struct {
	State       command.State
	Destination navigation.XYPoint
	// HasDestination is false once the last destination was reached or none was ever set.
	HasDestination bool
	Orientation    float64
	Pose           navigation.PoseToWaypoint
}

// DestinationString is the destination as "(x, y)", or "none".
func (s Status) DestinationString() string {
	if !s.HasDestination {
		return "none"
	}
	return s.Destination.String()
}

// Status returns a snapshot of the robot.
func (r *Robot) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	dest, ok := r.worldMap.NextDestinationXY()
	return Status{
		State:          r.state,
		Destination:    dest,
		HasDestination: ok,
		Orientation:    r.worldMap.RobotOrientation(),
		Pose:           r.navigator.PoseToWaypoint(r.worldMap),
	}
}

// WriteStatus writes the state name, destination, orientation and pose classification, one per line.
func (r *Robot) WriteStatus(w io.Writer) error {
	status := r.Status()
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n",
		status.State,
		status.DestinationString(),
		strconv.FormatFloat(status.Orientation, 'g', -1, 64),
		status.Pose)
	return err
}

// LogStatus logs the same fields as WriteStatus at debug level, or regardless of level when ctx
// has debug mode enabled.
func (r *Robot) LogStatus(ctx context.Context) {
	status := r.Status()
	r.logger.CDebugw(ctx, "status",
		"state", status.State,
		"destination", status.DestinationString(),
		"orientation", status.Orientation,
		"pose", status.Pose)
}
