// Package navigation holds the 2D geometry the rover steers with: points, the map of where the
// robot is and where it is going, and the Navigator that classifies one against the other.
package navigation

// Navigator turns the current pose and destination into heading and proximity judgments. It is
// pure apart from remembering the last bearing it computed, which is only used for status
// reporting.
type Navigator struct {
	tol       Tolerances
	lastAngle float64
}

// NewNavigator returns a Navigator using cfg, with defaults applied to unset tolerances.
func NewNavigator(cfg Config) *Navigator {
	return &Navigator{tol: cfg.Tolerances()}
}

// Tolerances returns the tolerances in use.
func (n *Navigator) Tolerances() Tolerances {
	return n.tol
}

// LastAngle returns the bearing computed by the most recent destination query.
func (n *Navigator) LastAngle() float64 {
	return n.lastAngle
}

// AngleToDestination returns the bearing from the robot to the destination. The second return is
// false when the map has no destination.
func (n *Navigator) AngleToDestination(m *Map) (float64, bool) {
	dest, ok := m.NextDestinationXY()
	if !ok {
		return 0, false
	}
	n.lastAngle = AngleToPoint(m.RobotX(), m.RobotY(), dest.X(), dest.Y())
	return n.lastAngle, true
}

// HeadingError returns the signed rotation that would point the robot at its destination.
func (n *Navigator) HeadingError(m *Map) (float64, bool) {
	bearing, ok := n.AngleToDestination(m)
	if !ok {
		return 0, false
	}
	return AngleToOrientation(m.RobotOrientation(), bearing), true
}

// PoseToWaypoint classifies the robot against the map's destination, or None if there is none.
func (n *Navigator) PoseToWaypoint(m *Map) PoseToWaypoint {
	dest, ok := m.NextDestinationXY()
	if !ok {
		return None
	}
	n.AngleToDestination(m)
	return ClassifyPoseToWaypoint(
		m.RobotX(), m.RobotY(), m.RobotOrientation(),
		dest.X(), dest.Y(),
		n.tol.Near, n.tol.Path,
	)
}

// Orientation classifies the robot heading against the destination orientation, or NotOriented if
// the map has none.
func (n *Navigator) Orientation(m *Map) OrientationAtEndpoint {
	target, ok := m.DestinationOrientation()
	if !ok {
		return NotOriented
	}
	return ClassifyOrientation(m.RobotOrientation(), target, n.tol.AngularDeg)
}

// IsNear is true when the robot is within tolerance of point on both axes.
func (n *Navigator) IsNear(m *Map, point XYPoint, tolerance float64) bool {
	return m.RobotCurrentCoordinate().ApproxEqual(point, tolerance)
}
