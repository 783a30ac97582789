package navigation

// PoseToWaypoint classifies the robot's position relative to its destination. It is derived from
// the Map on every query and never stored.
type PoseToWaypoint int

// The pose classifications. None means there is not enough data (no destination) and callers must
// hold their last safe state rather than pick a motion.
const (
	None PoseToWaypoint = iota
	Near
	OnPath
	OffPath
)

func (p PoseToWaypoint) String() string {
	switch p {
	case Near:
		return "NEAR"
	case OnPath:
		return "ON_PATH"
	case OffPath:
		return "OFF_PATH"
	case None:
		return "NONE"
	default:
		return "NA"
	}
}

// OrientationAtEndpoint classifies the robot's heading relative to the heading wanted at the
// endpoint.
type OrientationAtEndpoint int

const (
	// NotOriented is the unresolved default. It carries no direction information, so a robot in
	// this state keeps rotating in one fixed direction until it leaves it. Nothing guarantees it
	// ever does; callers must bound the rotation themselves (see tasks.Navigate).
	NotOriented OrientationAtEndpoint = iota
	// Oriented means the heading is within the angular tolerance of the target.
	Oriented
	// OffToLeft means the robot points left (counter-clockwise) of the target and must rotate
	// clockwise.
	OffToLeft
	// OffToRight means the robot points right (clockwise) of the target and must rotate
	// counter-clockwise.
	OffToRight
)

func (o OrientationAtEndpoint) String() string {
	switch o {
	case Oriented:
		return "ORIENTED"
	case OffToLeft:
		return "OFF_TO_LEFT"
	case OffToRight:
		return "OFF_TO_RIGHT"
	case NotOriented:
		return "NOTORIENTED"
	default:
		return "NA"
	}
}
