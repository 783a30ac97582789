package navigation

// Map holds the robot's current coordinate and orientation along with the active destination.
// It is a plain pass-through store: the robot owns it and lends it to the Navigator and the
// active task for the duration of one tick.
type Map struct {
	currentCoordinate  XYPoint
	currentOrientation float64

	nextDestination XYPoint
	hasDestination  bool

	destinationOrientation    float64
	hasDestinationOrientation bool
}

// NewMap returns a map with the robot at the origin facing 0 degrees and no destination.
func NewMap() *Map {
	return &Map{}
}

// SetRobotCurrentCoordinate records the robot's position.
func (m *Map) SetRobotCurrentCoordinate(x, y float64) {
	m.currentCoordinate = NewXYPoint(x, y)
}

// RobotCurrentCoordinate returns the robot's position.
func (m *Map) RobotCurrentCoordinate() XYPoint {
	return m.currentCoordinate
}

// RobotX returns the robot's x coordinate.
func (m *Map) RobotX() float64 {
	return m.currentCoordinate.X()
}

// RobotY returns the robot's y coordinate.
func (m *Map) RobotY() float64 {
	return m.currentCoordinate.Y()
}

// SetRobotOrientation records the robot's heading in degrees.
func (m *Map) SetRobotOrientation(o float64) {
	m.currentOrientation = o
}

// RobotOrientation returns the robot's heading in degrees.
func (m *Map) RobotOrientation() float64 {
	return m.currentOrientation
}

// SetNextDestination sets the active destination and forgets any endpoint orientation.
func (m *Map) SetNextDestination(p XYPoint) {
	m.nextDestination = p
	m.hasDestination = true
	m.hasDestinationOrientation = false
}

// NextDestinationXY returns the active destination, if any.
func (m *Map) NextDestinationXY() (XYPoint, bool) {
	return m.nextDestination, m.hasDestination
}

// SetDestinationOrientation sets the heading wanted once the destination is reached.
func (m *Map) SetDestinationOrientation(o float64) {
	m.destinationOrientation = o
	m.hasDestinationOrientation = true
}

// DestinationOrientation returns the heading wanted at the destination, if any.
func (m *Map) DestinationOrientation() (float64, bool) {
	return m.destinationOrientation, m.hasDestinationOrientation
}

// ClearDestination forgets the destination and its orientation.
func (m *Map) ClearDestination() {
	m.nextDestination = XYPoint{}
	m.hasDestination = false
	m.hasDestinationOrientation = false
}
