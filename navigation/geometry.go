package navigation

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/rover/utils"
)

// AngleToPoint returns the bearing in degrees, in (-180, 180], from the first point to the second.
// 0 is the +x axis and angles grow counter-clockwise. The bearing from a point to itself is 0.
func AngleToPoint(fromX, fromY, toX, toY float64) float64 {
	if fromX == toX && fromY == toY {
		return 0
	}
	return utils.NormalizeDeg(utils.RadToDeg(math.Atan2(toY-fromY, toX-fromX)))
}

// AngleToOrientation returns the smallest signed rotation in degrees, in (-180, 180], that takes
// the current orientation to the target. Positive means counter-clockwise.
func AngleToOrientation(currentOrientation, targetOrientation float64) float64 {
	return utils.NormalizeDeg(targetOrientation - currentOrientation)
}

// ClassifyPoseToWaypoint compares the robot pose to a destination. The result is Near when the
// destination is within nearTolerance. Otherwise it is OnPath when the destination lies ahead of
// the robot along its heading and no further than pathTolerance from the heading line, and
// OffPath when it does not. Non finite inputs yield None.
func ClassifyPoseToWaypoint(
	robotX, robotY, heading float64,
	destX, destY float64,
	nearTolerance, pathTolerance float64,
) PoseToWaypoint {
	if !utils.IsFinite(robotX, robotY, heading, destX, destY) {
		return None
	}

	toDest := r2.Point{X: destX - robotX, Y: destY - robotY}
	if toDest.Norm() <= nearTolerance {
		return Near
	}

	rad := utils.DegToRad(heading)
	dir := r2.Point{X: math.Cos(rad), Y: math.Sin(rad)}
	ahead := dir.Dot(toDest)
	deviation := math.Abs(dir.Cross(toDest))
	if ahead <= 0 || deviation > pathTolerance {
		return OffPath
	}
	return OnPath
}

// ClassifyOrientation compares the current heading to the target heading. NotOriented is returned
// only when either input is not a finite number.
func ClassifyOrientation(currentOrientation, targetOrientation, angularTolerance float64) OrientationAtEndpoint {
	if !utils.IsFinite(currentOrientation, targetOrientation) {
		return NotOriented
	}

	delta := AngleToOrientation(currentOrientation, targetOrientation)
	switch {
	case math.Abs(delta) <= angularTolerance:
		return Oriented
	case delta > 0:
		return OffToRight
	default:
		return OffToLeft
	}
}
