package navigation

import (
	"fmt"

	"github.com/golang/geo/r2"

	"go.viam.com/rover/utils"
)

// XYPoint is an immutable 2D coordinate. Compare points with ApproxEqual, never with ==.
type XYPoint struct {
	p r2.Point
}

// NewXYPoint returns the point (x, y).
func NewXYPoint(x, y float64) XYPoint {
	return XYPoint{r2.Point{X: x, Y: y}}
}

// X returns the x coordinate.
func (p XYPoint) X() float64 {
	return p.p.X
}

// Y returns the y coordinate.
func (p XYPoint) Y() float64 {
	return p.p.Y
}

// Vector returns the point as an r2 vector from the origin.
func (p XYPoint) Vector() r2.Point {
	return p.p
}

// Distance returns the euclidean distance between two points.
func (p XYPoint) Distance(other XYPoint) float64 {
	return other.p.Sub(p.p).Norm()
}

// ApproxEqual is true when both coordinates are within tolerance of each other.
func (p XYPoint) ApproxEqual(other XYPoint, tolerance float64) bool {
	return utils.Float64AlmostEqual(p.p.X, other.p.X, tolerance) && utils.Float64AlmostEqual(p.p.Y, other.p.Y, tolerance)
}

// String renders the point as "(x, y)".
func (p XYPoint) String() string {
	return fmt.Sprintf("(%g, %g)", p.p.X, p.p.Y)
}
