// Package fake implements a fake robot link that records commands and simulates motion.
package fake

import (
	"context"
	"math"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/rover/command"
	"go.viam.com/rover/comms"
	"go.viam.com/rover/utils"
)

var _ comms.Comms = (*Comms)(nil)

// Default motion per step.
const (
	DefaultLinearStep     = 0.25
	DefaultAngularStepDeg = 5.0
)

// Comms is an in memory robot. It remembers every command it was sent and, each time its pose is
// read, advances the robot one step according to the last locomotion command.
type Comms struct {
	mu sync.Mutex

	LinearStep     float64
	AngularStepDeg float64
	// SendErr, when set, is returned by SendCommand and the command is dropped.
	SendErr error

	commands   []string
	state      command.State
	position   r2.Point
	heading    float64
	leftOpen   bool
	rightOpen  bool
	closeCount int
}

// New returns a fake robot at (x, y) facing headingDeg.
func New(x, y, headingDeg float64) *Comms {
	return &Comms{
		LinearStep:     DefaultLinearStep,
		AngularStepDeg: DefaultAngularStepDeg,
		position:       r2.Point{X: x, Y: y},
		heading:        headingDeg,
	}
}

// SendCommand records code. Wing codes take effect immediately.
func (c *Comms) SendCommand(ctx context.Context, code string) error {
	state, err := command.FromCode(code)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SendErr != nil {
		return c.SendErr
	}
	if c.closeCount > 0 {
		return errors.New("fake link is closed")
	}
	c.commands = append(c.commands, code)

	switch state {
	case command.OpeningLeftWing:
		c.leftOpen = true
	case command.ClosingLeftWing:
		c.leftOpen = false
	case command.OpeningRightWing:
		c.rightOpen = true
	case command.ClosingRightWing:
		c.rightOpen = false
	default:
		c.state = state
	}
	return nil
}

// Close marks the link closed.
func (c *Comms) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCount++
	return nil
}

// Commands returns every code sent so far.
func (c *Comms) Commands() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.commands...)
}

// CloseCount returns how many times Close was called.
func (c *Comms) CloseCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeCount
}

// Wings reports whether the left and right wings are open.
func (c *Comms) Wings() (left, right bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leftOpen, c.rightOpen
}

// Step advances the simulated robot by one step of its current locomotion command.
func (c *Comms) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step()
}

func (c *Comms) step() {
	rad := utils.DegToRad(c.heading)
	forward := r2.Point{X: math.Cos(rad), Y: math.Sin(rad)}
	switch c.state {
	case command.MoveForward:
		c.position = c.position.Add(forward.Mul(c.LinearStep))
	case command.MoveBackward:
		c.position = c.position.Sub(forward.Mul(c.LinearStep))
	case command.MoveLeft:
		c.position = c.position.Add(forward.Ortho().Mul(c.LinearStep))
	case command.MoveRight:
		c.position = c.position.Sub(forward.Ortho().Mul(c.LinearStep))
	case command.RotateCCW:
		c.heading = utils.NormalizeDeg(c.heading + c.AngularStepDeg)
	case command.RotateCW:
		c.heading = utils.NormalizeDeg(c.heading - c.AngularStepDeg)
	default:
	}
}

// Pose steps the simulation once and returns the resulting pose.
func (c *Comms) Pose(ctx context.Context) (x, y, headingDeg float64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step()
	return c.position.X, c.position.Y, c.heading, nil
}
