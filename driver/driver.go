// Package driver ticks a robot at a fixed cadence until its task queue runs dry.
package driver

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/utils"

	"go.viam.com/rover/logging"
	"go.viam.com/rover/robot"
)

// A PoseSource reports where the robot is. The fake comms link is one; on hardware it is whatever
// localization the rover carries.
type PoseSource interface {
	Pose(ctx context.Context) (x, y, headingDeg float64, err error)
}

// Driver runs the per-tick loop: refresh the pose, execute the active task, report status.
type Driver struct {
	Robot *robot.Robot
	// PoseSource is optional; without one the robot's pose is whatever was last set on it.
	PoseSource PoseSource
	Clock      clock.Clock
	Interval   time.Duration
	Logger     logging.Logger
}

// New returns a Driver on the wall clock.
func New(r *robot.Robot, poses PoseSource, interval time.Duration, logger logging.Logger) *Driver {
	return &Driver{
		Robot:      r,
		PoseSource: poses,
		Clock:      clock.New(),
		Interval:   interval,
		Logger:     logger,
	}
}

// Tick runs one iteration. done is true once the robot has no tasks left.
func (d *Driver) Tick(ctx context.Context) (bool, error) {
	if d.PoseSource != nil {
		x, y, heading, err := d.PoseSource.Pose(ctx)
		if err != nil {
			return false, err
		}
		d.Robot.SetCurrentXY(x, y)
		d.Robot.SetOrientation(heading)
	}

	if err := d.Robot.ExecuteCurrentTask(ctx); err != nil {
		return false, err
	}
	d.Robot.LogStatus(ctx)
	return !d.Robot.HasTasks(), nil
}

// Run ticks until the task queue is exhausted or ctx is done, then stops the robot. Tick errors
// are logged and the loop carries on.
func (d *Driver) Run(ctx context.Context) error {
	ticker := d.Clock.Ticker(d.Interval)
	defer ticker.Stop()

	var ticks int
	for {
		done, err := d.Tick(ctx)
		ticks++
		d.Logger.CDebugf(ctx, "tick %d done", ticks)
		if err != nil {
			d.Logger.Warnw("tick failed", "tick", ticks, "error", err)
		}
		if done {
			d.Logger.Infow("all tasks complete", "ticks", ticks)
			break
		}
		if !utils.SelectContextOrWaitChan(ctx, ticker.C) {
			d.Logger.Infow("driver cancelled", "ticks", ticks)
			break
		}
	}

	// ctx may already be done; stopping must still reach the robot.
	return d.Robot.Stop(context.WithoutCancel(ctx))
}
