// Package robot ties the task queue to the comms link: each tick it asks the active task what
// the robot should be doing and sends a command only when that changes.
package robot

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"go.viam.com/rover/command"
	"go.viam.com/rover/comms"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/navigation"
	"go.viam.com/rover/tasks"
)

// Robot owns the world map, navigator, task manager and comms link. It is safe for concurrent use;
// pose updates may arrive from a different goroutine than the one ticking it.
type Robot struct {
	mu sync.Mutex

	logger    logging.Logger
	comms     comms.Comms
	worldMap  *navigation.Map
	navigator *navigation.Navigator
	manager   *tasks.Manager
	state     command.State
}

// New returns a stopped robot with an empty task queue.
func New(link comms.Comms, nav *navigation.Navigator, logger logging.Logger) *Robot {
	return &Robot{
		logger:    logger,
		comms:     link,
		worldMap:  navigation.NewMap(),
		navigator: nav,
		manager:   tasks.NewManager(logger.Sublogger("tasks")),
	}
}

// Run sends the command for the current state.
func (r *Robot) Run(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run(ctx)
}

func (r *Robot) run(ctx context.Context) error {
	return r.comms.SendCommand(ctx, r.state.Code())
}

// ExecuteCurrentTask runs one tick of the active task. A command is sent only when the state the
// task asks for differs from the current one.
func (r *Robot) ExecuteCurrentTask(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.manager.ExecuteCurrentTask(r.worldMap, r.navigator, r.state)
	if next == r.state {
		return nil
	}
	r.logger.CDebugw(ctx, "state change", "from", r.state, "to", next)
	r.state = next
	return r.run(ctx)
}

// AddTask queues a task.
func (r *Robot) AddTask(t tasks.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.manager.Add(t)
}

// HasTasks is true while the task queue is not exhausted.
func (r *Robot) HasTasks() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.manager.HasTasks()
}

// CurrentTask returns the active task or nil.
func (r *Robot) CurrentTask() tasks.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.manager.Current()
}

// SuspendCurrentTask holds the active task; the robot stops until ResumeCurrentTask.
func (r *Robot) SuspendCurrentTask() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.manager.SuspendCurrent()
}

// ResumeCurrentTask resumes a task held by SuspendCurrentTask.
func (r *Robot) ResumeCurrentTask() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.manager.ResumeCurrent()
}

// State returns the state last sent to the comms link.
func (r *Robot) State() command.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SetCurrentXY records the robot's position.
func (r *Robot) SetCurrentXY(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.worldMap.SetRobotCurrentCoordinate(x, y)
}

// SetOrientation records the robot's heading in degrees.
func (r *Robot) SetOrientation(o float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.worldMap.SetRobotOrientation(o)
}

// X returns the robot's x coordinate.
func (r *Robot) X() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.worldMap.RobotX()
}

// Y returns the robot's y coordinate.
func (r *Robot) Y() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.worldMap.RobotY()
}

// Orientation returns the robot's heading in degrees.
func (r *Robot) Orientation() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.worldMap.RobotOrientation()
}

// AngleToDestination returns the bearing to the active destination, if there is one.
func (r *Robot) AngleToDestination() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.navigator.AngleToDestination(r.worldMap)
}

// PoseToWaypoint classifies the robot against the active destination.
func (r *Robot) PoseToWaypoint() navigation.PoseToWaypoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.navigator.PoseToWaypoint(r.worldMap)
}

// Stop puts the robot in the Stop state and sends it, whatever the current state.
func (r *Robot) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = command.Stop
	return r.run(ctx)
}

// Close stops the robot and closes the comms link.
func (r *Robot) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = command.Stop
	return multierr.Combine(r.run(ctx), r.comms.Close(ctx))
}
