// Package tasks contains the units of work a rover executes and the Manager that sequences them.
//
// Every task runs through the same four state lifecycle. On each tick the Manager calls the
// handler matching the active task's Status, lending it the Map and Navigator through an Env.
// Handlers never block; they only decide which command.State the robot should be in next.
package tasks

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/rover/command"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/navigation"
)

var (
	// ErrInvalidTransition is returned when a handler runs outside the status it expects or a task
	// is asked to move along an edge the lifecycle does not have.
	ErrInvalidTransition = errors.New("invalid task transition")
	// ErrRotationTimeout is recorded by a Navigate task that gave up rotating without ever being
	// able to classify its orientation.
	ErrRotationTimeout = errors.New("rotation did not converge")
)

// Env is what a handler gets to work with for one tick. Map and Navigator are borrowed and must not
// be retained after the handler returns. NextState starts out as the robot's current state;
// leaving it untouched keeps the robot doing what it is doing. NextType lets a finishing or
// suspended task name the type of task it wants to run next.
type Env struct {
	Map       *navigation.Map
	Navigator *navigation.Navigator

	NextState command.State
	NextType  Type
}

// A Task is a unit of work with a lifecycle. Each handler is only valid in its matching Status.
type Task interface {
	fmt.Stringer

	Type() Type
	Priority() int
	Status() Status
	// Err reports why a task finished abnormally, if it did.
	Err() error

	// Suspend moves an in progress task to Suspended.
	Suspend() error
	// Resume moves a suspended task back to InProgress.
	Resume() error

	NotStarted(env *Env) error
	InProgress(env *Env) error
	Suspended(env *Env) error
	Complete(env *Env) error
}

// Dispatch calls the handler of t that matches its current status.
func Dispatch(t Task, env *Env) error {
	switch status := t.Status(); status {
	case NotStarted:
		return t.NotStarted(env)
	case InProgress:
		return t.InProgress(env)
	case Suspended:
		return t.Suspended(env)
	case Complete:
		return t.Complete(env)
	default:
		return errors.Wrapf(ErrInvalidTransition, "%s has unknown status %d", t, status)
	}
}

// lifecycle carries the state shared by every task variant and enforces the transition graph.
type lifecycle struct {
	taskType Type
	priority int
	next     Type
	status   Status
	err      error
	tornDown bool
	logger   logging.Logger
}

func newLifecycle(taskType Type, priority int, logger logging.Logger) lifecycle {
	return lifecycle{
		taskType: taskType,
		priority: priority,
		logger:   logger,
	}
}

func (l *lifecycle) Type() Type {
	return l.taskType
}

func (l *lifecycle) Priority() int {
	return l.priority
}

func (l *lifecycle) Status() Status {
	return l.status
}

func (l *lifecycle) Err() error {
	return l.err
}

func (l *lifecycle) Suspend() error {
	return l.transition(Suspended)
}

func (l *lifecycle) Resume() error {
	return l.transition(InProgress)
}

func (l *lifecycle) setPriority(priority int) {
	l.priority = priority
}

func (l *lifecycle) setNext(next Type) {
	l.next = next
}

func (l *lifecycle) transition(to Status) error {
	if !canTransition(l.status, to) {
		return errors.Wrapf(ErrInvalidTransition, "%s task cannot go from %s to %s", l.taskType, l.status, to)
	}
	l.logger.Debugw("task status change", "type", l.taskType, "from", l.status, "to", to)
	l.status = to
	return nil
}

// expect guards a handler against running in the wrong status.
func (l *lifecycle) expect(handler string, status Status) error {
	if l.status != status {
		return errors.Wrapf(ErrInvalidTransition, "%s task %s handler called while %s", l.taskType, handler, l.status)
	}
	return nil
}

// start is the shared NotStarted handler body.
func (l *lifecycle) start() error {
	if err := l.expect("notStarted", NotStarted); err != nil {
		return err
	}
	return l.transition(InProgress)
}

// suspend is the shared Suspended handler body: stop the robot and hand out the follow up type.
func (l *lifecycle) suspend(env *Env) error {
	if err := l.expect("suspended", Suspended); err != nil {
		return err
	}
	env.NextState = command.Stop
	env.NextType = l.next
	return nil
}

// finish is the shared Complete handler body. It reports whether teardown should run, which is
// only the first time.
func (l *lifecycle) finish(env *Env) (bool, error) {
	if err := l.expect("complete", Complete); err != nil {
		return false, err
	}
	env.NextType = l.next
	if l.tornDown {
		return false, nil
	}
	l.tornDown = true
	return true, nil
}

// fail records err and completes the task.
func (l *lifecycle) fail(err error) error {
	l.err = err
	return l.transition(Complete)
}

// configurable is implemented by every task embedding lifecycle.
type configurable interface {
	setPriority(priority int)
	setNext(next Type)
}
