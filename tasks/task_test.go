package tasks_test

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/rover/command"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/tasks"
)

func TestLifecycle(t *testing.T) {
	task := tasks.NewWait(tasks.WaitConfig{Ticks: 2}, logging.NewTestLogger(t))
	env := newEnv(0, 0)
	test.That(t, task.Status(), test.ShouldEqual, tasks.NotStarted)

	t.Run("cannot skip in progress", func(t *testing.T) {
		err := task.InProgress(env)
		test.That(t, errors.Is(err, tasks.ErrInvalidTransition), test.ShouldBeTrue)
		err = task.Suspend()
		test.That(t, errors.Is(err, tasks.ErrInvalidTransition), test.ShouldBeTrue)
		err = task.Complete(env)
		test.That(t, errors.Is(err, tasks.ErrInvalidTransition), test.ShouldBeTrue)
		test.That(t, task.Status(), test.ShouldEqual, tasks.NotStarted)
	})

	test.That(t, tasks.Dispatch(task, env), test.ShouldBeNil)
	test.That(t, task.Status(), test.ShouldEqual, tasks.InProgress)
	test.That(t, task.Resume(), test.ShouldNotBeNil)

	test.That(t, tasks.Dispatch(task, env), test.ShouldBeNil)
	test.That(t, env.NextState, test.ShouldEqual, command.Stop)
	test.That(t, task.Status(), test.ShouldEqual, tasks.InProgress)

	test.That(t, task.Suspend(), test.ShouldBeNil)
	env.NextState = command.MoveForward
	test.That(t, tasks.Dispatch(task, env), test.ShouldBeNil)
	test.That(t, env.NextState, test.ShouldEqual, command.Stop)
	test.That(t, task.Status(), test.ShouldEqual, tasks.Suspended)
	test.That(t, task.Resume(), test.ShouldBeNil)

	test.That(t, tasks.Dispatch(task, env), test.ShouldBeNil)
	test.That(t, task.Status(), test.ShouldEqual, tasks.Complete)

	t.Run("complete is terminal", func(t *testing.T) {
		test.That(t, tasks.Dispatch(task, env), test.ShouldBeNil)
		for _, err := range []error{task.Suspend(), task.Resume(), task.NotStarted(env), task.InProgress(env), task.Suspended(env)} {
			test.That(t, errors.Is(err, tasks.ErrInvalidTransition), test.ShouldBeTrue)
		}
		test.That(t, task.Status(), test.ShouldEqual, tasks.Complete)
	})
}

func TestWaitZeroTicks(t *testing.T) {
	task := tasks.NewWait(tasks.WaitConfig{}, logging.NewTestLogger(t))
	env := newEnv(0, 0)
	test.That(t, task.NotStarted(env), test.ShouldBeNil)
	test.That(t, task.InProgress(env), test.ShouldBeNil)
	test.That(t, task.Status(), test.ShouldEqual, tasks.Complete)
}

func TestStatusAndTypeNames(t *testing.T) {
	test.That(t, tasks.InProgress.String(), test.ShouldEqual, "INPROGRESS")
	test.That(t, tasks.Status(42).String(), test.ShouldEqual, "UNKNOWN")
	test.That(t, tasks.TypeControlWings.String(), test.ShouldEqual, "control_wings")

	typ, err := tasks.TypeFromString("navigate")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, typ, test.ShouldEqual, tasks.TypeNavigate)

	typ, err = tasks.TypeFromString("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, typ, test.ShouldEqual, tasks.TypeNone)

	_, err = tasks.TypeFromString("fly")
	test.That(t, err, test.ShouldNotBeNil)
}
