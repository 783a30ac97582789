package robot_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/rover/command"
	"go.viam.com/rover/comms/fake"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/navigation"
	"go.viam.com/rover/robot"
	"go.viam.com/rover/tasks"
)

func newRobot(t *testing.T) (*robot.Robot, *fake.Comms) {
	t.Helper()
	link := fake.New(0, 0, 0)
	return robot.New(link, navigation.NewNavigator(navigation.Config{}), logging.NewTestLogger(t)), link
}

func TestNewRobotIsStopped(t *testing.T) {
	r, link := newRobot(t)
	test.That(t, r.State(), test.ShouldEqual, command.Stop)
	test.That(t, r.HasTasks(), test.ShouldBeFalse)
	test.That(t, r.CurrentTask(), test.ShouldBeNil)

	// an empty queue keeps the robot stopped without resending.
	test.That(t, r.ExecuteCurrentTask(context.Background()), test.ShouldBeNil)
	test.That(t, r.State(), test.ShouldEqual, command.Stop)
	test.That(t, link.Commands(), test.ShouldBeEmpty)

	test.That(t, r.Run(context.Background()), test.ShouldBeNil)
	test.That(t, link.Commands(), test.ShouldResemble, []string{"S"})
}

func TestExecuteSendsOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	r, link := newRobot(t)
	test.That(t, r.AddTask(tasks.NewNavigate(tasks.NavigateConfig{X: 10}, logging.NewTestLogger(t))), test.ShouldBeNil)

	// first tick only aims the map.
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	test.That(t, link.Commands(), test.ShouldBeEmpty)

	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	test.That(t, r.State(), test.ShouldEqual, command.MoveForward)
	test.That(t, link.Commands(), test.ShouldResemble, []string{"F"})

	r.SetCurrentXY(4, 0)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	test.That(t, link.Commands(), test.ShouldResemble, []string{"F"})

	r.SetCurrentXY(9.5, 0)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	test.That(t, r.State(), test.ShouldEqual, command.Stop)
	test.That(t, link.Commands(), test.ShouldResemble, []string{"F", "S"})
	test.That(t, r.HasTasks(), test.ShouldBeFalse)
}

func TestExecuteWingTask(t *testing.T) {
	ctx := context.Background()
	r, link := newRobot(t)
	r.SetCurrentXY(5, 5)
	wings := tasks.NewControlWings(tasks.WingOpen, tasks.WingOpen, navigation.NewXYPoint(5, 5), 0.1, logging.NewTestLogger(t))
	test.That(t, r.AddTask(wings), test.ShouldBeNil)

	for r.HasTasks() {
		test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	}
	test.That(t, link.Commands(), test.ShouldResemble, []string{"2", "1"})
	left, right := link.Wings()
	test.That(t, left, test.ShouldBeTrue)
	test.That(t, right, test.ShouldBeTrue)
	test.That(t, r.State(), test.ShouldEqual, command.OpeningLeftWing)

	// the empty queue falls back to stop.
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	test.That(t, link.Commands(), test.ShouldResemble, []string{"2", "1", "S"})
}

func TestExecuteReportsCommsError(t *testing.T) {
	ctx := context.Background()
	r, link := newRobot(t)
	test.That(t, r.AddTask(tasks.NewNavigate(tasks.NavigateConfig{X: 10}, logging.NewTestLogger(t))), test.ShouldBeNil)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)

	link.SendErr = errors.New("cable cut")
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeError, link.SendErr)
	test.That(t, r.State(), test.ShouldEqual, command.MoveForward)
}

func TestSuspendCurrentTask(t *testing.T) {
	ctx := context.Background()
	r, link := newRobot(t)
	test.That(t, r.SuspendCurrentTask(), test.ShouldNotBeNil)
	test.That(t, r.AddTask(tasks.NewNavigate(tasks.NavigateConfig{X: 10}, logging.NewTestLogger(t))), test.ShouldBeNil)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)

	test.That(t, r.SuspendCurrentTask(), test.ShouldBeNil)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	test.That(t, r.CurrentTask().Status(), test.ShouldEqual, tasks.Suspended)
	test.That(t, r.ResumeCurrentTask(), test.ShouldBeNil)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	test.That(t, link.Commands(), test.ShouldResemble, []string{"F", "S", "F"})
}

func TestPoseAccessors(t *testing.T) {
	r, _ := newRobot(t)
	r.SetCurrentXY(1.5, -2)
	r.SetOrientation(30)
	test.That(t, r.X(), test.ShouldEqual, 1.5)
	test.That(t, r.Y(), test.ShouldEqual, -2.0)
	test.That(t, r.Orientation(), test.ShouldEqual, 30.0)

	_, ok := r.AngleToDestination()
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, r.PoseToWaypoint(), test.ShouldEqual, navigation.None)
}

func TestWriteStatus(t *testing.T) {
	ctx := context.Background()
	r, _ := newRobot(t)

	var buf bytes.Buffer
	test.That(t, r.WriteStatus(&buf), test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldEqual, "STOP\nnone\n0\nNONE\n")

	test.That(t, r.AddTask(tasks.NewNavigate(tasks.NavigateConfig{X: 3, Y: 4}, logging.NewTestLogger(t))), test.ShouldBeNil)
	r.SetOrientation(12.5)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)

	angle, ok := r.AngleToDestination()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, angle, test.ShouldAlmostEqual, 53.13010235415598)

	buf.Reset()
	test.That(t, r.WriteStatus(&buf), test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldEqual, "STOP\n(3, 4)\n12.5\nOFF_PATH\n")

	status := r.Status()
	test.That(t, status.HasDestination, test.ShouldBeTrue)
	test.That(t, status.Pose, test.ShouldEqual, navigation.OffPath)
}

func TestLogStatus(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	r := robot.New(fake.New(0, 0, 0), navigation.NewNavigator(navigation.Config{}), logger)
	r.LogStatus(context.Background())

	entries := logs.FilterMessage("status").All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	fields := entries[0].ContextMap()
	test.That(t, fields["destination"], test.ShouldEqual, "none")
	test.That(t, fields["orientation"], test.ShouldEqual, 0.0)

	logger.SetLevel(logging.INFO)
	r.LogStatus(context.Background())
	test.That(t, logs.FilterMessage("status").Len(), test.ShouldEqual, 1)

	r.LogStatus(logging.EnableDebugMode(context.Background(), "trace"))
	test.That(t, logs.FilterMessage("status").Len(), test.ShouldEqual, 2)
}

func TestStateChangeLoggedInDebugMode(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	logger.SetLevel(logging.INFO)
	link := fake.New(0, 0, 0)
	r := robot.New(link, navigation.NewNavigator(navigation.Config{}), logger)
	test.That(t, r.AddTask(tasks.NewNavigate(tasks.NavigateConfig{X: 10}, logging.NewTestLogger(t))), test.ShouldBeNil)

	ctx := logging.EnableDebugMode(context.Background(), "")
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	entries := logs.FilterMessage("state change").All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].ContextMap()["to"], test.ShouldNotBeNil)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	r, link := newRobot(t)
	test.That(t, r.AddTask(tasks.NewNavigate(tasks.NavigateConfig{X: 10}, logging.NewTestLogger(t))), test.ShouldBeNil)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)

	test.That(t, r.Close(ctx), test.ShouldBeNil)
	test.That(t, r.State(), test.ShouldEqual, command.Stop)
	test.That(t, link.Commands(), test.ShouldResemble, []string{"F", "S"})
	test.That(t, link.CloseCount(), test.ShouldEqual, 1)
}

func TestStop(t *testing.T) {
	ctx := context.Background()
	r, link := newRobot(t)
	r.SetCurrentXY(1, 1)
	wings := tasks.NewControlWings(tasks.WingClosed, tasks.WingClosed, navigation.NewXYPoint(1, 1), 0.1, logging.NewTestLogger(t))
	test.That(t, r.AddTask(wings), test.ShouldBeNil)
	for r.HasTasks() {
		test.That(t, r.ExecuteCurrentTask(ctx), test.ShouldBeNil)
	}
	test.That(t, r.State(), test.ShouldEqual, command.ClosingLeftWing)

	test.That(t, r.Stop(ctx), test.ShouldBeNil)
	test.That(t, r.State(), test.ShouldEqual, command.Stop)
	test.That(t, link.Commands(), test.ShouldResemble, []string{"4", "3", "S"})
}
