package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/rover/config"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/tasks"
)

const roverConfig = `{
	"serial": {"path": "${ROVER_SERIAL}", "baud_rate": 115200},
	"navigator": {"near_tolerance": 0.5},
	"start": {"x": 1, "y": 2, "orientation_deg": 90},
	"tick_interval_ms": 50,
	"log_level": "warn",
	"log": [{"pattern": "rover.tasks", "level": "debug"}],
	"tasks": [
		{"type": "navigate", "attributes": {"x": 5, "y": 5, "orientation_deg": 45}},
		{"type": "control_wings", "next": "navigate", "attributes": {"left": "open", "right": "closed", "x": 5, "y": 5}},
		{"type": "wait", "priority": 2, "attributes": {"ticks": 3}}
	]
}`

func TestRead(t *testing.T) {
	logger := logging.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "rover.json")
	test.That(t, os.WriteFile(path, []byte(roverConfig), 0o600), test.ShouldBeNil)
	t.Setenv("ROVER_SERIAL", "/dev/ttyACM0")

	cfg, err := config.Read(context.Background(), path, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, path)
	test.That(t, cfg.Serial.Path, test.ShouldEqual, "/dev/ttyACM0")
	test.That(t, cfg.Serial.Options().BaudRate, test.ShouldEqual, 115200)
	test.That(t, cfg.Navigator.Tolerances().Near, test.ShouldEqual, 0.5)
	test.That(t, cfg.Navigator.Tolerances().Path, test.ShouldEqual, 0.5)
	test.That(t, cfg.Start, test.ShouldResemble, config.Pose{X: 1, Y: 2, OrientationDeg: 90})
	test.That(t, cfg.TickInterval(), test.ShouldEqual, 50*time.Millisecond)
	test.That(t, *cfg.LogLevel, test.ShouldEqual, logging.WARN)
	test.That(t, cfg.LogConfig, test.ShouldHaveLength, 1)

	built, err := cfg.BuildTasks(logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, built, test.ShouldHaveLength, 3)
	test.That(t, built[0].Type(), test.ShouldEqual, tasks.TypeNavigate)
	test.That(t, built[1].Type(), test.ShouldEqual, tasks.TypeControlWings)
	test.That(t, built[2].Priority(), test.ShouldEqual, 2)
}

func TestReadMissingFile(t *testing.T) {
	_, err := config.Read(context.Background(), filepath.Join(t.TempDir(), "nope.json"), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFromReaderValidate(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewTestLogger(t)

	_, err := config.FromReader(ctx, "somepath", strings.NewReader(""), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "EOF")

	_, err = config.FromReader(ctx, "somepath", strings.NewReader(`{"serial": 1}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unmarshal")

	_, err = config.FromReader(ctx, "somepath", strings.NewReader(`{}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "path")

	cfg, err := config.FromReader(ctx, "somepath", strings.NewReader(`{"serial": {"fake": true}}`), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.TickInterval(), test.ShouldEqual, config.DefaultTickInterval)
	test.That(t, cfg.LogLevel, test.ShouldBeNil)
	built, err := cfg.BuildTasks(logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, built, test.ShouldBeEmpty)

	_, err = config.FromReader(ctx, "somepath", strings.NewReader(`{"serial": {"fake": true}, "log_level": "loud"}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "loud")

	// every invalid section is reported.
	_, err = config.FromReader(ctx, "somepath", strings.NewReader(`{
		"serial": {"fake": true},
		"tick_interval_ms": -1,
		"navigator": {"angular_tolerance_deg": 200},
		"tasks": [{"type": "wait"}, {"type": "teleport"}],
		"log": [{"pattern": "tasks", "level": "chatty"}]
	}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	for _, part := range []string{"tick_interval_ms", "navigator", "tasks.1", "teleport", "log.0"} {
		test.That(t, err.Error(), test.ShouldContainSubstring, part)
	}
}

func TestFromReaderWithFakeSerial(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewTestLogger(t)

	cfg, err := config.FromReader(ctx, "somepath", strings.NewReader(`{}`), logger, config.WithFakeSerial())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Serial.Fake, test.ShouldBeTrue)

	// the override does not hide other validation errors.
	_, err = config.FromReader(ctx, "somepath", strings.NewReader(`{"tick_interval_ms": -1}`), logger, config.WithFakeSerial())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "tick_interval_ms")
}

func TestUpdateLogging(t *testing.T) {
	logger := logging.NewTestLogger(t)
	warn := logging.WARN
	cfg := &config.Config{LogLevel: &warn}

	test.That(t, config.UpdateLogging(cfg, logger, false), test.ShouldBeNil)
	test.That(t, logger.GetLevel(), test.ShouldEqual, logging.WARN)

	test.That(t, config.UpdateLogging(cfg, logger, true), test.ShouldBeNil)
	test.That(t, logger.GetLevel(), test.ShouldEqual, logging.DEBUG)

	cfg.LogConfig = []logging.LoggerPatternConfig{{Pattern: "rover", Level: "nope"}}
	test.That(t, config.UpdateLogging(cfg, logger, false), test.ShouldNotBeNil)
}
