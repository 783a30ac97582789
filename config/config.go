// Package config defines the rover's on-disk configuration.
package config

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/rover/comms"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/navigation"
	"go.viam.com/rover/tasks"
)

// DefaultTickInterval is how often the driver ticks the robot when the config does not say.
const DefaultTickInterval = 100 * time.Millisecond

// A Config describes the configuration of a rover.
type Config struct {
	ConfigFilePath string `json:"-"`

	Serial    comms.Config      `json:"serial"`
	Navigator navigation.Config `json:"navigator"`
	// Start is where a fake robot begins. It is ignored for real hardware.
	Start          Pose           `json:"start"`
	TickIntervalMs int            `json:"tick_interval_ms,omitempty"`
	Tasks          []tasks.Config `json:"tasks"`

	LogLevel  *logging.Level                `json:"log_level,omitempty"`
	LogConfig []logging.LoggerPatternConfig `json:"log,omitempty"`
}

// Pose is a position and heading in map units and degrees.
type Pose struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	OrientationDeg float64 `json:"orientation_deg"`
}

// Ensure validates the config, reporting every invalid part.
func (c *Config) Ensure() error {
	var err error
	err = multierr.Append(err, c.Serial.Validate("serial"))
	err = multierr.Append(err, c.Navigator.Validate("navigator"))
	if c.TickIntervalMs < 0 {
		err = multierr.Append(err, utils.NewConfigValidationError("tick_interval_ms", errors.New("must not be negative")))
	}
	for idx := range c.Tasks {
		err = multierr.Append(err, c.Tasks[idx].Validate(fmt.Sprintf("tasks.%d", idx)))
	}
	for idx, lpc := range c.LogConfig {
		if lpc.Pattern == "" {
			err = multierr.Append(err, utils.NewConfigValidationFieldRequiredError(fmt.Sprintf("log.%d", idx), "pattern"))
		}
		if _, levelErr := logging.LevelFromString(lpc.Level); levelErr != nil {
			err = multierr.Append(err, utils.NewConfigValidationError(fmt.Sprintf("log.%d", idx), levelErr))
		}
	}
	return err
}

// TickInterval returns the configured tick interval or DefaultTickInterval.
func (c *Config) TickInterval() time.Duration {
	if c.TickIntervalMs == 0 {
		return DefaultTickInterval
	}
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// BuildTasks constructs the configured tasks in order.
func (c *Config) BuildTasks(logger logging.Logger) ([]tasks.Task, error) {
	built := make([]tasks.Task, 0, len(c.Tasks))
	for idx, conf := range c.Tasks {
		t, err := tasks.FromConfig(conf, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "tasks.%d", idx)
		}
		built = append(built, t)
	}
	return built, nil
}
