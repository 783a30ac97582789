package tasks

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/rover/command"
	"go.viam.com/rover/logging"
)

// WaitConfig describes a pause.
type WaitConfig struct {
	Ticks int `json:"ticks"`
}

// Validate ensures all parts of the config are valid.
func (cfg *WaitConfig) Validate() error {
	if cfg.Ticks < 0 {
		return errors.Errorf("ticks must not be negative, got %d", cfg.Ticks)
	}
	return nil
}

// Wait holds the robot stopped for a number of ticks.
type Wait struct {
	lifecycle

	ticks   int
	elapsed int
}

// NewWait returns a Wait task for cfg.
func NewWait(cfg WaitConfig, logger logging.Logger) *Wait {
	return &Wait{
		lifecycle: newLifecycle(TypeWait, WaitPriority, logger),
		ticks:     cfg.Ticks,
	}
}

func (t *Wait) String() string {
	return fmt.Sprintf("wait %d ticks", t.ticks)
}

// NotStarted has nothing to set up.
func (t *Wait) NotStarted(env *Env) error {
	return t.start()
}

// InProgress keeps the robot stopped and completes on the last tick.
func (t *Wait) InProgress(env *Env) error {
	if err := t.expect("inProgress", InProgress); err != nil {
		return err
	}
	env.NextState = command.Stop
	t.elapsed++
	if t.elapsed >= t.ticks {
		return t.transition(Complete)
	}
	return nil
}

// Suspended stops the robot; ticks already waited are kept.
func (t *Wait) Suspended(env *Env) error {
	return t.suspend(env)
}

// Complete resets the tick count.
func (t *Wait) Complete(env *Env) error {
	teardown, err := t.finish(env)
	if teardown {
		t.elapsed = 0
	}
	return err
}
