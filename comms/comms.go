// Package comms carries robot commands to the motor controller.
package comms

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.viam.com/utils"

	"go.viam.com/rover/command"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/serial"
)

// Comms sends single command codes to the robot hardware.
type Comms interface {
	// SendCommand writes one command code, e.g. "F" or "1".
	SendCommand(ctx context.Context, code string) error
	Close(ctx context.Context) error
}

var validBaudRates = []int{115200, 57600, 38400, 19200, 9600, 2400}

// Config describes the serial link.
type Config struct {
	// path to /dev/ttyXXXX file
	Path     string `json:"path"`
	BaudRate int    `json:"baud_rate,omitempty"`
	DataBits int    `json:"data_bits,omitempty"`

	// Fake replaces the link with an in memory robot.
	Fake bool `json:"fake,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.Fake {
		return nil
	}
	if cfg.Path == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "path")
	}
	if cfg.BaudRate != 0 && !lo.Contains(validBaudRates, cfg.BaudRate) {
		return utils.NewConfigValidationError(path,
			errors.Errorf("invalid baud_rate %d, acceptable values are %v", cfg.BaudRate, validBaudRates))
	}
	if cfg.DataBits != 0 && (cfg.DataBits < 5 || cfg.DataBits > 8) {
		return utils.NewConfigValidationError(path, errors.Errorf("invalid data_bits %d, acceptable values are 5 thru 8", cfg.DataBits))
	}
	return nil
}

// Options returns the serial options for cfg with defaults filled in.
func (cfg *Config) Options() serial.Options {
	options := serial.DefaultOptions
	if cfg.BaudRate != 0 {
		options.BaudRate = cfg.BaudRate
	}
	if cfg.DataBits != 0 {
		options.DataBits = cfg.DataBits
	}
	return options
}

// Serial writes command codes to a serial port.
type Serial struct {
	mu     sync.Mutex
	port   io.ReadWriteCloser
	path   string
	logger logging.Logger
	closed bool
}

// NewSerial opens the port cfg describes.
func NewSerial(cfg Config, logger logging.Logger) (*Serial, error) {
	port, err := serial.Open(cfg.Path, cfg.Options())
	if err != nil {
		return nil, err
	}
	logger.Infow("serial link open", "path", cfg.Path, "baud_rate", cfg.Options().BaudRate)
	return &Serial{port: port, path: cfg.Path, logger: logger}, nil
}

// SendCommand writes code to the port as is.
func (s *Serial) SendCommand(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := command.FromCode(code); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.Errorf("serial link %s is closed", s.path)
	}
	if _, err := s.port.Write([]byte(code)); err != nil {
		return errors.Wrapf(err, "writing %q to %s", code, s.path)
	}
	s.logger.CDebugw(ctx, "sent command", "code", code)
	return nil
}

// Close closes the port. Closing twice is a no-op.
func (s *Serial) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.CDebug(ctx, "closing serial link ", s.path)
	return s.port.Close()
}
