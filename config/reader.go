package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/rover/logging"
)

// An Option overrides part of a decoded config before it is validated.
type Option func(cfg *Config)

// WithFakeSerial drives the simulated robot regardless of the serial block in the file.
func WithFakeSerial() Option {
	return func(cfg *Config) {
		cfg.Serial.Fake = true
	}
}

// Read reads a config from the given file. Environment variables referenced as $VAR or ${VAR}
// are substituted before the file is parsed.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
	opts ...Option,
) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger, opts...)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(
	ctx context.Context,
	originalPath string,
	r io.Reader,
	logger logging.Logger,
	opts ...Option,
) (*Config, error) {
	cfg := Config{
		ConfigFilePath: originalPath,
	}
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Ensure(); err != nil {
		return nil, errors.Wrapf(err, "failed to process Config")
	}
	logger.Debugw("config read", "path", originalPath, "tasks", len(cfg.Tasks))
	return &cfg, nil
}
