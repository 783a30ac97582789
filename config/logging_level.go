package config

import (
	"go.viam.com/rover/logging"
)

// UpdateLogging applies the config's log level and pattern levels. The command line debug flag
// wins over a quieter configured level.
func UpdateLogging(cfg *Config, logger logging.Logger, cmdLineDebugFlag bool) error {
	if len(cfg.LogConfig) > 0 {
		if err := logging.UpdateLoggerConfig(cfg.LogConfig, logger); err != nil {
			return err
		}
	}

	level := logging.INFO
	if cfg.LogLevel != nil {
		level = *cfg.LogLevel
	}
	if cmdLineDebugFlag {
		level = logging.DEBUG
	}
	logger.SetLevel(level)
	logging.GlobalLogLevel.SetLevel(level.AsZap())
	logger.Infow("log level initialized", "level", level)
	return nil
}
