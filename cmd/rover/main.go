// Package main runs a rover from a config file.
package main

import (
	"context"

	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/rover/comms"
	"go.viam.com/rover/comms/fake"
	"go.viam.com/rover/config"
	"go.viam.com/rover/driver"
	"go.viam.com/rover/logging"
	"go.viam.com/rover/navigation"
	"go.viam.com/rover/robot"
	"go.viam.com/rover/serial"
)

var logger = logging.NewLogger("rover")

func main() {
	utils.ContextualMainQuit(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	ConfigFile string `flag:"0,usage=rover config file"`
	Debug      bool   `flag:"debug,usage=enable debug logging"`
	Fake       bool   `flag:"fake,usage=drive a simulated robot instead of the serial link"`
	ListPorts  bool   `flag:"list-ports,usage=print the serial ports found and exit"`
	Trace      bool   `flag:"trace,usage=log every state change and status regardless of log level"`
}

func mainWithArgs(ctx context.Context, args []string, logger logging.Logger) (err error) {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.Debug {
		logger.SetLevel(logging.DEBUG)
	}

	if argsParsed.ListPorts {
		ports, err := serial.ListPorts()
		if err != nil {
			return err
		}
		logger.Infow("serial ports", "ports", ports)
		return nil
	}

	var opts []config.Option
	if argsParsed.Fake {
		opts = append(opts, config.WithFakeSerial())
	}
	cfg, err := config.Read(ctx, argsParsed.ConfigFile, logger, opts...)
	if err != nil {
		return err
	}
	if err := config.UpdateLogging(cfg, logger, argsParsed.Debug); err != nil {
		return err
	}

	link, poses, err := openLink(cfg, logger.Sublogger("comms"))
	if err != nil {
		return err
	}

	rover := robot.New(link, navigation.NewNavigator(cfg.Navigator), logger.Sublogger("robot"))
	defer func() {
		err = multierr.Combine(err, rover.Close(context.WithoutCancel(ctx)))
	}()
	if poses == nil {
		rover.SetCurrentXY(cfg.Start.X, cfg.Start.Y)
		rover.SetOrientation(cfg.Start.OrientationDeg)
	}

	built, err := cfg.BuildTasks(logger.Sublogger("tasks"))
	if err != nil {
		return err
	}
	for _, t := range built {
		if err := rover.AddTask(t); err != nil {
			return err
		}
	}
	logger.Infow("starting", "tasks", len(built), "tick_interval", cfg.TickInterval(), "fake", cfg.Serial.Fake)
	if argsParsed.Trace {
		ctx = logging.EnableDebugMode(ctx, "trace")
	}

	d := driver.New(rover, poses, cfg.TickInterval(), logger.Sublogger("driver"))
	return d.Run(ctx)
}

// openLink returns the comms link and, for the simulated robot, the pose source that goes with it.
func openLink(cfg *config.Config, logger logging.Logger) (comms.Comms, driver.PoseSource, error) {
	if cfg.Serial.Fake {
		link := fake.New(cfg.Start.X, cfg.Start.Y, cfg.Start.OrientationDeg)
		return link, link, nil
	}
	link, err := comms.NewSerial(cfg.Serial, logger)
	if err != nil {
		return nil, nil, err
	}
	return link, nil, nil
}
