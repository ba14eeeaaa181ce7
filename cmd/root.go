package main

import (
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/klu2300033421/StopWatch/internal/config"
	"github.com/klu2300033421/StopWatch/internal/sound"
	"github.com/klu2300033421/StopWatch/internal/stopwatch"
	"github.com/klu2300033421/StopWatch/internal/ui"
)

const appID = "io.github.klu2300033421.stopwatch"

type options struct {
	configPath string
	tick       time.Duration
	logLevel   string
	mute       bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "stopwatch",
		Short:         "A desktop stopwatch with lap splits",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(manager, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default is $HOME/.stopwatch/config.yaml)")
	cmd.Flags().DurationVar(&opts.tick, "tick", 0, "Display refresh interval, overrides display.tick_interval")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.Flags().BoolVar(&opts.mute, "mute", false, "Disable sound cues")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// loadConfig reads the config file and applies flag overrides on top. The
// overrides are not written back to the file.
func loadConfig(cmd *cobra.Command, opts options) (*config.Manager, *config.Config, error) {
	manager, err := config.NewManager(opts.configPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}

	cfg := *manager.GetConfig()
	if cmd.Flags().Changed("tick") {
		cfg.Display.TickInterval = opts.tick
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.mute {
		cfg.Sound.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return manager, &cfg, nil
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "stopwatch",
		Level:           lvl,
	}), nil
}

func run(manager *config.Manager, cfg *config.Config) error {
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	log.SetDefault(logger)

	player := sound.New(cfg.Sound, logger)
	sw := stopwatch.New(nil)

	a := app.NewWithID(appID)
	ui.NewMainWindow(a, manager, cfg, sw, player, logger).Show()
	return nil
}
