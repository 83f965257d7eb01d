package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"slacal/internal/calendar"
	"slacal/internal/config"
	appLog "slacal/internal/log"
)

type GlobalOptions struct {
	ConfigPath string
	Calendar   string
	LogLevel   string

	out io.Writer
}

// DefaultGlobalOptions seeds the options from SLACAL_* environment variables.
func DefaultGlobalOptions() GlobalOptions {
	o := GlobalOptions{ConfigPath: "slacal.yaml"}
	env, err := config.LoadEnv()
	if err != nil {
		appLog.Error("ignoring environment", err)
		return o
	}
	o.ConfigPath = env.ConfigPath
	o.Calendar = env.Calendar
	o.LogLevel = env.LogLevel
	return o
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ConfigPath, "config", "c", o.ConfigPath, "Path to the calendars config file (.yaml or .toml)")
	fs.StringVar(&o.Calendar, "calendar", o.Calendar, "Calendar name (defaults to the config's default_calendar)")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level: debug, info, error (defaults to the config's log_level)")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.ConfigPath == "" {
		return errors.New("--config must not be empty")
	}
	return nil
}

func (o *GlobalOptions) Out() io.Writer {
	if o.out == nil {
		return io.Discard
	}
	return o.out
}

// Load reads the config file and builds the selected calendar.
func (o *GlobalOptions) Load(opts calendar.Options) (*calendar.Calendar, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := o.LogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	appLog.SetLevel(appLog.ParseLevel(level))

	calCfg, err := cfg.Calendar(o.Calendar)
	if err != nil {
		return nil, err
	}
	cal, err := calendar.New(calCfg, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "calendar %q", calCfg.Code)
	}
	appLog.Debug("calendar loaded", "code", calCfg.Code, "kind", cal.Kind(), "timezone", cal.Location().String())
	return cal, nil
}
