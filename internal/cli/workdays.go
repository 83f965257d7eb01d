package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"slacal/internal/calendar"
	"slacal/internal/report"
)

type WorkdaysOptions struct {
	GlobalOptions

	At string
}

func DefaultWorkdaysOptions() *WorkdaysOptions {
	return &WorkdaysOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdWorkdays() *cobra.Command {
	o := DefaultWorkdaysOptions()
	cmd := &cobra.Command{
		Use:   "workdays",
		Short: "Show the calendar's work week and where an instant falls in it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *WorkdaysOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVar(&o.At, "at", "", "Instant to highlight (default now)")
}

func (o *WorkdaysOptions) Run(ctx context.Context, args []string) error {
	cal, err := o.Load(calendar.Options{})
	if err != nil {
		return err
	}
	if cal.IsContinuous() {
		_, err := fmt.Fprintf(o.Out(), "Calendar %s counts every second of every day.\n", cal.Config().Code)
		return err
	}
	at, err := parseInstant(cal, o.At)
	if err != nil {
		return err
	}
	working, match := cal.IsTimeToWork(at)
	return report.WorkWeek(o.Out(), cal.WorkWeek(), &match, working)
}
