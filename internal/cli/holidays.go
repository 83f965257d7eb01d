package cli

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"slacal/internal/calendar"
	"slacal/internal/ics"
	appLog "slacal/internal/log"
	"slacal/internal/report"
)

type HolidaysOptions struct {
	GlobalOptions

	Year int
	ICS  string
}

func DefaultHolidaysOptions() *HolidaysOptions {
	return &HolidaysOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdHolidays() *cobra.Command {
	o := DefaultHolidaysOptions()
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the calendar's holidays for a year, or export them as iCalendar",
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

func (o *HolidaysOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.IntVarP(&o.Year, "year", "y", 0, "Year to list (default the current year in the calendar timezone)")
	fs.StringVar(&o.ICS, "ics", "", "Write the declared holidays to this .ics file instead of listing them (\"-\" for stdout)")
}

func (o *HolidaysOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Year < 0 {
		return errors.Errorf("invalid --year %d", o.Year)
	}
	return nil
}

func (o *HolidaysOptions) Run(ctx context.Context, args []string) error {
	cal, err := o.Load(calendar.Options{})
	if err != nil {
		return err
	}
	year := o.Year
	if year == 0 {
		year = cal.Now().Year()
	}
	holidays := cal.Holidays(year)

	switch o.ICS {
	case "":
		return report.Holidays(o.Out(), holidays)
	case "-":
		return ics.WriteHolidays(o.Out(), cal.Config().Code, holidays)
	}

	f, err := os.Create(o.ICS)
	if err != nil {
		return errors.Wrap(err, "create ics file")
	}
	if err := ics.WriteHolidays(f, cal.Config().Code, holidays); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close ics file")
	}
	appLog.Info("holidays exported", "path", o.ICS, "count", len(holidays))
	return nil
}
