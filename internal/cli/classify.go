package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"slacal/internal/calendar"
)

type ClassifyOptions struct {
	GlobalOptions

	At string
}

func DefaultClassifyOptions() *ClassifyOptions {
	return &ClassifyOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdClassify() *cobra.Command {
	o := DefaultClassifyOptions()
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Tell whether an instant is a holiday, a working day and working time",
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

func (o *ClassifyOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVar(&o.At, "at", "", "Instant to classify: unix seconds, RFC 3339 or \"2006-01-02 15:04\" in the calendar timezone (default now)")
}

func (o *ClassifyOptions) Run(ctx context.Context, args []string) error {
	cal, err := o.Load(calendar.Options{})
	if err != nil {
		return err
	}
	at, err := parseInstant(cal, o.At)
	if err != nil {
		return err
	}

	out := o.Out()
	fmt.Fprintf(out, "Instant:      %s (%s)\n", at.Format(time.RFC3339), at.Weekday())
	fmt.Fprintf(out, "Calendar:     %s (%s)\n", cal.Config().Code, cal.Kind())

	holiday, h := cal.IsHoliday(at)
	if holiday {
		fmt.Fprintf(out, "Holiday:      yes, %s\n", h.Name)
	} else {
		fmt.Fprintln(out, "Holiday:      no")
	}

	workingDay, _ := cal.IsWorkingDay(at)
	fmt.Fprintf(out, "Working day:  %s\n", yesNo(workingDay))

	working, match := cal.IsTimeToWork(at)
	switch {
	case working && match.WorkDay != nil:
		fmt.Fprintf(out, "Working time: yes, %s\n", match.WorkDay.TimeOfDay)
	case working:
		fmt.Fprintln(out, "Working time: yes")
	case match.Break != nil:
		fmt.Fprintf(out, "Working time: no, break %s - %s\n", match.Break.Start.Format("15:04"), match.Break.End.Format("15:04"))
	default:
		fmt.Fprintln(out, "Working time: no")
	}

	rest, _ := cal.IsTimeToTakeARest(at)
	fmt.Fprintf(out, "Rest time:    %s\n", yesNo(rest))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
