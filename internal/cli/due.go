package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"slacal/internal/calendar"
	"slacal/internal/report"
)

type DueOptions struct {
	GlobalOptions

	From      string
	Target    string
	Pauses    []string
	MaxProbes int
	Horizon   time.Duration
}

func DefaultDueOptions() *DueOptions {
	return &DueOptions{
		GlobalOptions: DefaultGlobalOptions(),
		MaxProbes:     calendar.DefaultMaxProbes,
		Horizon:       calendar.DefaultSearchHorizon,
	}
}

func NewCmdDue() *cobra.Command {
	o := DefaultDueOptions()
	cmd := &cobra.Command{
		Use:   "due --target DURATION [--from INSTANT]",
		Short: "Find the earliest instant at which a working-time target is reached",
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

func (o *DueOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVar(&o.From, "from", "", "Start instant (default now)")
	fs.StringVarP(&o.Target, "target", "t", "", "Working time to accumulate: seconds or a duration such as 8h30m (required)")
	fs.StringArrayVar(&o.Pauses, "pause", nil, "Non-counting range \"START,END\"; omit END to stop the clock at START. Repeatable")
	fs.IntVar(&o.MaxProbes, "max-probes", o.MaxProbes, "Forward probes before giving up")
	fs.DurationVar(&o.Horizon, "horizon", o.Horizon, "Furthest distance from --from to search")
}

func (o *DueOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Target == "" {
		return errors.New("--target is required")
	}
	if o.MaxProbes <= 0 {
		return errors.New("--max-probes must be positive")
	}
	if o.Horizon <= 0 {
		return errors.New("--horizon must be positive")
	}
	return nil
}

func (o *DueOptions) Run(ctx context.Context, args []string) error {
	cal, err := o.Load(calendar.Options{MaxProbes: o.MaxProbes, SearchHorizon: o.Horizon})
	if err != nil {
		return err
	}
	from, err := parseInstant(cal, o.From)
	if err != nil {
		return errors.Wrap(err, "--from")
	}
	target, err := parseTarget(o.Target)
	if err != nil {
		return err
	}
	pauses, err := parsePauses(cal, o.Pauses)
	if err != nil {
		return err
	}

	due, err := cal.EstimateDue(from, target, pauses)
	if err != nil {
		return err
	}

	out := o.Out()
	fmt.Fprintf(out, "From:   %s\n", from.Format(time.RFC3339))
	fmt.Fprintf(out, "Target: %s (%s)\n", report.Duration(target), report.Seconds(target))
	fmt.Fprintf(out, "Due:    %s (%s)\n", due.Format(time.RFC3339), due.Weekday())
	return nil
}
