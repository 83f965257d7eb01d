package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"slacal/internal/calendar"
	"slacal/internal/report"
)

type ElapsedOptions struct {
	GlobalOptions

	From   string
	To     string
	Pauses []string
}

func DefaultElapsedOptions() *ElapsedOptions {
	return &ElapsedOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdElapsed() *cobra.Command {
	o := DefaultElapsedOptions()
	cmd := &cobra.Command{
		Use:   "elapsed --from INSTANT [--to INSTANT]",
		Short: "Count working seconds between two instants",
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

func (o *ElapsedOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVar(&o.From, "from", "", "Start instant (required)")
	fs.StringVar(&o.To, "to", "", "End instant (default now)")
	fs.StringArrayVar(&o.Pauses, "pause", nil, "Non-counting range \"START,END\"; omit END to stop the clock at START. Repeatable")
}

func (o *ElapsedOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.From == "" {
		return errors.New("--from is required")
	}
	return nil
}

func (o *ElapsedOptions) Run(ctx context.Context, args []string) error {
	cal, err := o.Load(calendar.Options{})
	if err != nil {
		return err
	}
	from, err := parseInstant(cal, o.From)
	if err != nil {
		return errors.Wrap(err, "--from")
	}
	to, err := parseInstant(cal, o.To)
	if err != nil {
		return errors.Wrap(err, "--to")
	}
	pauses, err := parsePauses(cal, o.Pauses)
	if err != nil {
		return err
	}

	res, err := cal.ElapsedSeconds(from, to, pauses)
	if err != nil {
		return err
	}
	return report.Elapsed(o.Out(), from, to, res)
}
