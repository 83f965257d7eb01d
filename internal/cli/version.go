package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X slacal/internal/cli.Version=...".
var Version = "dev"

type VersionOptions struct {
	GlobalOptions
}

func NewCmdVersion() *cobra.Command {
	o := &VersionOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print slacal version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	_, err := fmt.Fprintf(o.Out(), "slacal %s (%s)\n", Version, runtime.Version())
	return err
}
