package cli

import (
	"github.com/spf13/cobra"
)

func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slacal [command] [flags]",
		Short: "slacal counts working time against business calendars.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(NewCmdClassify())
	cmd.AddCommand(NewCmdElapsed())
	cmd.AddCommand(NewCmdDue())
	cmd.AddCommand(NewCmdHolidays())
	cmd.AddCommand(NewCmdWorkdays())
	cmd.AddCommand(NewCmdVersion())
	return cmd
}
