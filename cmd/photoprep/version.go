package main

import (
	"fmt"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/service"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "photoprep %s (commit %s, built %s, rules %s)\n",
				Version, GitCommit, BuildTime, service.RuleSetVersion)
		},
	}
}
