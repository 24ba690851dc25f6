package main

import (
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/service"

	"github.com/spf13/cobra"
)

func (c *cli) newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Dump the built-in rule tables",
		Long:  "Prints room indicator tiers, furniture lists, clutter rules, buckets and styling templates.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.format()
			if err != nil {
				return err
			}
			// rule tables have no text rendering
			if format == "text" {
				format = "yaml"
			}
			return writeStructured(cmd.OutOrStdout(), format, service.DefaultRuleSet())
		},
	}
}
