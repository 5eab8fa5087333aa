package cli

import (
	"github.com/spf13/cobra"

	"github.com/nikpau/sr-gen/pkg/config"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and check parameter files",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configCheckCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write an example parameter file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "river.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteExample(path); err != nil {
				return err
			}
			printSuccess("wrote example parameter file")
			printFile(path)
			return nil
		},
	}
}

// configCheckCommand creates the "config check" subcommand.
func (c *CLI) configCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Validate a parameter file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Load(args[0])
			if err != nil {
				return err
			}
			printSuccess("parameter file is valid")
			printDetail("segments: %d, gp: %d, exporter: %s", p.NSegments, p.GP, p.Exporter)
			if p.Seeded() {
				printDetail("seed: %d (reproducible)", p.Seed)
			} else {
				printDetail("unseeded: every run draws a fresh river")
			}
			return nil
		},
	}
}
