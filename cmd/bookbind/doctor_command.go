package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookbind/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			fmt.Fprintln(cmd.OutOrStdout(), doctorTable(statuses))

			for _, status := range statuses {
				if !status.Available && !status.Optional {
					return fmt.Errorf("required tools are missing")
				}
			}
			return nil
		},
	}
}
