package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookbind/internal/session"
)

func newOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <archive>",
		Short: "Unpack an archive into an editable workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(mgr *session.Manager) error {
				binding, err := mgr.Open(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Workspace: %s\n", binding.Workspace)
				fmt.Fprintf(out, "Target:    %s\n", binding.Target)
				return nil
			})
		},
	}
}
