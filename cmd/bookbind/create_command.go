package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookbind/internal/session"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create <target>",
		Short: "Scaffold a new archive workspace",
		Long:  "Create allocates a workspace, scaffolds the bootstrap document tree for the target archive, and binds the workspace to it. The archive itself is only written on repack.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(mgr *session.Manager) error {
				binding, err := mgr.Create(cmd.Context(), args[0])
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
