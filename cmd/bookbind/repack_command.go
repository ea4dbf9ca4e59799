package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookbind/internal/session"
)

func newRepackCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var output string

	cmd := &cobra.Command{
		Use:   "repack [path]",
		Short: "Package a workspace back into its bound archive",
		Long:  "Repack locates the session binding for the given path (the current directory when omitted) and rebuilds the archive. An existing archive is only replaced after confirmation.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return ctx.withManager(func(mgr *session.Manager) error {
				prompter := &flagPrompter{
					force:    force,
					output:   output,
					fallback: newInteractivePrompter(cmd.InOrStdin(), cmd.ErrOrStderr()),
				}
				dest, err := mgr.Repack(cmd.Context(), path, prompter)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Packed %s\n", dest)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing archive without prompting")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination to use when the bound archive already exists")
	return cmd
}
