package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bookbind/internal/session"
	"bookbind/internal/sessions"
	"bookbind/internal/workspace"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List open workspace sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(mgr *session.Manager) error {
				listed, err := mgr.Store().List(cmd.Context())
				if err != nil {
					return err
				}
				return renderSessions(cmd, ctx.config.Sessions.ListStyle, listed)
			})
		},
	}

	cmd.AddCommand(newSessionsPruneCommand(ctx))
	return cmd
}

func newSessionsPruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove stale workspaces and dangling session records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withManager(func(mgr *session.Manager) error {
				out := cmd.OutOrStdout()
				cfg := ctx.config

				maxAge := time.Duration(cfg.Sessions.StaleAfterDays) * 24 * time.Hour
				result := workspace.CleanStale(cfg.Paths.ScratchDir, maxAge, ctx.logger)
				for _, removed := range result.Removed {
					fmt.Fprintf(out, "Removed %s\n", removed)
				}
				for _, failure := range result.Errors {
					fmt.Fprintf(out, "Failed to remove %s: %v\n", failure.Path, failure.Error)
				}

				pruned, err := mgr.Store().PruneMissing(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Pruned %d session record(s)\n", len(pruned))
				return nil
			})
		},
	}
}

func renderSessions(cmd *cobra.Command, style string, listed []sessions.Session) error {
	out := cmd.OutOrStdout()
	if len(listed) == 0 {
		fmt.Fprintln(out, "No open sessions")
		return nil
	}

	if style == "plain" {
		for _, s := range listed {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
				s.Workspace, s.Target, s.Origin, s.CreatedAt.Local().Format(time.RFC3339))
		}
		return nil
	}

	fmt.Fprintln(out, sessionsTable(listed))
	return nil
}
