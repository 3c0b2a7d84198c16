package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent search sessions",
	Long:  `List, inspect, and remove search sessions kept by the configured session store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		sessions, closeStore, err := app.OpenSessions(nil, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closeStore()

		ids, err := sessions.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing sessions: %w", err)
		}

		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Sessions:")
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), "- "+id)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Long:  `Replays the session and prints the record together with its current snapshot.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		sessions, closeStore, err := app.OpenSessions(nil, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closeStore()

		sessionID := args[0]
		sess, err := sessions.Load(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("error loading session '%s': %w", sessionID, err)
		}
		snap, err := sessions.Snapshot(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("error replaying session '%s': %w", sessionID, err)
		}

		// Pretty print JSON
		data, err := json.MarshalIndent(struct {
			Session  *domain.Session `json:"session"`
			Snapshot domain.Snapshot `json:"snapshot"`
		}{sess, snap}, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling session: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args: func(cmd *cobra.Command, args []string) error {
		if all, _ := cmd.Flags().GetBool("all"); all {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		sessions, closeStore, err := app.OpenSessions(nil, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		defer closeStore()

		if all, _ := cmd.Flags().GetBool("all"); all {
			if args, err = sessions.List(cmd.Context()); err != nil {
				return fmt.Errorf("error listing sessions: %w", err)
			}
		}

		failed := 0
		for _, sessionID := range args {
			if err := sessions.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Error removing '%s': %v\n", sessionID, err)
				failed++
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", sessionID)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d sessions could not be removed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
	sessionRmCmd.Flags().Bool("all", false, "Remove every session")
}
