package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/chatvault/internal/app"
)

func newCleanupCmd() *cobra.Command {
	var (
		userID string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired chats now",
		Long: `Deletes chats older than the owner's retention window.
With --user the cleanup runs for one user even if automatic cleanup is off.
With --all it runs a scheduled pass over every user with automatic cleanup on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (userID == "") == !all {
				return errors.New("exactly one of --user or --all is required")
			}

			var id uuid.UUID
			if userID != "" {
				var err error
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			c, err := app.NewContainer(ctx, cfg, slog.Default())
			if err != nil {
				return err
			}
			defer c.Close()

			out := cmd.OutOrStdout()
			if all {
				res, err := c.Retention.RunScheduledCleanup(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "users: %d processed, %d failed\nchats deleted: %d\nmessages deleted: %d\n",
					res.ProcessedUsers, res.FailedUsers, res.DeletedChats, res.DeletedMessages)
				if res.FailedUsers > 0 {
					return fmt.Errorf("%d users failed", res.FailedUsers)
				}
				return nil
			}

			res, err := c.Retention.RunCleanup(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "chats deleted: %d\nmessages deleted: %d\n", res.DeletedChats, res.DeletedMessages)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to clean up")
	cmd.Flags().BoolVar(&all, "all", false, "run a pass over every user with automatic cleanup enabled")
	return cmd
}
