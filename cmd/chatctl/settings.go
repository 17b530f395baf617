package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/chatvault/internal/app"
	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/internal/service/settings"
	"github.com/heartmarshall/chatvault/pkg/ctxutil"
)

func newSettingsCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change a user's retention settings",
	}
	cmd.PersistentFlags().StringVar(&userID, "user", "", "user id (required)")
	_ = cmd.MarkPersistentFlagRequired("user")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the user's settings, creating defaults if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUserSettings(cmd, userID, func(svc *settings.Service, cmd *cobra.Command) (domain.UserRetentionSettings, error) {
				return svc.GetSettings(cmd.Context())
			})
		},
	})

	var (
		autoCleanup   bool
		retentionDays int
		maxChats      int
		protected     int
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Update the given settings; omitted flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in settings.UpdateSettingsInput
			flags := cmd.Flags()
			if flags.Changed("auto-cleanup") {
				in.AutoCleanupEnabled = &autoCleanup
			}
			if flags.Changed("retention-days") {
				in.RetentionDays = &retentionDays
			}
			if flags.Changed("max-chats") {
				in.MaxChats = &maxChats
			}
			if flags.Changed("protected-chats") {
				in.ProtectedChats = &protected
			}
			if in.IsEmpty() {
				return fmt.Errorf("nothing to update")
			}

			return withUserSettings(cmd, userID, func(svc *settings.Service, cmd *cobra.Command) (domain.UserRetentionSettings, error) {
				return svc.UpdateSettings(cmd.Context(), in)
			})
		},
	}
	set.Flags().BoolVar(&autoCleanup, "auto-cleanup", false, "enable scheduled cleanup")
	set.Flags().IntVar(&retentionDays, "retention-days", 0, "retention window in days")
	set.Flags().IntVar(&maxChats, "max-chats", 0, "ceiling on unprotected chats")
	set.Flags().IntVar(&protected, "protected-chats", 0, "ceiling on protected chats")
	cmd.AddCommand(set)

	return cmd
}

// withUserSettings runs fn as userID and prints the resulting settings.
func withUserSettings(
	cmd *cobra.Command,
	userID string,
	fn func(svc *settings.Service, cmd *cobra.Command) (domain.UserRetentionSettings, error),
) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid --user: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c, err := app.NewContainer(cmd.Context(), cfg, slog.Default())
	if err != nil {
		return err
	}
	defer c.Close()

	cmd.SetContext(ctxutil.WithUserID(cmd.Context(), id))
	s, err := fn(c.SettingsSvc, cmd)
	if err != nil {
		return err
	}
	printSettings(cmd.OutOrStdout(), s)
	return nil
}

func printSettings(w io.Writer, s domain.UserRetentionSettings) {
	fmt.Fprintf(w, "user:            %s\n", s.UserID)
	fmt.Fprintf(w, "auto cleanup:    %t\n", s.AutoCleanupEnabled)
	fmt.Fprintf(w, "retention days:  %d\n", s.RetentionDays)
	fmt.Fprintf(w, "max chats:       %d\n", s.MaxChats)
	fmt.Fprintf(w, "protected chats: %d\n", s.ProtectedChats)
}
