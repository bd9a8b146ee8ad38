package main

import (
	"time"

	"github.com/jrsteele09/go-summary-client/routes"
	"github.com/spf13/cobra"
)

func (c *cli) settingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := c.app
			if err := a.authorize(routes.Settings()); err != nil {
				return err
			}
			snap := a.session.Snapshot()
			user := snap.User
			a.printf("Name:    %s\n", user.FullName())
			a.printf("Email:   %s\n", user.Email)
			a.printf("User ID: %d\n", user.UserID)
			a.printf("Joined:  %s\n", user.FormatJoined(time.Local))
			if !snap.ExpiresAt.IsZero() {
				a.printf("Session: valid until %s\n", snap.ExpiresAt.Local().Format("15:04"))
			}
			return nil
		},
	}
}
