package main

import (
	"github.com/jrsteele09/go-summary-client/api"
	"github.com/jrsteele09/go-summary-client/routes"
	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := c.app
			if err := a.authorize(routes.Login()); err != nil {
				return err
			}
			var err error
			if email, err = a.flagOrPrompt(email, "Email"); err != nil {
				return err
			}
			if password, err = a.flagOrPrompt(password, "Password"); err != nil {
				return err
			}

			snap, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			a.printf("Welcome back, %s! You are logged in as %s.\n", snap.User.FirstName, snap.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted for when omitted)")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var req api.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := c.app
			if err := a.authorize(routes.Register()); err != nil {
				return err
			}
			var err error
			if req.FullName, err = a.flagOrPrompt(req.FullName, "Full name"); err != nil {
				return err
			}
			if req.Email, err = a.flagOrPrompt(req.Email, "Email"); err != nil {
				return err
			}
			if req.Password, err = a.flagOrPrompt(req.Password, "Password"); err != nil {
				return err
			}
			if req.PasswordConfirmation, err = a.flagOrPrompt(req.PasswordConfirmation, "Confirm password"); err != nil {
				return err
			}

			msg, err := a.client.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("%s. You can now log in.\n", msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.FullName, "name", "n", "", "full name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password")
	cmd.Flags().StringVar(&req.PasswordConfirmation, "confirm", "", "password again")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.session.Logout(cmd.Context()); err != nil {
				return err
			}
			c.app.printf("Logged out.\n")
			return nil
		},
	}
}
