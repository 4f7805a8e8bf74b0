package app

import (
	"errors"
	"time"

	"study_assistant/internal/api"
	"study_assistant/internal/model"
	"study_assistant/internal/tui"
	"study_assistant/internal/util"

	"github.com/spf13/cobra"
)

func (c *cli) registerAuthCommands(root *cobra.Command) {
	var reg model.RegisterRequest
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reg.Username == "" || reg.Email == "" || reg.Password == "" {
				if !interactive() {
					return errNotInteractive
				}
				if err := tui.CredentialsForm(&reg.Username, &reg.Password, &reg.Email).Run(); err != nil {
					return err
				}
			}
			if _, err := c.app.Client.Register(cmd.Context(), reg); err != nil {
				return errors.New(api.Message(err, "Registration failed"))
			}
			c.app.println("Registration successful. You are now logged in.")
			return nil
		},
	}
	registerCmd.Flags().StringVarP(&reg.Username, "username", "u", "", "username")
	registerCmd.Flags().StringVarP(&reg.Email, "email", "e", "", "email address")
	registerCmd.Flags().StringVarP(&reg.Password, "password", "p", "", "password")

	var login model.LoginRequest
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if login.Username == "" || login.Password == "" {
				if !interactive() {
					return errNotInteractive
				}
				if err := tui.CredentialsForm(&login.Username, &login.Password, nil).Run(); err != nil {
					return err
				}
			}
			if _, err := c.app.Client.Login(cmd.Context(), login); err != nil {
				return errors.New(api.Message(err, "Login failed"))
			}
			c.app.println("Login successful.")
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&login.Username, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&login.Password, "password", "p", "", "password")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Client.Logout(); err != nil {
				return err
			}
			c.app.println("Logged out.")
			return nil
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored token's subject and expiry",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			token, err := c.app.Tokens.Load()
			if err != nil {
				return err
			}
			info, err := util.ParseClaims(token)
			if err != nil {
				return err
			}
			c.app.printf("User ID:  %s\n", info.Subject)
			c.app.printf("Backend:  %s\n", c.app.Client.BaseURL())
			if info.ExpiresAt.IsZero() {
				c.app.println("Expires:  never")
				return nil
			}
			c.app.printf("Expires:  %s\n", info.ExpiresAt.Local().Format(util.TimeFormat))
			if info.Expired(time.Now()) {
				c.app.println("The token has expired. Run `study_assistant login` again.")
			}
			return nil
		}),
	}

	root.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
