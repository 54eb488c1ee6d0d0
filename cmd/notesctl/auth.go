package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var loginName string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in, creating the account on first use",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		user, err := s.store.Login(context.Background(), args[0], loginName)
		if err != nil {
			return err
		}
		if err := s.save(); err != nil {
			return fmt.Errorf("signed in but could not save session: %w", err)
		}
		fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		user, err := s.store.RestoreSession(context.Background())
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Println("Not signed in")
			return nil
		}
		fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.UserID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		if err := s.store.Logout(context.Background()); err != nil {
			return err
		}
		if err := s.save(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginName, "name", "", "Display name (defaults to the email local part)")
	rootCmd.AddCommand(loginCmd, whoamiCmd, logoutCmd)
}
