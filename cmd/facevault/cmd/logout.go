package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Close the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.sessions.Logout(); err != nil {
			return err
		}
		color.Green("You have been logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
