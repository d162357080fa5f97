package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"facevault/gate"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set the master password (first run)",
	Long: `Sets the master password protecting face-template updates. Runs once;
after setup the next step is 'facevault enroll'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireGate(gate.PageSetup); err != nil {
			return err
		}

		password, err := promptPassword("Master password (min 6 characters)")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password")
		if err != nil {
			return err
		}

		if err := app.creds.Set(password, confirm); err != nil {
			color.Red("%v", err)
			return err
		}

		color.Green("Master password set.")
		color.Green("Next: enroll your face with 'facevault enroll'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
