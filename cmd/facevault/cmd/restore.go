package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var restoreYes bool

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Overwrite application data from a backup file",
	Long: `Replaces the application's state with the contents of a backup document.
The file is parsed before anything is touched; a malformed file leaves the
store unchanged. On success, re-authentication is required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading backup file: %w", err)
		}

		if !restoreYes {
			color.Yellow("WARNING: this will OVERWRITE your current application data.")
			fmt.Print("Continue? [y/N]: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(line), "y") {
				fmt.Println("Restore cancelled.")
				return nil
			}
		}

		n, err := app.backups.Restore(data)
		if err != nil {
			color.Red("%v", err)
			return err
		}

		color.Green("Successfully restored %d items from backup.", n)
		color.Green("Re-authenticate with 'facevault verify'.")
		return nil
	},
}

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip the overwrite confirmation")
	rootCmd.AddCommand(restoreCmd)
}
