package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"facevault/backup"
)

var backupDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a snapshot of all stored data to a file",
	Long: `Serializes every key in the store to one human-readable JSON document
named after the current time. Pure read; nothing in the store changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := app.backups.Snapshot()
		if err != nil {
			return err
		}
		data, err := backup.Encode(doc)
		if err != nil {
			return err
		}

		path := filepath.Join(backupDir, backup.Filename(time.Now()))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			color.Red("Error creating backup.")
			return err
		}

		color.Green("Backup %q written (%d keys).", path, len(doc))
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVarP(&backupDir, "out", "o", ".", "directory to write the backup file into")
	rootCmd.AddCommand(backupCmd)
}
