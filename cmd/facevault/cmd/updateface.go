package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"facevault/recognize"
)

var updateFaceCmd = &cobra.Command{
	Use:   "update-face",
	Short: "Replace the enrolled face template",
	Long: `Overwrites the reference face template with a fresh capture. Requires
re-entering the master password; a wrong password writes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword("Master password")
		if err != nil {
			return err
		}

		source, err := openFrameSource()
		if err != nil {
			color.Red("Could not access capture device.")
			return err
		}
		defer source.Close()

		emb, err := app.updater.Update(cmd.Context(), password, source, recognize.VectorDetector{})
		if err != nil {
			color.Red("%v", err)
			return err
		}

		color.Green("Face template updated (%d dimensions).", len(emb))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateFaceCmd)
}
