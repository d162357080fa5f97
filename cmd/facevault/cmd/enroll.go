package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"facevault/gate"
	"facevault/recognize"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Capture and store the reference face template",
	Long: `Captures one face embedding from the configured frame source and stores
it as the reference template. Enrollment alone never unlocks the vault:
follow up with 'facevault verify'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireGate(gate.PageEnroll); err != nil {
			return err
		}

		source, err := openFrameSource()
		if err != nil {
			color.Red("Could not access capture device.")
			return err
		}
		defer source.Close()

		emb, err := app.enroller.Enroll(cmd.Context(), source, recognize.VectorDetector{})
		if err != nil {
			color.Red("%v", err)
			return err
		}

		color.Green("Face template captured (%d dimensions).", len(emb))
		color.Green("Now verifying: run 'facevault verify'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrollCmd)
}
