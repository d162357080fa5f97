package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"facevault/gate"
	"facevault/recognize"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify your face and open a vault session",
	Long: `Captures a fresh embedding, compares it to the enrolled template, and on
a match opens a time-boxed session. A failed attempt changes nothing; just
try again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireGate(gate.PageVerify); err != nil {
			return err
		}

		source, err := openFrameSource()
		if err != nil {
			color.Red("Could not access capture device.")
			return err
		}
		defer source.Close()

		res, err := app.verifier.Verify(cmd.Context(), source, recognize.VectorDetector{})
		if err != nil {
			color.Red("%v", err)
			return err
		}

		color.Green("Face verified (distance %.2f).", res.Distance)
		color.Green("Session open until %s. Vault unlocked.", res.ExpiresAt.Format("15:04:05"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
