package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"facevault/session"
)

var watchSession bool

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the current session status",
	Long: `Checks whether a vault session is open and how long it has left.
With --watch, displays a once-per-second countdown until expiry. The
countdown is recomputed from the stored expiration each tick; sessions are
never extended by activity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := app.sessions.Check()
		if err != nil {
			return err
		}
		if !d.Granted {
			color.Red("No valid session. Run 'facevault verify'.")
			return fmt.Errorf("session expired or not found")
		}

		if !watchSession {
			color.Green("Session open, %s remaining (expires %s).",
				formatCountdown(d.Remaining), d.ExpiresAt.Format("15:04:05"))
			return nil
		}

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			remaining := session.Remaining(d.ExpiresAt, time.Now())
			if remaining == 0 {
				fmt.Println()
				color.Red("Session expired. Run 'facevault verify'.")
				return app.sessions.Logout()
			}
			fmt.Printf("\rSession expires in %s ", formatCountdown(remaining))
			select {
			case <-ticker.C:
			case <-cmd.Context().Done():
				fmt.Println()
				return nil
			}
		}
	},
}

// formatCountdown renders a duration as MM:SS for the session countdown.
func formatCountdown(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func init() {
	sessionCmd.Flags().BoolVarP(&watchSession, "watch", "w", false, "show a live countdown until expiry")
	rootCmd.AddCommand(sessionCmd)
}
