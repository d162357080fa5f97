package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"facevault/gate"
	"facevault/recognize"
)

// promptPassword reads a password from the terminal without echo.
func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

// openFrameSource acquires the capture device for one command. The caller
// must Close it on every exit path.
func openFrameSource() (recognize.FrameSource, error) {
	framePath := viper.GetString("frame")
	if framePath == "" {
		return nil, fmt.Errorf("%w: no frame file configured (set --frame)", recognize.ErrDeviceUnavailable)
	}
	return recognize.NewFileSource(framePath)
}

// redirectHint tells the user where a denied gate routes them.
func redirectHint(page gate.Page) string {
	switch page {
	case gate.PageSetup:
		return "run 'facevault setup' first"
	case gate.PageEnroll:
		return "run 'facevault enroll'"
	case gate.PageVerify:
		return "run 'facevault verify'"
	case gate.PageVault:
		return "run 'facevault vault list'"
	default:
		return ""
	}
}

// requireGate performs the one entry check a command makes. A denial prints
// the redirect hint and returns a terminal error; commands never continue
// past a failed gate.
func requireGate(page gate.Page) (gate.Decision, error) {
	d, err := app.gate.Check(page)
	if err != nil {
		return gate.Decision{}, err
	}
	if !d.Granted {
		color.Red("%s", d.Reason)
		return d, fmt.Errorf("%s: %s", d.Reason, redirectHint(d.RedirectTo))
	}
	return d, nil
}
