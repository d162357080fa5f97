package cmd

import "github.com/fatih/color"

// Version is stamped at build time.
var Version = "dev"

const banner = `
  ______             __      __         _ _
 |  ____|            \ \    / /        | | |
 | |__ __ _  ___ ___  \ \  / /_ _ _   _| | |_
 |  __/ _` + "`" + ` |/ __/ _ \  \ \/ / _` + "`" + ` | | | | | __|
 | | | (_| | (_|  __/   \  / (_| | |_| | | |_
 |_|  \__,_|\___\___|    \/ \__,_|\__,_|_|\__|
`

func printBanner() {
	color.Blue("%s", banner)
	color.Green("  Face-gated local password vault - Version %s\n", Version)
}
