package runner

import (
	"github.com/projectdiscovery/gologger"
)

const banner = `
                                 _  __
   ________  _________  ____    | |/ /
  / ___/ _ \/ ___/ __ \/ __ \   |   /
 / /  /  __/ /__/ /_/ / / / /  /   |
/_/   \___/\___/\____/_/ /_/  /_/|_|
`

// Version is the current version of reconx
const version = `v1.0.0`

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tprojectdiscovery.io\n\n")
}
