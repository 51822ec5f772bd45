// chatstat - group chat statistics
//
// chatstat reads a plain-text group chat export and reports message counts per
// member over time.
package main

import (
	"os"

	"github.com/ccollicutt/chatstat/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
