// Command studykit is the StudyKit command-line interface.
package main

import (
	"os"

	"github.com/studykit-labs/studykit/internal/adapters/driving/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
