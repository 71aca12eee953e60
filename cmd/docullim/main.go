package main

import (
	"os"

	"github.com/shrynx/docullim/internal/cli"
)

var version = "0.1.0-dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		os.Stderr.WriteString("docullim: " + err.Error() + "\n")
		os.Exit(1)
	}
}
