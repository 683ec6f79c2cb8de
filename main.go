package main

import (
	"os"

	"github.com/civicradar/issueradar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
