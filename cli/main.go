package main

import (
	"os"

	"github.com/rbql-go/rbql/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
