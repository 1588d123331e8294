package main

import (
	"os"

	"github.com/colalang/cola/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
