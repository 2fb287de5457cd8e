package main

import (
	"os"

	"github.com/r3dd404/crushhub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
