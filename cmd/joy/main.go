package main

import (
	"os"

	"github.com/cwbudde/go-joy/cmd/joy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
