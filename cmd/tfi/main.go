package main

import (
	"os"

	"github.com/confio/tfi/cmd/tfi/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
