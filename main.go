package main

import (
	"os"

	"github.com/deltafood/delta/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
