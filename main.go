package main

import (
	"os"

	"github.com/vedprakash-m/pathfinder-sub008/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
