package main

import (
	"os"

	"github.com/jamhof/recipebox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
