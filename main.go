// Package main provides the entrypoint for folio.
package main

import (
	"os"

	"github.com/isometry/folio/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
