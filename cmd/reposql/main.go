// Package main provides the reposql command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/reposql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
