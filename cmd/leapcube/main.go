// Command leapcube generates and maintains OLAP models for database tables.
package main

import (
	"os"

	"github.com/leapstack-labs/leapcube/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
