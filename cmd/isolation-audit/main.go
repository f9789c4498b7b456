package main

import (
	"os"

	"github.com/stafferly/stafferly/cmd/isolation-audit/commands"
)

// main is the entry point for the application. It is intentionally kept small
// because it is hard to test, which would lower test coverage.
func main() {
	os.Exit(commands.Execute())
}
