// cmd/main.go is the application entry point.
package main

import (
	"os"

	"github.com/Shivanand-hulikatti/event-ease/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
