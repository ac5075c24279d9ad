package main

import (
	"os"

	"github.com/mesd/mesdgen/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
