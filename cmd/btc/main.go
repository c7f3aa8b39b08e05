package main

import (
	"os"

	"github.com/mcoot/buitransport/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
