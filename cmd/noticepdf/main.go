package main

import (
	"os"

	"github.com/wudi/noticepdf/cli"
)

func main() {
	os.Exit(cli.Execute())
}
