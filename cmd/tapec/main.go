// Command tapec compiles the tape language to C.
package main

import (
	"os"

	"github.com/tapeforge/tapec/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
