// Command vernam encrypts files with a one-time pad.
package main

import (
	"os"

	"github.com/idelchi/vernam/internal/commands"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	os.Exit(commands.Execute(version, os.Args[1:], os.Stdout, os.Stderr))
}
