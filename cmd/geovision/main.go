package main

import (
	"fmt"

	"geovision/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cli.Execute(fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit))
}
