package main

import (
	"fmt"
	"os"

	hpexec "github.com/vertti/hostprobe/pkg/exec"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	var command []string
	os.Args, command = hpexec.SplitArgs(os.Args)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}

	// Diagnostics passed - exec into the workload if one was given
	if err := runExec(command); err != nil {
		fmt.Fprintf(os.Stderr, "exec: %v\n", err)
		os.Exit(1)
	}
}
