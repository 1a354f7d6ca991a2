// Package exec replaces the diagnostic process with the workload it guards.
package exec

import (
	"os"
	"os/exec"
)

// Executor replaces the current process after diagnostics succeed.
type Executor interface {
	// Exec replaces the current process with the specified command.
	// On Unix, this uses syscall.Exec. On Windows, returns an error.
	Exec(name string, args []string) error
}

// RealExecutor is the production implementation.
type RealExecutor struct{}

// SplitArgs separates hostprobe's own arguments from the command following
// "--". The returned command is nil when there is no "--" or nothing after it.
func SplitArgs(args []string) (own, command []string) {
	for i, a := range args {
		if a == "--" {
			if i+1 < len(args) {
				command = append([]string(nil), args[i+1:]...)
			}
			return append([]string(nil), args[:i]...), command
		}
	}
	return args, nil
}

func lookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func environ() []string {
	return os.Environ()
}
