package main

import (
	log "github.com/sirupsen/logrus"

	hpexec "github.com/vertti/hostprobe/pkg/exec"
)

var executor hpexec.Executor = &hpexec.RealExecutor{}

// runExec replaces the process with command. It does nothing when command
// is empty and only returns if the exec itself fails.
func runExec(command []string) error {
	if len(command) == 0 {
		return nil
	}
	log.Debugf("exec: %v", command)
	return executor.Exec(command[0], command[1:])
}
