//go:build unix

package exec

import (
	"syscall"
)

// Exec replaces the current process using syscall.Exec.
func (e *RealExecutor) Exec(name string, args []string) error {
	binary, err := lookPath(name)
	if err != nil {
		return err
	}

	// argv[0] must be the program name by convention.
	argv := append([]string{name}, args...)
	// #nosec G204 -- the command comes from the operator's own CLI args.
	return syscall.Exec(binary, argv, environ())
}
