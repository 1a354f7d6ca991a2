//go:build windows

package exec

import "errors"

// ErrExecNotSupported indicates entrypoint mode is not available on Windows.
var ErrExecNotSupported = errors.New("exec not supported on Windows; run the command after hostprobe instead")

// Exec is not supported on Windows, which has no call that replaces the
// running process.
func (e *RealExecutor) Exec(name string, args []string) error {
	return ErrExecNotSupported
}
