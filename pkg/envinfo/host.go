package envinfo

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/user"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/pbnjay/memory"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	log "github.com/sirupsen/logrus"
)

// HostInfo abstracts host and runtime introspection for testability.
type HostInfo interface {
	OS() string
	Arch() string
	OSDescription(ctx context.Context) string
	RuntimeDescription() string
	UserName() (string, error)
	HostName() (string, error)
	NumCPU() int

	// TotalAvailableMemory returns the memory budget the Go runtime works
	// against: GOMEMLIMIT when set, physical memory otherwise.
	TotalAvailableMemory() uint64

	// AvailableMemory returns memory currently available to new allocations.
	AvailableMemory(ctx context.Context) (uint64, error)
}

// RealHostInfo returns actual host information.
type RealHostInfo struct{}

func (r *RealHostInfo) OS() string   { return runtime.GOOS }
func (r *RealHostInfo) Arch() string { return runtime.GOARCH }
func (r *RealHostInfo) NumCPU() int  { return runtime.NumCPU() }

// OSDescription describes the kernel and distribution, e.g.
// "linux 6.8.0-45-generic (ubuntu 24.04)".
func (r *RealHostInfo) OSDescription(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		log.Debugf("host info unavailable: %v", err)
		return runtime.GOOS
	}
	return describeOS(info)
}

func describeOS(info *host.InfoStat) string {
	desc := info.OS
	if desc == "" {
		desc = runtime.GOOS
	}
	if info.KernelVersion != "" {
		desc += " " + info.KernelVersion
	}
	platform := strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	if platform != "" {
		desc += " (" + platform + ")"
	}
	return desc
}

func (r *RealHostInfo) RuntimeDescription() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.Compiler, runtime.GOARCH)
}

// UserName returns the login name of the current user.
func (r *RealHostInfo) UserName() (string, error) {
	u, err := user.Current()
	if err == nil && u.Username != "" {
		return u.Username, nil
	}
	for _, key := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(key); name != "" {
			return name, nil
		}
	}
	if err == nil {
		err = fmt.Errorf("current user has no name")
	}
	return "", err
}

func (r *RealHostInfo) HostName() (string, error) {
	return os.Hostname()
}

func (r *RealHostInfo) TotalAvailableMemory() uint64 {
	// SetMemoryLimit with a negative value only reads the current limit.
	if limit := debug.SetMemoryLimit(-1); limit > 0 && limit < math.MaxInt64 {
		return uint64(limit)
	}
	return memory.TotalMemory()
}

func (r *RealHostInfo) AvailableMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}
