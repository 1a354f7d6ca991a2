// Package envinfo reports OS, runtime, user, host and hardware facts.
package envinfo

import (
	"context"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/vertti/hostprobe/pkg/report"
	"github.com/vertti/hostprobe/pkg/size"
)

// SectionName is the name of the environment section.
const SectionName = "environment"

const unknown = "unknown"

// Reporter collects the environment facts.
type Reporter struct {
	Info HostInfo // injected for testing
}

// Run gathers the facts in display order: OS and runtime, then user and
// host, then hardware.
func (r *Reporter) Run(ctx context.Context) report.Section {
	info := r.Info
	if info == nil {
		info = &RealHostInfo{}
	}

	s := report.New(SectionName)

	s.AddFact("Arch", info.Arch())
	s.AddFact("OS", info.OSDescription(ctx))
	s.AddFact("Runtime", info.RuntimeDescription())
	s.AddBreak()

	s.AddFact("User", valueOrUnknown("user name", info.UserName))
	s.AddFact("HostName", valueOrUnknown("host name", info.HostName))
	s.AddBreak()

	s.AddFact("ProcessorCount", strconv.Itoa(info.NumCPU()))
	s.AddFact("TotalAvailableMemory", size.WithBestUnit(info.TotalAvailableMemory()))
	if avail, err := info.AvailableMemory(ctx); err != nil {
		log.Debugf("available memory unavailable: %v", err)
	} else {
		s.AddFact("AvailableMemory", size.WithBestUnit(avail))
	}

	return *s
}

func valueOrUnknown(what string, lookup func() (string, error)) string {
	v, err := lookup()
	if err != nil || v == "" {
		log.Debugf("%s lookup failed: %v", what, err)
		return unknown
	}
	return v
}
