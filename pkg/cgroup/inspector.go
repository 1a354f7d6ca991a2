package cgroup

import (
	"strconv"

	"github.com/vertti/hostprobe/pkg/report"
	"github.com/vertti/hostprobe/pkg/size"
)

// SectionName is the name of the cgroup section.
const SectionName = "cgroup"

// Platform reports the host operating system.
type Platform interface {
	OS() string
}

// MemoryReport is a positive cgroup memory limit and what it implies.
type MemoryReport struct {
	Limit          Probe  `json:"limit"`
	Usage          *Probe `json:"usage,omitempty"`
	TotalAvailable uint64 `json:"total_available"`
}

// HardLimitPercent is total available memory as a whole-number percentage
// of the cgroup limit.
func (m MemoryReport) HardLimitPercent() string {
	return size.Percent(m.TotalAvailable, uint64(m.Limit.Value))
}

// Inspector finds the cgroup memory constraint of the current process.
type Inspector struct {
	Platform       Platform   // injected for testing
	FS             FileSystem // injected for testing
	LimitPaths     []string   // default: DefaultLimitPaths
	UsagePaths     []string   // default: DefaultUsagePaths
	TotalAvailable uint64     // memory the runtime believes it may use
}

// Inspect returns the memory report, or false when the host is not Linux or
// no positive limit is found.
func (i *Inspector) Inspect() (MemoryReport, bool) {
	rep, reason := i.inspect()
	return rep, reason == ""
}

func (i *Inspector) inspect() (MemoryReport, string) {
	if i.Platform == nil || i.Platform.OS() != "linux" {
		return MemoryReport{}, "not running on linux"
	}

	fsys := i.FS
	if fsys == nil {
		fsys = &RealFileSystem{}
	}
	limitPaths := i.LimitPaths
	if limitPaths == nil {
		limitPaths = DefaultLimitPaths
	}
	usagePaths := i.UsagePaths
	if usagePaths == nil {
		usagePaths = DefaultUsagePaths
	}

	limit, ok := FirstValue(fsys, limitPaths)
	if !ok {
		return MemoryReport{}, "no cgroup limit found"
	}
	if limit.Value <= 0 {
		return MemoryReport{}, "no positive cgroup limit (" + limit.Path + ")"
	}

	rep := MemoryReport{Limit: limit, TotalAvailable: i.TotalAvailable}
	if usage, ok := FirstValue(fsys, usagePaths); ok {
		rep.Usage = &usage
	}
	return rep, ""
}

// Run inspects the cgroup and renders the result as a section.
func (i *Inspector) Run() report.Section {
	s := report.New(SectionName)

	rep, reason := i.inspect()
	if reason != "" {
		return s.Skip(reason)
	}

	s.AddFact("cgroup memory constraint", rep.Limit.Path)
	s.AddFact("cgroup memory limit", formatBytes(rep.Limit.Value))
	if rep.Usage != nil {
		s.AddFact("cgroup memory usage", formatBytes(rep.Usage.Value))
	}
	s.AddFact("GC hard limit %", rep.HardLimitPercent())

	return *s
}

func formatBytes(v int64) string {
	if v < 0 {
		return strconv.FormatInt(v, 10)
	}
	return size.WithBestUnit(uint64(v))
}
