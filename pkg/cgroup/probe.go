// Package cgroup discovers the memory limit and usage a Linux cgroup imposes
// on the current process.
package cgroup

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultLimitPaths are the memory limit files, cgroup v2 first.
var DefaultLimitPaths = []string{
	"/sys/fs/cgroup/memory.max",
	"/sys/fs/cgroup/memory.high",
	"/sys/fs/cgroup/memory.low",
	"/sys/fs/cgroup/memory/memory.limit_in_bytes",
}

// DefaultUsagePaths are the current memory usage files, cgroup v2 first.
var DefaultUsagePaths = []string{
	"/sys/fs/cgroup/memory.current",
	"/sys/fs/cgroup/memory/memory.usage_in_bytes",
}

// Probe is the value read from one candidate file.
type Probe struct {
	Path  string `json:"path"`
	Value int64  `json:"value"`
}

// FirstValue returns the first path that exists and holds a base-10 integer.
// Missing and malformed files are skipped; "max" in cgroup v2 is malformed
// for this purpose.
func FirstValue(fsys FileSystem, paths []string) (Probe, bool) {
	for _, path := range paths {
		if _, err := fsys.Stat(path); err != nil {
			log.Debugf("cgroup: skipping %s: %v", path, err)
			continue
		}

		data, err := fsys.ReadFile(path)
		if err != nil {
			log.Debugf("cgroup: skipping %s: %v", path, err)
			continue
		}

		value, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
		if err != nil {
			log.Debugf("cgroup: skipping %s: not an integer", path)
			continue
		}

		return Probe{Path: path, Value: value}, true
	}

	return Probe{}, false
}
