package api

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vertti/hostprobe/pkg/cgroup"
)

// MemoryFunc reports the cgroup memory state. ok is false when no positive
// limit applies to the process.
type MemoryFunc func() (rep cgroup.MemoryReport, ok bool)

const namespace = "hostprobe"

// memoryCollector reads the cgroup files on every scrape.
type memoryCollector struct {
	memory MemoryFunc

	limited *prometheus.Desc
	limit   *prometheus.Desc
	usage   *prometheus.Desc
	total   *prometheus.Desc
	percent *prometheus.Desc
}

func newMemoryCollector(fn MemoryFunc) *memoryCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "cgroup", name), help, nil, nil)
	}
	return &memoryCollector{
		memory:  fn,
		limited: desc("memory_limited", "1 if a positive cgroup memory limit applies, 0 otherwise."),
		limit:   desc("memory_limit_bytes", "cgroup memory limit."),
		usage:   desc("memory_usage_bytes", "cgroup memory usage."),
		total:   desc("total_available_memory_bytes", "Memory the Go runtime believes it may use."),
		percent: desc("gc_hard_limit_percent", "Total available memory as a percentage of the cgroup limit."),
	}
}

func (c *memoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.limited
	ch <- c.limit
	ch <- c.usage
	ch <- c.total
	ch <- c.percent
}

func (c *memoryCollector) Collect(ch chan<- prometheus.Metric) {
	rep, ok := c.memory()
	if !ok {
		ch <- prometheus.MustNewConstMetric(c.limited, prometheus.GaugeValue, 0)
		return
	}

	limit := float64(rep.Limit.Value)
	ch <- prometheus.MustNewConstMetric(c.limited, prometheus.GaugeValue, 1)
	ch <- prometheus.MustNewConstMetric(c.limit, prometheus.GaugeValue, limit)
	if rep.Usage != nil {
		ch <- prometheus.MustNewConstMetric(c.usage, prometheus.GaugeValue, float64(rep.Usage.Value))
	}
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(rep.TotalAvailable))
	ch <- prometheus.MustNewConstMetric(c.percent, prometheus.GaugeValue, float64(rep.TotalAvailable)/limit*100)
}
