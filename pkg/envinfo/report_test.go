package envinfo

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/hostprobe/pkg/report"
	"github.com/vertti/hostprobe/pkg/size"
)

type mockHostInfo struct {
	os       string
	arch     string
	osDesc   string
	runtime  string
	user     string
	userErr  error
	host     string
	hostErr  error
	cpus     int
	total    uint64
	avail    uint64
	availErr error
}

func (m *mockHostInfo) OS() string                                        { return m.os }
func (m *mockHostInfo) Arch() string                                      { return m.arch }
func (m *mockHostInfo) OSDescription(_ context.Context) string            { return m.osDesc }
func (m *mockHostInfo) RuntimeDescription() string                        { return m.runtime }
func (m *mockHostInfo) UserName() (string, error)                         { return m.user, m.userErr }
func (m *mockHostInfo) HostName() (string, error)                         { return m.host, m.hostErr }
func (m *mockHostInfo) NumCPU() int                                       { return m.cpus }
func (m *mockHostInfo) TotalAvailableMemory() uint64                      { return m.total }
func (m *mockHostInfo) AvailableMemory(_ context.Context) (uint64, error) { return m.avail, m.availErr }

func newMock() *mockHostInfo {
	return &mockHostInfo{
		os:      "linux",
		arch:    "arm64",
		osDesc:  "linux 6.1.0 (debian 12)",
		runtime: "go1.25.0 gc/arm64",
		user:    "app",
		host:    "box-1",
		cpus:    4,
		total:   2 * size.GiB,
		avail:   512 * size.MiB,
	}
}

func TestReporter_Run(t *testing.T) {
	r := &Reporter{Info: newMock()}

	s := r.Run(context.Background())

	assert.Equal(t, SectionName, s.Name)
	assert.Equal(t, report.StatusOK, s.Status)

	want := []report.Fact{
		{Label: "Arch", Value: "arm64"},
		{Label: "OS", Value: "linux 6.1.0 (debian 12)"},
		{Label: "Runtime", Value: "go1.25.0 gc/arm64"},
		{},
		{Label: "User", Value: "app"},
		{Label: "HostName", Value: "box-1"},
		{},
		{Label: "ProcessorCount", Value: "4"},
		{Label: "TotalAvailableMemory", Value: "2147483648 (2.00 GiB)"},
		{Label: "AvailableMemory", Value: "536870912 (512.00 MiB)"},
	}
	assert.Equal(t, want, s.Facts)
}

func TestReporter_LookupFailures(t *testing.T) {
	m := newMock()
	m.userErr = errors.New("no passwd entry")
	m.hostErr = errors.New("uname failed")
	m.availErr = errors.New("no /proc")

	s := (&Reporter{Info: m}).Run(context.Background())

	assert.True(t, s.OK())

	user, _ := s.Value("User")
	assert.Equal(t, "unknown", user)

	hostName, _ := s.Value("HostName")
	assert.Equal(t, "unknown", hostName)

	_, ok := s.Value("AvailableMemory")
	assert.False(t, ok, "AvailableMemory should be omitted when lookup fails")
}

func TestReporter_EmptyUserName(t *testing.T) {
	m := newMock()
	m.user = ""

	s := (&Reporter{Info: m}).Run(context.Background())

	user, _ := s.Value("User")
	assert.Equal(t, "unknown", user)
}

func TestDescribeOS(t *testing.T) {
	tests := []struct {
		name string
		info host.InfoStat
		want string
	}{
		{"full", host.InfoStat{OS: "linux", KernelVersion: "6.8.0", Platform: "ubuntu", PlatformVersion: "24.04"}, "linux 6.8.0 (ubuntu 24.04)"},
		{"no platform", host.InfoStat{OS: "linux", KernelVersion: "6.8.0"}, "linux 6.8.0"},
		{"platform only", host.InfoStat{OS: "darwin", Platform: "darwin", PlatformVersion: "14.5"}, "darwin (darwin 14.5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeOS(&tt.info))
		})
	}
}

func TestRealHostInfo(t *testing.T) {
	info := &RealHostInfo{}

	assert.NotEmpty(t, info.OS())
	assert.NotEmpty(t, info.Arch())
	assert.NotEmpty(t, info.OSDescription(context.Background()))
	assert.Contains(t, info.RuntimeDescription(), "go")
	assert.GreaterOrEqual(t, info.NumCPU(), 1)
	assert.Greater(t, info.TotalAvailableMemory(), uint64(0))

	name, err := info.HostName()
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}
