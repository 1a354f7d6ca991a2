// Package report holds the labeled facts produced by each diagnostic step.
package report

// Status represents the outcome of a section.
type Status string

const (
	StatusOK   Status = "OK"
	StatusSkip Status = "SKIP"
	StatusFail Status = "FAIL"
)

// Fact is a single labeled line. An empty Label renders Value alone.
type Fact struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// Section groups the facts of one diagnostic step.
type Section struct {
	Name   string // e.g., "environment", "cgroup", "database"
	Status Status
	Facts  []Fact
	Reason string // why the section was skipped
	Err    error  // underlying error for failures
}

// New returns an empty section that is OK until told otherwise.
func New(name string) *Section {
	return &Section{Name: name, Status: StatusOK}
}

// OK returns true if the section completed.
func (s Section) OK() bool {
	return s.Status == StatusOK
}

// Skipped returns true if the section did not apply on this host.
func (s Section) Skipped() bool {
	return s.Status == StatusSkip
}

// Value returns the value of the first fact with the given label.
func (s Section) Value(label string) (string, bool) {
	for _, f := range s.Facts {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}
