// Package version extracts and checks database server versions.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionRegex matches version patterns like 16.2, 3.45.1, 12, etc.
var versionRegex = regexp.MustCompile(`v?(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Parse parses a bare version string such as "16.2" or "v3.45.1".
func Parse(s string) (*semver.Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty version string")
	}

	if m := versionRegex.FindString(s); m != s {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	return semver.NewVersion(s)
}

// Extract finds and parses the first version number in a string, e.g.
// "PostgreSQL 16.2 on x86_64-pc-linux-gnu" yields 16.2.0.
func Extract(s string) (*semver.Version, error) {
	m := versionRegex.FindString(s)
	if m == "" {
		return nil, fmt.Errorf("no version found in: %q", s)
	}
	return semver.NewVersion(m)
}

// Constraint is a parsed version requirement such as ">= 12, < 17".
type Constraint struct {
	raw string
	c   *semver.Constraints
}

// ParseConstraint parses a semver constraint expression.
func ParseConstraint(s string) (*Constraint, error) {
	c, err := semver.NewConstraint(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint %q: %w", s, err)
	}
	return &Constraint{raw: strings.TrimSpace(s), c: c}, nil
}

// Check returns nil if v satisfies the constraint.
func (c *Constraint) Check(v *semver.Version) error {
	if c.c.Check(v) {
		return nil
	}
	return fmt.Errorf("version %s does not satisfy %s", v, c.raw)
}

func (c *Constraint) String() string {
	return c.raw
}
