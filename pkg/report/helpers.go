package report

import "fmt"

// AddFact appends a labeled line to the section.
func (s *Section) AddFact(label, value string) *Section {
	s.Facts = append(s.Facts, Fact{Label: label, Value: value})
	return s
}

// AddFactf appends a labeled line with a formatted value.
func (s *Section) AddFactf(label, format string, args ...interface{}) *Section {
	return s.AddFact(label, fmt.Sprintf(format, args...))
}

// AddBreak appends a blank separator line.
func (s *Section) AddBreak() *Section {
	s.Facts = append(s.Facts, Fact{})
	return s
}

// Skip marks the section as not applicable.
func (s *Section) Skip(reason string) Section {
	s.Status = StatusSkip
	s.Reason = reason
	return *s
}

// Fail sets the section to failed status with a detail message.
func (s *Section) Fail(detail string, err error) Section {
	s.Status = StatusFail
	s.Reason = detail
	s.Err = err
	return *s
}

// Failf sets the section to failed status with a formatted detail message.
func (s *Section) Failf(format string, args ...interface{}) Section {
	return s.Fail(fmt.Sprintf(format, args...), fmt.Errorf(format, args...))
}
