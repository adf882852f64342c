package school

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for unknown students, sections and schedule entries.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientCredits rejects an enrollment the student does not have
	// the credits for. It is a policy rejection, not a failure of the program.
	ErrInsufficientCredits = errors.New("not enough credits")

	// ErrInsufficientData is returned when a calculation has nothing (or not
	// enough) to work with, e.g. a GPA with no graded courses.
	ErrInsufficientData = errors.New("insufficient data")

	ErrDuplicateName = errors.New("duplicate student name")
)

// ParseError describes a malformed roster or catalog line.
type ParseError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v (%q)", e.Source, e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
