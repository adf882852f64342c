package school

import (
	"database/sql"
	"fmt"
	"strings"
)

// gradePoints maps the letter grades that count towards a GPA.
var gradePoints = map[string]float64{
	"A": 4.0,
	"B": 3.0,
	"C": 2.0,
	"D": 1.0,
}

// GradeEntry is one line of a student's grade record. An invalid Grade
// means the course has not been graded yet.
type GradeEntry struct {
	Course string
	Grade  sql.NullString
}

type Student struct {
	Name    string
	Age     int
	Year    int
	Credits int

	schedule []Section
	grades   map[string]sql.NullString
	order    []string // grade keys in the order they were first recorded
	gpa      float64
	catalog  *Catalog
}

// NewStudent creates a student who enrolls against the given catalog.
func NewStudent(name string, age, year, credits int, catalog *Catalog) *Student {
	return &Student{
		Name:    name,
		Age:     age,
		Year:    year,
		Credits: credits,
		grades:  make(map[string]sql.NullString),
		catalog: catalog,
	}
}

// Enroll adds a catalog section to the schedule and opens an ungraded
// entry for it. The section's required credits are checked against the
// student's whole balance every time; nothing is deducted.
func (s *Student) Enroll(prefix string, course, section int) error {
	sec, err := s.catalog.Lookup(prefix, course, section)
	if err != nil {
		return err
	}
	if sec.CreditsNeeded > s.Credits {
		return fmt.Errorf("%s needs %d credits, %s has %d: %w",
			sec.Key(), sec.CreditsNeeded, s.Name, s.Credits, ErrInsufficientCredits)
	}
	s.schedule = append(s.schedule, sec)
	s.setGrade(sec.Key(), sql.NullString{})
	return nil
}

// Drop removes the first scheduled section of the course. The grade record
// is left alone.
func (s *Student) Drop(prefix string, course int) error {
	for i, sec := range s.schedule {
		if sec.Prefix == prefix && sec.CourseNumber == course {
			s.schedule = append(s.schedule[:i:i], s.schedule[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s is not enrolled in %s: %w", s.Name, CourseKey(prefix, course), ErrNotFound)
}

// AssignGrade records a letter grade for a course key and recalculates the
// GPA. The key does not have to be on the schedule. An empty grade clears it.
func (s *Student) AssignGrade(courseKey, grade string) {
	grade = strings.ToUpper(strings.TrimSpace(grade))
	s.setGrade(courseKey, sql.NullString{String: grade, Valid: grade != ""})
}

// setGrade is the only writer of the grade record, so the cached GPA is
// refreshed here.
func (s *Student) setGrade(courseKey string, grade sql.NullString) {
	if _, found := s.grades[courseKey]; !found {
		s.order = append(s.order, courseKey)
	}
	s.grades[courseKey] = grade
	s.recalculate()
}

func (s *Student) recalculate() {
	gpa, err := s.ComputeGPA()
	if err != nil {
		// Nothing gradable yet
		gpa = 0
	}
	s.gpa = gpa
}

// ComputeGPA averages the grade points of every A, B, C or D on record.
// Other letters and ungraded courses are skipped.
func (s *Student) ComputeGPA() (float64, error) {
	var total float64
	var count int
	for _, key := range s.order {
		grade := s.grades[key]
		if !grade.Valid {
			continue
		}
		if points, ok := gradePoints[grade.String]; ok {
			total += points
			count++
		}
	}
	if count == 0 {
		return 0, fmt.Errorf("%s has no graded courses: %w", s.Name, ErrInsufficientData)
	}
	return total / float64(count), nil
}

// GPA is the value last calculated from the grade record, 0 while no
// countable grade exists.
func (s *Student) GPA() float64 {
	return s.gpa
}

func (s *Student) Schedule() []Section {
	return append([]Section(nil), s.schedule...)
}

func (s *Student) Grade(courseKey string) (sql.NullString, bool) {
	grade, ok := s.grades[courseKey]
	return grade, ok
}

// Grades returns the grade record in the order courses were first recorded.
func (s *Student) Grades() []GradeEntry {
	entries := make([]GradeEntry, 0, len(s.order))
	for _, key := range s.order {
		entries = append(entries, GradeEntry{Course: key, Grade: s.grades[key]})
	}
	return entries
}
