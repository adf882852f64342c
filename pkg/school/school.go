package school

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"go.uber.org/zap"
)

// DistributionBuckets lists the GPA buckets in chart order.
var DistributionBuckets = []string{"0.0", "1.0", "2.0", "3.0", "4.0"}

// Distribution counts students per GPA bucket.
type Distribution map[string]int

// School holds the course catalog and every registered student. Students
// are kept both in registration order and by name.
type School struct {
	catalog  *Catalog
	students []*Student
	byName   map[string]*Student
	log      *zap.Logger
}

type Option func(*School)

func WithLogger(log *zap.Logger) Option {
	return func(s *School) {
		s.log = log
	}
}

func New(catalog *Catalog, opts ...Option) *School {
	if catalog == nil {
		catalog = NewCatalog()
	}
	s := &School{
		catalog: catalog,
		byName:  make(map[string]*Student),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *School) Catalog() *Catalog {
	return s.catalog
}

// Students returns every student in registration order.
func (s *School) Students() []*Student {
	return append([]*Student(nil), s.students...)
}

func (s *School) Student(name string) (*Student, error) {
	student, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("student %q: %w", name, ErrNotFound)
	}
	return student, nil
}

// AddStudent registers a new student. Names must be unique.
func (s *School) AddStudent(name string, age, year, credits int) (*Student, error) {
	if _, found := s.byName[name]; found {
		return nil, fmt.Errorf("%q: %w", name, ErrDuplicateName)
	}
	student := NewStudent(name, age, year, credits, s.catalog)
	s.register(student)
	return student, nil
}

func (s *School) register(student *Student) {
	s.students = append(s.students, student)
	s.byName[student.Name] = student
	s.log.Debug("Registered student", zap.String("name", student.Name), zap.Int("credits", student.Credits))
}

// LoadRoster adds every student listed in a roster file and returns how
// many were added. A bad line or duplicate name rejects the whole file.
func (s *School) LoadRoster(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return s.readRoster(file, path)
}

func (s *School) ReadRoster(r io.Reader) (int, error) {
	return s.readRoster(r, "roster")
}

func (s *School) readRoster(r io.Reader, source string) (int, error) {
	entries, err := ReadRosterEntries(r, source)
	if err != nil {
		return 0, err
	}

	// Check every name before registering any of them
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if _, found := s.byName[e.Name]; found || seen[e.Name] {
			return 0, fmt.Errorf("%s: %q: %w", source, e.Name, ErrDuplicateName)
		}
		seen[e.Name] = true
	}

	for _, e := range entries {
		s.register(NewStudent(e.Name, e.Age, e.Year, e.Credits, s.catalog))
	}
	s.log.Info("Loaded roster", zap.String("source", source), zap.Int("students", len(entries)))
	return len(entries), nil
}

func (s *School) AddCourseSection(section Section) {
	s.catalog.Append(section)
	s.log.Debug("Added section",
		zap.String("course", section.Key()),
		zap.Int("section", section.SectionNumber))
}

func (s *School) Enroll(name, prefix string, course, section int) error {
	student, err := s.Student(name)
	if err != nil {
		return err
	}
	if err := student.Enroll(prefix, course, section); err != nil {
		return err
	}
	s.log.Debug("Enrolled", zap.String("student", name), zap.String("course", CourseKey(prefix, course)))
	return nil
}

func (s *School) Drop(name, prefix string, course int) error {
	student, err := s.Student(name)
	if err != nil {
		return err
	}
	if err := student.Drop(prefix, course); err != nil {
		return err
	}
	s.log.Debug("Dropped", zap.String("student", name), zap.String("course", CourseKey(prefix, course)))
	return nil
}

func (s *School) AssignGrade(name, courseKey, grade string) error {
	student, err := s.Student(name)
	if err != nil {
		return err
	}
	student.AssignGrade(courseKey, grade)
	s.log.Debug("Assigned grade",
		zap.String("student", name),
		zap.String("course", courseKey),
		zap.Float64("gpa", student.GPA()))
	return nil
}

// RankStudents returns the names of the n students with the highest GPA.
// Equal GPAs keep registration order.
func (s *School) RankStudents(n int) ([]string, error) {
	if n < 0 || n > len(s.students) {
		return nil, fmt.Errorf("ranking top %d of %d students: %w", n, len(s.students), ErrInsufficientData)
	}

	ranked := s.Students()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GPA() > ranked[j].GPA()
	})

	names := make([]string, n)
	for i := range names {
		names[i] = ranked[i].Name
	}
	return names, nil
}

// GPADistribution counts students by the whole number part of their GPA.
// Everything from 4.0 up lands in the last bucket.
func (s *School) GPADistribution() Distribution {
	dist := make(Distribution, len(DistributionBuckets))
	for _, b := range DistributionBuckets {
		dist[b] = 0
	}
	for _, student := range s.students {
		dist[bucket(student.GPA())]++
	}
	return dist
}

func bucket(gpa float64) string {
	i := int(math.Floor(gpa))
	switch {
	case i <= 0:
		return DistributionBuckets[0]
	case i >= len(DistributionBuckets)-1:
		return DistributionBuckets[len(DistributionBuckets)-1]
	default:
		return DistributionBuckets[i]
	}
}

func (s *School) Summary() string {
	return fmt.Sprintf("This school has %d students and offers %d courses.", len(s.students), s.catalog.Len())
}

func (s *School) String() string {
	return s.Summary()
}
