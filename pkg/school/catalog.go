package school

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/gocarina/gocsv"
)

// Section is one offering of a course, identified by prefix, course number
// and section number.
type Section struct {
	Prefix        string `db:"prefix" csv:"Prefix" bigquery:"prefix"`
	CourseNumber  int    `db:"course_number" csv:"Course number" bigquery:"course_number"`
	SectionNumber int    `db:"section_number" csv:"Section number" bigquery:"section_number"`
	Name          string `db:"name" csv:"Course name" bigquery:"name"`
	Times         string `db:"times" csv:"Times" bigquery:"times"`
	Instructor    string `db:"instructor" csv:"Instructor" bigquery:"instructor"`
	Building      string `db:"building" csv:"Building" bigquery:"building"`
	CreditsNeeded int    `db:"credits_needed" csv:"Credits needed" bigquery:"credits_needed"`
}

// Key returns the course key ("CMSC131") a grade is recorded under.
func (s Section) Key() string {
	return CourseKey(s.Prefix, s.CourseNumber)
}

func (s Section) matches(prefix string, course, section int) bool {
	return s.Prefix == prefix && s.CourseNumber == course && s.SectionNumber == section
}

// CourseKey joins a prefix and course number the way grade records are keyed.
func CourseKey(prefix string, course int) string {
	return prefix + strconv.Itoa(course)
}

// Catalog is the table of course sections offered by a school. Rows can be
// appended but never removed.
type Catalog struct {
	sections []Section
}

func NewCatalog(sections ...Section) *Catalog {
	return &Catalog{sections: append([]Section(nil), sections...)}
}

// Lookup returns the first section matching the three part key.
func (c *Catalog) Lookup(prefix string, course, section int) (Section, error) {
	for _, s := range c.sections {
		if s.matches(prefix, course, section) {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("section %s %d-%d: %w", prefix, course, section, ErrNotFound)
}

// Append adds a section. Duplicate keys are accepted; Lookup keeps
// returning the earliest one.
func (c *Catalog) Append(s Section) {
	c.sections = append(c.sections, s)
}

func (c *Catalog) Sections() []Section {
	return append([]Section(nil), c.sections...)
}

func (c *Catalog) Len() int {
	return len(c.sections)
}

// SectionRecord is a section as raw text, before validation. It is the
// shape of one catalog file row.
type SectionRecord struct {
	Prefix        string `csv:"Prefix"`
	CourseNumber  string `csv:"Course number"`
	SectionNumber string `csv:"Section number"`
	Name          string `csv:"Course name"`
	Times         string `csv:"Times"`
	Instructor    string `csv:"Instructor"`
	Building      string `csv:"Building"`
	CreditsNeeded string `csv:"Credits needed"`
}

// LoadCatalog reads a catalog CSV file. The file is closed before returning.
func LoadCatalog(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readCatalog(file, path)
}

// ReadCatalog parses a header plus rows of course sections.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	return readCatalog(r, "catalog")
}

func readCatalog(r io.Reader, source string) (*Catalog, error) {
	var rows []SectionRecord
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, &ParseError{Source: source, Line: 1, Err: err}
	}

	catalog := NewCatalog()
	for i, row := range rows {
		section, err := row.Section()
		if err != nil {
			// Line 1 is the header
			return nil, &ParseError{Source: source, Line: i + 2, Err: err}
		}
		catalog.Append(section)
	}
	return catalog, nil
}

// Section validates the record and converts it to a typed Section.
func (r SectionRecord) Section() (Section, error) {
	prefix := strings.TrimSpace(r.Prefix)
	if !isPrefix(prefix) {
		return Section{}, fmt.Errorf("prefix %q is not a 4 letter code", prefix)
	}
	course, err := parseCount("course number", r.CourseNumber, 1)
	if err != nil {
		return Section{}, err
	}
	section, err := parseCount("section number", r.SectionNumber, 1)
	if err != nil {
		return Section{}, err
	}
	credits, err := parseCount("credits needed", r.CreditsNeeded, 0)
	if err != nil {
		return Section{}, err
	}
	return Section{
		Prefix:        prefix,
		CourseNumber:  course,
		SectionNumber: section,
		Name:          strings.TrimSpace(r.Name),
		Times:         strings.TrimSpace(r.Times),
		Instructor:    strings.TrimSpace(r.Instructor),
		Building:      strings.TrimSpace(r.Building),
		CreditsNeeded: credits,
	}, nil
}

func isPrefix(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// parseCount parses a whole number no smaller than least.
func parseCount(field, s string, least int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, fmt.Errorf("%s %q: %w", field, s, err)
	}
	if n < least {
		return 0, fmt.Errorf("%s %d is less than %d", field, n, least)
	}
	return n, nil
}
