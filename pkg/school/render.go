package school

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NoGrade is printed for courses that have not been graded.
const NoGrade = "N/A"

var sectionHeaders = []string{
	"Prefix", "Course number", "Section number", "Course name", "Times", "Instructor", "Building",
}

func renderSections(sections []Section, withCredits bool) string {
	headers := sectionHeaders
	if withCredits {
		headers = append(append([]string(nil), sectionHeaders...), "Credits needed")
	}

	rows := make([][]string, 0, len(sections))
	for _, s := range sections {
		row := []string{
			s.Prefix,
			strconv.Itoa(s.CourseNumber),
			strconv.Itoa(s.SectionNumber),
			s.Name,
			s.Times,
			s.Instructor,
			s.Building,
		}
		if withCredits {
			row = append(row, strconv.Itoa(s.CreditsNeeded))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

// Render prints the whole catalog, credits included.
func (c *Catalog) Render() string {
	return renderSections(c.sections, true)
}

// RenderSchedule prints the sections the student is enrolled in.
func (s *Student) RenderSchedule() string {
	return renderSections(s.schedule, false)
}

// RenderGrades prints one "COURSE: GRADE" line per grade entry.
func (s *Student) RenderGrades() string {
	var b strings.Builder
	for _, entry := range s.Grades() {
		grade := NoGrade
		if entry.Grade.Valid {
			grade = entry.Grade.String
		}
		b.WriteString(entry.Course)
		b.WriteString(": ")
		b.WriteString(grade)
		b.WriteString("\n")
	}
	return b.String()
}
