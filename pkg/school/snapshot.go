package school

import (
	"database/sql"

	"github.com/openswoop/registrar/pkg/persist"
)

type PrimaryKey struct {
	ID uint64 `db:"id,primarykey,autoincrement" csv:"-" bigquery:"-"`
}

type SectionRow struct {
	PrimaryKey
	Section
}

type StudentRow struct {
	PrimaryKey
	Name    string          `db:"name" csv:"name"`
	Age     int             `db:"age" csv:"age"`
	Year    int             `db:"year" csv:"year"`
	Credits int             `db:"credits" csv:"credits"`
	GPA     sql.NullFloat64 `db:"gpa" csv:"-"` // null without a countable grade
}

type EnrollmentRow struct {
	PrimaryKey
	Student string `db:"student" csv:"student"`
	Section
}

type GradeRow struct {
	PrimaryKey
	Student string         `db:"student" csv:"student"`
	Course  string         `db:"course" csv:"course"`
	Grade   sql.NullString `db:"grade" csv:"-"`
}

// Snapshot is a flat, table shaped copy of a school's state for reports
// and exports.
type Snapshot struct {
	Sections    []SectionRow
	Students    []StudentRow
	Enrollments []EnrollmentRow
	Grades      []GradeRow
}

// Snapshot copies the catalog and every student into rows.
func (s *School) Snapshot() Snapshot {
	var snap Snapshot
	for _, section := range s.catalog.sections {
		snap.Sections = append(snap.Sections, SectionRow{Section: section})
	}
	for _, student := range s.students {
		row := StudentRow{
			Name:    student.Name,
			Age:     student.Age,
			Year:    student.Year,
			Credits: student.Credits,
		}
		if gpa, err := student.ComputeGPA(); err == nil {
			row.GPA = sql.NullFloat64{Float64: gpa, Valid: true}
		}
		snap.Students = append(snap.Students, row)

		for _, section := range student.schedule {
			snap.Enrollments = append(snap.Enrollments, EnrollmentRow{Student: student.Name, Section: section})
		}
		for _, entry := range student.Grades() {
			snap.Grades = append(snap.Grades, GradeRow{Student: student.Name, Course: entry.Course, Grade: entry.Grade})
		}
	}
	return snap
}

// Persist inserts every row, sections first.
func (snap Snapshot) Persist(tx persist.Transaction) error {
	for i := range snap.Sections {
		if err := tx.Insert(&snap.Sections[i]); err != nil {
			return err
		}
	}
	for i := range snap.Students {
		if err := tx.Insert(&snap.Students[i]); err != nil {
			return err
		}
	}
	for i := range snap.Enrollments {
		if err := tx.Insert(&snap.Enrollments[i]); err != nil {
			return err
		}
	}
	for i := range snap.Grades {
		if err := tx.Insert(&snap.Grades[i]); err != nil {
			return err
		}
	}
	return nil
}
