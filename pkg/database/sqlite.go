package database

import (
	"database/sql"
	"fmt"

	"github.com/go-gorp/gorp/v3"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/openswoop/registrar/pkg/persist"
	"github.com/openswoop/registrar/pkg/school"
)

// Sqlite is a local report database. Saving a snapshot again brings its
// students up to date.
type Sqlite struct {
	db    *sql.DB
	dbmap *gorp.DbMap
	log   *zap.Logger
}

func NewSqlite(file string, log *zap.Logger) (Sqlite, error) {
	sqlite := Sqlite{log: log}

	// Initialize the database connection
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return sqlite, fmt.Errorf("unable to connect to database: %w", err)
	}
	sqlite.db = db

	// Initialize the database mapping, creating the tables if it's our first run
	dbmap := &gorp.DbMap{Db: db, Dialect: gorp.SqliteDialect{}}
	dbmap.AddTableWithName(school.SectionRow{}, "sections").
		SetUniqueTogether("prefix", "course_number", "section_number")
	dbmap.AddTableWithName(school.StudentRow{}, "students").
		ColMap("Name").SetUnique(true)
	dbmap.AddTableWithName(school.EnrollmentRow{}, "enrollments").
		SetUniqueTogether("student", "prefix", "course_number", "section_number")
	dbmap.AddTableWithName(school.GradeRow{}, "grades").
		SetUniqueTogether("student", "course")
	if err := dbmap.CreateTablesIfNotExists(); err != nil {
		_ = db.Close()
		return sqlite, fmt.Errorf("unable to create tables: %w", err)
	}
	sqlite.dbmap = dbmap

	return sqlite, nil
}

// SaveSnapshot replaces every student in the snapshot along with their
// enrollments and grades. Sections are only ever added, and students from
// other sessions are kept.
func (s Sqlite) SaveSnapshot(snap school.Snapshot) error {
	return s.inTransaction(func(tx *gorp.Transaction) error {
		for _, student := range snap.Students {
			if err := deleteStudent(tx, student.Name); err != nil {
				return err
			}
		}
		return s.persist(tx, snap)
	})
}

func (s Sqlite) Save(v persist.Persistable) error {
	return s.inTransaction(func(tx *gorp.Transaction) error {
		return s.persist(tx, v)
	})
}

func (s Sqlite) inTransaction(fn func(tx *gorp.Transaction) error) error {
	tx, err := s.dbmap.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s Sqlite) persist(tx *gorp.Transaction, v persist.Persistable) error {
	var skipped int
	if err := v.Persist(persist.InsertIgnoringDupes(tx, &skipped)); err != nil {
		return err
	}
	if skipped > 0 {
		s.log.Debug("Skipped rows already in the database", zap.Int("rows", skipped))
	}
	return nil
}

func deleteStudent(tx *gorp.Transaction, name string) error {
	for _, table := range []string{"enrollments", "grades"} {
		if _, err := tx.Exec("delete from "+table+" where student = ?", name); err != nil {
			return fmt.Errorf("unable to clear %s of %q: %w", table, name, err)
		}
	}
	if _, err := tx.Exec("delete from students where name = ?", name); err != nil {
		return fmt.Errorf("unable to clear student %q: %w", name, err)
	}
	return nil
}

func (s Sqlite) Close() error {
	return s.db.Close()
}
