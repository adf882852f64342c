package persist

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// Persistable is anything that knows how to write itself into a transaction.
type Persistable interface {
	Persist(tx Transaction) error
}

type Transaction interface {
	Insert(list ...interface{}) error
}

type InsertFunc func(...interface{}) error

func (f InsertFunc) Insert(list ...interface{}) error {
	return f(list...)
}

// InsertIgnoringDupes inserts rows one at a time, skipping the ones that
// violate a unique constraint. Skipped rows are added to skipped when it
// is not nil.
func InsertIgnoringDupes(t Transaction, skipped *int) Transaction {
	return InsertFunc(func(list ...interface{}) error {
		for _, row := range list {
			err := t.Insert(row)
			if IsDuplicate(err) {
				if skipped != nil {
					*skipped++
				}
				continue
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// IsDuplicate reports whether err is a SQLite unique constraint violation.
func IsDuplicate(err error) bool {
	var sqliteError sqlite3.Error
	if errors.As(err, &sqliteError) {
		return sqliteError.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
