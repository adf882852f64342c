package database

import (
	"io"

	"github.com/openswoop/registrar/pkg/school"
)

// Database is somewhere a school snapshot can be exported to.
type Database interface {
	io.Closer
	SaveSnapshot(school.Snapshot) error
}
