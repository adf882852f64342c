package report

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/openswoop/registrar/pkg/school"
)

// WriteCsv marshals a slice of rows into fileName, replacing the file.
func WriteCsv(in interface{}, fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(in, file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteAll writes every report for a snapshot into dir and returns the
// files written.
func WriteAll(dir string, snap school.Snapshot, dist school.Distribution) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	reports := []struct {
		name  string
		write func(string) error
	}{
		{"students.csv", func(f string) error { return WriteStudents(f, snap) }},
		{"transcripts.csv", func(f string) error { return WriteTranscripts(f, snap) }},
		{"sections.csv", func(f string) error { return WriteSections(f, snap) }},
		{"distribution.csv", func(f string) error { return WriteDistribution(f, dist) }},
	}

	var written []string
	for _, r := range reports {
		fileName := filepath.Join(dir, r.name)
		if err := r.write(fileName); err != nil {
			return written, err
		}
		written = append(written, fileName)
	}
	return written, nil
}

func parseNullString(n sql.NullString) string {
	if !n.Valid {
		return school.NoGrade
	}
	return n.String
}

func parseNullFloat64(n sql.NullFloat64) string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Float64, 'f', 2, 64)
}
