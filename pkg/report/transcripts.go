package report

import (
	"github.com/openswoop/registrar/pkg/school"
)

type transcriptView struct {
	Student string `csv:"student"`
	Course  string `csv:"course"`
	Grade   string `csv:"grade"`
}

// WriteTranscripts writes one row per grade entry, ungraded courses included.
func WriteTranscripts(fileName string, snap school.Snapshot) error {
	rows := make([]transcriptView, 0, len(snap.Grades))
	for _, g := range snap.Grades {
		rows = append(rows, transcriptView{
			Student: g.Student,
			Course:  g.Course,
			Grade:   parseNullString(g.Grade),
		})
	}
	return WriteCsv(rows, fileName)
}

// WriteSections writes the catalog in the same layout it is loaded from.
func WriteSections(fileName string, snap school.Snapshot) error {
	rows := make([]school.Section, 0, len(snap.Sections))
	for _, s := range snap.Sections {
		rows = append(rows, s.Section)
	}
	return WriteCsv(rows, fileName)
}
