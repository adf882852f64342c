package report

import (
	"sort"

	"github.com/openswoop/registrar/pkg/school"
)

type studentView struct {
	Rank    int    `csv:"rank"`
	Name    string `csv:"name"`
	Age     int    `csv:"age"`
	Year    int    `csv:"year"`
	Credits int    `csv:"credits"`
	GPA     string `csv:"gpa"`

	gpa float64 `csv:"-"`
}

// WriteStudents writes the roster ordered from highest to lowest GPA.
// Students without a GPA sort last.
func WriteStudents(fileName string, snap school.Snapshot) error {
	rows := make(studentReport, 0, len(snap.Students))
	for _, s := range snap.Students {
		gpa := -1.0
		if s.GPA.Valid {
			gpa = s.GPA.Float64
		}
		rows = append(rows, studentView{
			Name:    s.Name,
			Age:     s.Age,
			Year:    s.Year,
			Credits: s.Credits,
			GPA:     parseNullFloat64(s.GPA),
			gpa:     gpa,
		})
	}

	sort.Stable(sort.Reverse(rows))
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return WriteCsv(rows, fileName)
}

type studentReport []studentView

func (r studentReport) Len() int {
	return len(r)
}

func (r studentReport) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

func (r studentReport) Less(i, j int) bool {
	return r[i].gpa < r[j].gpa
}
