package school

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openswoop/registrar/pkg/persist"
)

func TestSnapshot(t *testing.T) {
	s := testSchool(t)
	_, err := s.AddStudent("Jane Doe", 20, 2025, 15)
	require.NoError(t, err)
	_, err = s.AddStudent("John Roe", 19, 2026, 0)
	require.NoError(t, err)
	require.NoError(t, s.Enroll("Jane Doe", "MATH", 140, 101))
	require.NoError(t, s.Enroll("Jane Doe", "CMSC", 131, 101))
	require.NoError(t, s.AssignGrade("Jane Doe", "MATH140", "B"))

	snap := s.Snapshot()
	assert.Len(t, snap.Sections, 4)
	require.Len(t, snap.Students, 2)
	assert.Equal(t, sql.NullFloat64{Float64: 3, Valid: true}, snap.Students[0].GPA)
	assert.False(t, snap.Students[1].GPA.Valid)

	require.Len(t, snap.Enrollments, 2)
	assert.Equal(t, "Jane Doe", snap.Enrollments[0].Student)
	assert.Equal(t, "MATH", snap.Enrollments[0].Prefix)

	assert.Equal(t, []GradeRow{
		{Student: "Jane Doe", Course: "MATH140", Grade: sql.NullString{String: "B", Valid: true}},
		{Student: "Jane Doe", Course: "CMSC131"},
	}, snap.Grades)
}

func TestSnapshotPersist(t *testing.T) {
	s := testSchool(t)
	_, err := s.AddStudent("Jane Doe", 20, 2025, 15)
	require.NoError(t, err)
	require.NoError(t, s.Enroll("Jane Doe", "MATH", 140, 101))

	var inserted []interface{}
	tx := persist.InsertFunc(func(rows ...interface{}) error {
		inserted = append(inserted, rows...)
		return nil
	})
	require.NoError(t, s.Snapshot().Persist(tx))

	// 4 sections, 1 student, 1 enrollment, 1 grade
	require.Len(t, inserted, 7)
	assert.IsType(t, &SectionRow{}, inserted[0])
	assert.IsType(t, &StudentRow{}, inserted[4])
	assert.IsType(t, &EnrollmentRow{}, inserted[5])
	assert.IsType(t, &GradeRow{}, inserted[6])
}
