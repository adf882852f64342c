package school

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))

	require.NoError(t, student.Enroll("INST", 326, 101))

	schedule := student.Schedule()
	require.Len(t, schedule, 1)
	assert.Equal(t, "INST", schedule[0].Prefix)

	grade, ok := student.Grade("INST326")
	require.True(t, ok)
	assert.False(t, grade.Valid)
	assert.Len(t, student.Grades(), 1)
}

func TestEnrollWithoutEnoughCredits(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))

	err := student.Enroll("CMSC", 132, 201)
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Empty(t, student.Schedule())
	assert.Empty(t, student.Grades())
}

func TestEnrollDoesNotDeductCredits(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))

	// 15 credits clears a 15 credit course any number of times
	require.NoError(t, student.Enroll("INST", 326, 101))
	require.NoError(t, student.Enroll("MATH", 140, 101))
	assert.Equal(t, 15, student.Credits)
	assert.Len(t, student.Schedule(), 2)
}

func TestEnrollUnknownSection(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))

	err := student.Enroll("CMSC", 999, 101)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, student.Schedule())
}

func TestReenrollResetsGrade(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))
	require.NoError(t, student.Enroll("MATH", 140, 101))
	student.AssignGrade("MATH140", "B")
	require.NoError(t, student.Drop("MATH", 140))
	assert.Equal(t, 3.0, student.GPA())

	require.NoError(t, student.Enroll("MATH", 140, 101))
	grade, _ := student.Grade("MATH140")
	assert.False(t, grade.Valid)
	assert.Len(t, student.Grades(), 1)

	// The cached GPA follows the reset grade
	_, err := student.ComputeGPA()
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, 0.0, student.GPA())
	assert.Equal(t, "0.0", bucket(student.GPA()))
}

func TestDrop(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))
	require.NoError(t, student.Enroll("CMSC", 131, 101))
	require.NoError(t, student.Enroll("MATH", 140, 101))
	require.NoError(t, student.Enroll("CMSC", 131, 101))

	require.NoError(t, student.Drop("CMSC", 131))

	schedule := student.Schedule()
	require.Len(t, schedule, 2)
	assert.Equal(t, "MATH", schedule[0].Prefix)
	assert.Equal(t, "CMSC", schedule[1].Prefix)

	// The grade record outlives the schedule entry
	_, ok := student.Grade("CMSC131")
	assert.True(t, ok)
}

func TestDropNotEnrolled(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))
	require.NoError(t, student.Enroll("MATH", 140, 101))

	err := student.Drop("CMSC", 131)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, student.Schedule(), 1)
}

func TestComputeGPA(t *testing.T) {
	tests := []struct {
		name   string
		grades map[string]string
		want   float64
	}{
		{"A and B", map[string]string{"CMSC131": "A", "MATH140": "B"}, 3.5},
		{"all letters", map[string]string{"A100": "A", "B100": "B", "C100": "C", "D100": "D"}, 2.5},
		{"lowercase", map[string]string{"CMSC131": "c"}, 2.0},
		{"ignores F", map[string]string{"CMSC131": "A", "MATH140": "F"}, 4.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student := NewStudent("Jane Doe", 20, 2025, 15, NewCatalog())
			for course, grade := range tt.grades {
				student.AssignGrade(course, grade)
			}

			gpa, err := student.ComputeGPA()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, gpa, 1e-9)
			assert.InDelta(t, tt.want, student.GPA(), 1e-9)
		})
	}
}

func TestComputeGPAWithoutGrades(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))
	_, err := student.ComputeGPA()
	assert.ErrorIs(t, err, ErrInsufficientData)

	require.NoError(t, student.Enroll("MATH", 140, 101))
	_, err = student.ComputeGPA()
	assert.ErrorIs(t, err, ErrInsufficientData)

	student.AssignGrade("MATH140", "F")
	_, err = student.ComputeGPA()
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Zero(t, student.GPA())
}

func TestAssignGradeWithoutEnrollment(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))
	student.AssignGrade("HIST200", " a ")

	grade, ok := student.Grade("HIST200")
	require.True(t, ok)
	assert.Equal(t, sql.NullString{String: "A", Valid: true}, grade)
	assert.Equal(t, 4.0, student.GPA())
}

func TestAssignEmptyGradeClears(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))
	student.AssignGrade("MATH140", "B")
	student.AssignGrade("MATH140", "")

	grade, _ := student.Grade("MATH140")
	assert.False(t, grade.Valid)
	assert.Zero(t, student.GPA())
}

func TestRenderGrades(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))
	require.NoError(t, student.Enroll("MATH", 140, 101))
	require.NoError(t, student.Enroll("CMSC", 131, 101))
	student.AssignGrade("CMSC131", "A")

	assert.Equal(t, "MATH140: N/A\nCMSC131: A\n", student.RenderGrades())
}

func TestRenderSchedule(t *testing.T) {
	student := NewStudent("Jane Doe", 20, 2025, 15, testCatalog(t))
	require.NoError(t, student.Enroll("MATH", 140, 101))

	out := student.RenderSchedule()
	assert.Contains(t, out, "Calculus I")
	assert.Contains(t, out, "Gauss")
	assert.NotContains(t, out, "Credits needed")
}
