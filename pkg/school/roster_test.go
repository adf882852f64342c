package school

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRosterLine(t *testing.T) {
	entry, err := ParseRosterLine("  Jane   Doe, 20, 2025, 15  ")
	require.NoError(t, err)
	assert.Equal(t, RosterEntry{Name: "Jane Doe", Age: 20, Year: 2025, Credits: 15}, entry)
}

func TestParseRosterLineRejects(t *testing.T) {
	for _, line := range []string{
		"Jane Doe, 20, 2025",
		"Jane Doe, 20, 2025, 15, 4",
		"Jane, 20, 2025, 15",
		"Jane Q Doe, 20, 2025, 15",
		"Jane Doe, twenty, 2025, 15",
		"Jane Doe, 20, 2025, -15",
		"Jane Doe, 20, , 15",
	} {
		_, err := ParseRosterLine(line)
		assert.Error(t, err, line)
	}
}

func TestReadRosterEntriesSkipsBlankLines(t *testing.T) {
	entries, err := ReadRosterEntries(strings.NewReader("\nJane Doe, 20, 2025, 15\n   \nJohn Roe, 19, 2026, 30\n"), "roster")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "John Roe", entries[1].Name)
}

func TestReadRosterEntriesReportsLine(t *testing.T) {
	_, err := ReadRosterEntries(strings.NewReader("Jane Doe, 20, 2025, 15\n\nbad line\n"), "students.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "students.txt:3")
	assert.Contains(t, err.Error(), "bad line")
}
