package school

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RosterEntry is one parsed roster line.
type RosterEntry struct {
	Name    string
	Age     int
	Year    int
	Credits int
}

// ParseRosterLine parses "First Last, age, year, credits".
func ParseRosterLine(line string) (RosterEntry, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 4 {
		return RosterEntry{}, fmt.Errorf("expected 4 comma separated fields, got %d", len(fields))
	}

	names := strings.Fields(fields[0])
	if len(names) != 2 {
		return RosterEntry{}, fmt.Errorf("expected a first and last name, got %d names", len(names))
	}

	age, err := parseCount("age", fields[1], 0)
	if err != nil {
		return RosterEntry{}, err
	}
	year, err := parseCount("year", fields[2], 0)
	if err != nil {
		return RosterEntry{}, err
	}
	credits, err := parseCount("credits", fields[3], 0)
	if err != nil {
		return RosterEntry{}, err
	}

	return RosterEntry{
		Name:    names[0] + " " + names[1],
		Age:     age,
		Year:    year,
		Credits: credits,
	}, nil
}

// ReadRosterEntries parses every non-blank line, stopping at the first bad one.
func ReadRosterEntries(r io.Reader, source string) ([]RosterEntry, error) {
	var entries []RosterEntry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		entry, err := ParseRosterLine(text)
		if err != nil {
			return nil, &ParseError{Source: source, Line: line, Text: text, Err: err}
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
