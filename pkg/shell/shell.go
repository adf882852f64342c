// Package shell is the interactive text menu in front of a school.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/openswoop/registrar/pkg/report"
	"github.com/openswoop/registrar/pkg/school"
)

const (
	studentMenu = `What would you like to do?
1. Add class
2. Drop class
3. Print schedule
4. Exit
`
	schoolMenu = `What would you like to do?
1. Add multiple students
2. Add single student
3. Add course
4. Print student transcript
5. Get student stats
6. School stats
7. Give grade
8. Top five students
9. Exit
`
)

// errQuit ends a session; it is raised when the input runs out.
var errQuit = errors.New("quit")

type Shell struct {
	school *school.School
	in     *bufio.Scanner
	out    io.Writer
	log    *zap.Logger
}

func New(s *school.School, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{
		school: s,
		in:     bufio.NewScanner(in),
		out:    out,
		log:    log,
	}
}

// Run asks which perspective the user is coming from and runs that menu
// until they exit or the input ends.
func (sh *Shell) Run() error {
	err := sh.run()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (sh *Shell) run() error {
	for {
		perspective, err := sh.prompt("Hello, are you accessing from a student or school perspective? 1 for student, 2 for school: ")
		if err != nil {
			return err
		}
		switch perspective {
		case "1":
			return sh.studentSession()
		case "2":
			return sh.schoolSession()
		}
		sh.printf("Please enter 1 or 2.\n")
	}
}

func (sh *Shell) studentSession() error {
	name, err := sh.prompt(`Please enter your full name in format "fname lname": `)
	if err != nil {
		return err
	}
	if _, err := sh.school.Student(name); errors.Is(err, school.ErrNotFound) {
		sh.printf("Welcome, %s! Looks like you are new here.\n", name)
		if err := sh.addStudent(name); err != nil {
			return err
		}
	}

	for {
		option, err := sh.prompt(studentMenu)
		if err != nil {
			return err
		}
		sh.log.Debug("Student menu", zap.String("student", name), zap.String("option", option))

		var opErr error
		switch option {
		case "1":
			opErr = sh.enroll(name)
		case "2":
			opErr = sh.drop(name)
		case "3":
			opErr = sh.printSchedule(name)
		case "4":
			sh.printf("Goodbye!\n")
			return nil
		default:
			sh.printf("Unknown option %q.\n", option)
			continue
		}
		if err := sh.report(opErr); err != nil {
			return err
		}
	}
}

func (sh *Shell) schoolSession() error {
	for {
		option, err := sh.prompt(schoolMenu)
		if err != nil {
			return err
		}
		sh.log.Debug("School menu", zap.String("option", option))

		var opErr error
		switch option {
		case "1":
			opErr = sh.addMultipleStudents()
		case "2":
			opErr = sh.addSingleStudent()
		case "3":
			opErr = sh.addCourse()
		case "4":
			opErr = sh.printTranscript()
		case "5":
			sh.printf("Here is the GPA distribution of the students currently enrolled.\n%s\n",
				report.Chart(sh.school.GPADistribution()))
		case "6":
			sh.printf("%s\n", sh.school)
		case "7":
			opErr = sh.giveGrade()
		case "8":
			opErr = sh.topFive()
		case "9":
			sh.printf("Goodbye!\n")
			return nil
		default:
			sh.printf("Unknown option %q.\n", option)
			continue
		}
		if err := sh.report(opErr); err != nil {
			return err
		}
	}
}

// report prints the outcome of a menu action. Only running out of input
// ends the session; every other error goes back to the menu.
func (sh *Shell) report(err error) error {
	switch {
	case err == nil:
		sh.printf("Complete!\n")
	case errors.Is(err, errQuit):
		return err
	case errors.Is(err, school.ErrInsufficientCredits):
		sh.printf("You do not have enough credits for this class: %v\n", err)
	default:
		sh.printf("Error: %v\n", err)
	}
	return nil
}

func (sh *Shell) enroll(name string) error {
	sh.printf("%s\n\n", sh.school.Catalog().Render())
	prefix, err := sh.prompt("Please enter the course prefix: ")
	if err != nil {
		return err
	}
	course, err := sh.promptInt("Please enter the course number: ")
	if err != nil {
		return err
	}
	section, err := sh.promptInt("Please enter the section number: ")
	if err != nil {
		return err
	}
	return sh.school.Enroll(name, prefix, course, section)
}

func (sh *Shell) drop(name string) error {
	prefix, err := sh.prompt("Please enter the course prefix: ")
	if err != nil {
		return err
	}
	course, err := sh.promptInt("Please enter the course number: ")
	if err != nil {
		return err
	}
	return sh.school.Drop(name, prefix, course)
}

func (sh *Shell) printSchedule(name string) error {
	student, err := sh.school.Student(name)
	if err != nil {
		return err
	}
	sh.printf("%s\n", student.RenderSchedule())
	return nil
}

func (sh *Shell) addMultipleStudents() error {
	path, err := sh.prompt("Please enter a file path to students you would like to add: ")
	if err != nil {
		return err
	}
	n, err := sh.school.LoadRoster(path)
	if err != nil {
		return err
	}
	sh.printf("Added %d students.\n", n)
	return nil
}

func (sh *Shell) addSingleStudent() error {
	name, err := sh.prompt("Please enter the student name: ")
	if err != nil {
		return err
	}
	return sh.addStudent(name)
}

func (sh *Shell) addStudent(name string) error {
	age, err := sh.promptInt("Please enter the age: ")
	if err != nil {
		return err
	}
	year, err := sh.promptInt("Please enter the class (graduation year): ")
	if err != nil {
		return err
	}
	credits, err := sh.promptInt("How many credits are you enrolling with?: ")
	if err != nil {
		return err
	}
	_, err = sh.school.AddStudent(name, age, year, credits)
	return err
}

func (sh *Shell) addCourse() error {
	var record school.SectionRecord
	fields := []struct {
		prompt string
		value  *string
	}{
		{"Enter the course prefix: ", &record.Prefix},
		{"Enter the course number: ", &record.CourseNumber},
		{"Enter the section number: ", &record.SectionNumber},
		{"Enter the course name: ", &record.Name},
		{"Enter the start time of the class: ", &record.Times},
		{"Enter the instructor name: ", &record.Instructor},
		{"Enter the class location: ", &record.Building},
		{"Enter the credits needed: ", &record.CreditsNeeded},
	}
	for _, f := range fields {
		value, err := sh.prompt(f.prompt)
		if err != nil {
			return err
		}
		*f.value = value
	}

	section, err := record.Section()
	if err != nil {
		return err
	}
	sh.school.AddCourseSection(section)
	return nil
}

func (sh *Shell) printTranscript() error {
	name, err := sh.prompt("Please enter the student: ")
	if err != nil {
		return err
	}
	student, err := sh.school.Student(name)
	if err != nil {
		return err
	}
	grades := student.RenderGrades()
	if grades == "" {
		grades = "No courses on record.\n"
	}
	sh.printf("%s", grades)
	return nil
}

func (sh *Shell) giveGrade() error {
	sh.printf("%s\n\n", sh.school.Catalog().Render())
	name, err := sh.prompt("Please enter the student name to give a grade: ")
	if err != nil {
		return err
	}
	prefix, err := sh.prompt("Please enter the course prefix: ")
	if err != nil {
		return err
	}
	course, err := sh.promptInt("Please enter the course number: ")
	if err != nil {
		return err
	}
	grade, err := sh.prompt("Please enter the grade you wish to give the student: ")
	if err != nil {
		return err
	}
	return sh.school.AssignGrade(name, school.CourseKey(prefix, course), grade)
}

func (sh *Shell) topFive() error {
	names, err := sh.school.RankStudents(5)
	if err != nil {
		return err
	}
	sh.printf("The top five students with the highest GPA starting from greatest to least are %s.\n",
		strings.Join(names, ", "))
	return nil
}

func (sh *Shell) prompt(msg string) (string, error) {
	sh.printf("%s", msg)
	if !sh.in.Scan() {
		if err := sh.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(sh.in.Text()), nil
}

// promptInt asks until it gets a whole number.
func (sh *Shell) promptInt(msg string) (int, error) {
	for {
		text, err := sh.prompt(msg)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err == nil {
			return n, nil
		}
		sh.printf("Please enter a whole number.\n")
	}
}

func (sh *Shell) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(sh.out, format, a...)
}
