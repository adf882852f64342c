package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"

	"github.com/openswoop/registrar/pkg/school"
)

type BigQuery struct {
	ctx       context.Context
	client    *bigquery.Client
	dataset   *bigquery.Dataset
	datasetID string
}

func NewBigQuery(ctx context.Context, projectID, datasetID string) (BigQuery, error) {
	var bq BigQuery

	// Set up BigQuery
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return bq, fmt.Errorf("failed to create client: %w", err)
	}

	dataset := client.Dataset(datasetID)
	if err := dataset.Create(ctx, nil); err != nil {
		if !isDuplicateError(err) {
			_ = client.Close()
			return bq, fmt.Errorf("failed to create dataset: %w", err)
		}
	}

	bq = BigQuery{ctx, client, dataset, datasetID}
	return bq, nil
}

type bqSection struct {
	school.Section
}

type bqStudent struct {
	Name    string               `bigquery:"name"`
	Age     int                  `bigquery:"age"`
	Year    int                  `bigquery:"year"`
	Credits int                  `bigquery:"credits"`
	GPA     bigquery.NullFloat64 `bigquery:"gpa"`
}

type bqEnrollment struct {
	Student string `bigquery:"student"`
	school.Section
}

type bqGrade struct {
	Student string              `bigquery:"student"`
	Course  string              `bigquery:"course"`
	Grade   bigquery.NullString `bigquery:"grade"`
}

// bigQueryRows converts a snapshot into the row types BigQuery can infer a
// schema from. Database ids are dropped.
func bigQueryRows(snap school.Snapshot) ([]bqSection, []bqStudent, []bqEnrollment, []bqGrade) {
	sections := make([]bqSection, 0, len(snap.Sections))
	for _, s := range snap.Sections {
		sections = append(sections, bqSection{s.Section})
	}
	students := make([]bqStudent, 0, len(snap.Students))
	for _, s := range snap.Students {
		students = append(students, bqStudent{
			Name:    s.Name,
			Age:     s.Age,
			Year:    s.Year,
			Credits: s.Credits,
			GPA:     bigquery.NullFloat64{Float64: s.GPA.Float64, Valid: s.GPA.Valid},
		})
	}
	enrollments := make([]bqEnrollment, 0, len(snap.Enrollments))
	for _, e := range snap.Enrollments {
		enrollments = append(enrollments, bqEnrollment{e.Student, e.Section})
	}
	grades := make([]bqGrade, 0, len(snap.Grades))
	for _, g := range snap.Grades {
		grades = append(grades, bqGrade{
			Student: g.Student,
			Course:  g.Course,
			Grade:   bigquery.NullString{StringVal: g.Grade.String, Valid: g.Grade.Valid},
		})
	}
	return sections, students, enrollments, grades
}

func (bq BigQuery) SaveSnapshot(snap school.Snapshot) error {
	sections, students, enrollments, grades := bigQueryRows(snap)

	// Sections never change once offered, so only new ones are inserted
	if err := bq.insert(bqSection{}, "sections", sections,
		[]string{"prefix", "course_number", "section_number"}, "", nil); err != nil {
		return fmt.Errorf("failed to insert sections: %w", err)
	}
	if err := bq.insert(bqStudent{}, "students", students, []string{"name"}, `
		WHEN MATCHED THEN
		  UPDATE SET credits = s.credits, gpa = s.gpa`, nil); err != nil {
		return fmt.Errorf("failed to insert students: %w", err)
	}
	// Dropped courses only disappear for students in this snapshot
	if err := bq.insert(bqEnrollment{}, "enrollments", enrollments,
		[]string{"student", "prefix", "course_number", "section_number"}, dropEnrollments,
		[]bigquery.QueryParameter{{Name: "students", Value: studentNames(snap)}}); err != nil {
		return fmt.Errorf("failed to insert enrollments: %w", err)
	}
	if err := bq.insert(bqGrade{}, "grades", grades, []string{"student", "course"}, `
		WHEN MATCHED THEN
		  UPDATE SET grade = s.grade`, nil); err != nil {
		return fmt.Errorf("failed to insert grades: %w", err)
	}
	return nil
}

const dropEnrollments = `
		WHEN NOT MATCHED BY SOURCE AND t.student IN UNNEST(@students) THEN
		  DELETE`

func studentNames(snap school.Snapshot) []string {
	names := make([]string, 0, len(snap.Students))
	for _, s := range snap.Students {
		names = append(names, s.Name)
	}
	return names
}

func (bq BigQuery) insert(st interface{}, tableName string, data interface{}, keys []string, whenClause string, params []bigquery.QueryParameter) error {
	// Infer the table schema
	schema, err := bigquery.InferSchema(st)
	if err != nil {
		return fmt.Errorf("failed to infer schema: %w", err)
	}

	// Get a reference to the table
	table := bq.dataset.Table(tableName)
	if err := table.Create(bq.ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		if !isDuplicateError(err) {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Stage the rows in a table of their own, then merge them in
	tempName := tableName + "_" + strconv.FormatInt(time.Now().Unix(), 10)
	arrivals := bq.dataset.Table(tempName)
	if err := arrivals.Create(bq.ctx, &bigquery.TableMetadata{
		Schema:         schema,
		ExpirationTime: time.Now().Add(24 * time.Hour),
	}); err != nil {
		if !isDuplicateError(err) {
			return fmt.Errorf("failed to create arrivals table: %w", err)
		}
	}

	// Upload data
	if err := arrivals.Inserter().Put(bq.ctx, data); err != nil {
		return fmt.Errorf("failed to insert rows: %w", err)
	}

	q := bq.client.Query(mergeQuery(bq.datasetID, tableName, tempName, keys, whenClause))
	q.Parameters = params
	job, err := q.Run(bq.ctx)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	status, err := job.Wait(bq.ctx)
	if err != nil {
		return fmt.Errorf("failed to wait for query: %w", err)
	}
	return status.Err()
}

func mergeQuery(dataset, target, source string, keys []string, whenClause string) string {
	on := make([]string, len(keys))
	for i, key := range keys {
		on[i] = fmt.Sprintf("t.%s = s.%s", key, key)
	}
	return fmt.Sprintf(`
		MERGE %s.%s t
		USING %s.%s s
		ON %s
		%s
		WHEN NOT MATCHED THEN
		  INSERT ROW`, dataset, target, dataset, source, strings.Join(on, "\n\t\t  AND "), whenClause)
}

func (bq BigQuery) Close() error {
	return bq.client.Close()
}

func isDuplicateError(err error) bool {
	var e *googleapi.Error
	if errors.As(err, &e) {
		return e.Code == 409
	}
	return false
}
