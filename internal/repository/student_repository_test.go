package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-exams-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var studentRowColumns = []string{"id", "name", "department", "class_name", "gender", "date_of_birth", "guardian", "contact", "address",
	"attendance", "overall_remark", "final_remark", "recommendation", "created_at", "updated_at"}

func studentRow(rows *sqlmock.Rows, id, name string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, name, "Junior High School", "JHS 3", "Female", nil, "Guardian", "0240000000", "Accra",
		58, "", "", "", now, now)
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := studentRow(sqlmock.NewRows(studentRowColumns), "s1", "Ama Mensah")
	mock.ExpectQuery(`(?s)SELECT id, name, .* FROM students WHERE 1=1 AND department = \$1 AND LOWER\(name\) LIKE \$2 ORDER BY name ASC, id ASC LIMIT 10 OFFSET 10`).
		WithArgs("Junior High School", "%ama%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE 1=1 AND department = $1 AND LOWER(name) LIKE $2")).
		WithArgs("Junior High School", "%ama%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	students, total, err := repo.List(context.Background(), models.StudentFilter{Department: "Junior High School", Search: "AMA", Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Ama Mensah", students[0].Name)
	assert.Nil(t, students[0].DateOfBirth)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListByClass(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(studentRowColumns)
	studentRow(rows, "s1", "Ama")
	studentRow(rows, "s2", "Kofi")
	mock.ExpectQuery(`FROM students WHERE department = \$1 AND class_name = \$2 ORDER BY name ASC, id ASC`).
		WithArgs("Junior High School", "JHS 3").
		WillReturnRows(rows)

	students, err := repo.ListByClass(context.Background(), "Junior High School", "JHS 3")
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(`FROM students WHERE id = \$1`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	args := make([]driver.Value, 15)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	mock.ExpectExec("INSERT INTO students").WithArgs(args...).WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{Name: "Ama", Department: "Junior High School", ClassName: "JHS 3"}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	assert.False(t, student.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM student_scores WHERE student_id = $1")).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM student_scores").WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM students").WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListCohorts(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"department", "class_name"}).
		AddRow("Junior High School", "Basic 8").
		AddRow("Junior High School", "Basic 9")
	mock.ExpectQuery(`SELECT DISTINCT department, class_name FROM students ORDER BY department ASC, class_name ASC`).WillReturnRows(rows)

	cohorts, err := repo.ListCohorts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Cohort{
		{Department: "Junior High School", ClassName: "Basic 8"},
		{Department: "Junior High School", ClassName: "Basic 9"},
	}, cohorts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
