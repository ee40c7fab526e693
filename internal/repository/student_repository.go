package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-exams-api/internal/models"
)

const studentColumns = `id, name, department, class_name, gender, date_of_birth, guardian, contact, address, attendance,
        overall_remark, final_remark, recommendation, created_at, updated_at`

// StudentRepository manages persistence for enrolled students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns one page of students matching filter together with the total match count.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}
	if filter.ClassName != "" {
		args = append(args, filter.ClassName)
		conditions = append(conditions, fmt.Sprintf("class_name = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	query := fmt.Sprintf("SELECT %s FROM students WHERE %s ORDER BY name ASC, id ASC LIMIT %d OFFSET %d",
		studentColumns, where, size, (page-1)*size)

	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// ListByClass returns every student of a department class in name order.
func (r *StudentRepository) ListByClass(ctx context.Context, department, className string) ([]models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE department = $1"
	args := []interface{}{department}
	if className != "" {
		query += " AND class_name = $2"
		args = append(args, className)
	}
	query += " ORDER BY name ASC, id ASC"

	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list class students: %w", err)
	}
	return students, nil
}

// ListCohorts returns every department class with enrolled students.
func (r *StudentRepository) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	cohorts := []models.Cohort{}
	const query = "SELECT DISTINCT department, class_name FROM students ORDER BY department ASC, class_name ASC"
	if err := r.db.SelectContext(ctx, &cohorts, query); err != nil {
		return nil, fmt.Errorf("list cohorts: %w", err)
	}
	return cohorts, nil
}

// FindByID fetches a student. It returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := r.db.GetContext(ctx, &student, "SELECT "+studentColumns+" FROM students WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, name, department, class_name, gender, date_of_birth, guardian, contact, address, attendance,
        overall_remark, final_remark, recommendation, created_at, updated_at)
        VALUES (:id, :name, :department, :class_name, :gender, :date_of_birth, :guardian, :contact, :address, :attendance,
        :overall_remark, :final_remark, :recommendation, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update overwrites bio-data and remark fields.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET name = :name, department = :department, class_name = :class_name, gender = :gender,
        date_of_birth = :date_of_birth, guardian = :guardian, contact = :contact, address = :address, attendance = :attendance,
        overall_remark = :overall_remark, final_remark = :final_remark, recommendation = :recommendation, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student and their scores. It returns sql.ErrNoRows when nothing was deleted.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete student: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM student_scores WHERE student_id = $1", id); err != nil {
		return fmt.Errorf("delete student scores: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete student: %w", err)
	}
	return nil
}
