package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-exams-api/internal/models"
)

const staffColumns = "id, name, role, status, subjects, contact, qualification, created_at, updated_at"

// StaffRepository manages the facilitator roster.
type StaffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// List returns the roster in creation order. Facilitator resolution depends on this order.
func (r *StaffRepository) List(ctx context.Context) ([]models.StaffMember, error) {
	staff := []models.StaffMember{}
	query := "SELECT " + staffColumns + " FROM staff_members ORDER BY created_at ASC, id ASC"
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id string) (*models.StaffMember, error) {
	var member models.StaffMember
	if err := r.db.GetContext(ctx, &member, "SELECT "+staffColumns+" FROM staff_members WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *StaffRepository) Create(ctx context.Context, member *models.StaffMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now
	const query = `INSERT INTO staff_members (id, name, role, status, subjects, contact, qualification, created_at, updated_at)
        VALUES (:id, :name, :role, :status, :subjects, :contact, :qualification, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create staff member: %w", err)
	}
	return nil
}

func (r *StaffRepository) Update(ctx context.Context, member *models.StaffMember) error {
	member.UpdatedAt = time.Now().UTC()
	const query = `UPDATE staff_members SET name = :name, role = :role, status = :status, subjects = :subjects,
        contact = :contact, qualification = :qualification, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("update staff member: %w", err)
	}
	return nil
}

// Delete removes a staff member. It returns sql.ErrNoRows when nothing was deleted.
func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM staff_members WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete staff member: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
