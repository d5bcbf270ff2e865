package internship

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"campus/internal/adapters/storage"
	domain "campus/internal/domain/internship"
)

const enrollmentColumns = "id, student_id, internship_id, status, project_submission, project_status, certificate_id, created_at, completed_at"

// EnrollmentSQLiteStore implements EnrollmentStore using SQLite.
type EnrollmentSQLiteStore struct {
	db storage.SQLDB
}

// NewEnrollmentSQLiteStore creates a new internship enrollment store.
func NewEnrollmentSQLiteStore(db storage.SQLDB) *EnrollmentSQLiteStore {
	return &EnrollmentSQLiteStore{db: db}
}

func scanEnrollment(row interface{ Scan(...any) error }) (domain.Enrollment, error) {
	var entity domain.Enrollment
	var submission, certificateID, createdAt, completedAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.StudentID,
		&entity.InternshipID,
		&entity.Status,
		&submission,
		&entity.ProjectStatus,
		&certificateID,
		&createdAt,
		&completedAt,
	)
	if submission.Valid {
		entity.ProjectSubmission = submission.String
	}
	if certificateID.Valid {
		entity.CertificateID = certificateID.String
	}
	entity.CreatedAt = storage.ParseTime(createdAt)
	entity.CompletedAt = storage.ParseTime(completedAt)
	return entity, err
}

// GetByID retrieves an Enrollment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *EnrollmentSQLiteStore) GetByID(ctx context.Context, id string) (domain.Enrollment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+enrollmentColumns+" FROM internship_enrollment WHERE id = ?", id)
	entity, err := scanEnrollment(row)
	if err == sql.ErrNoRows {
		return domain.Enrollment{}, fmt.Errorf("internship enrollment not found: %w", err)
	}
	return entity, err
}

// GetByStudentAndInternship retrieves the enrollment for a
// (student, internship) pair. At most one exists.
// PRE: studentID and internshipID are non-empty
// POST: Returns the entity or an error if not found
func (s *EnrollmentSQLiteStore) GetByStudentAndInternship(ctx context.Context, studentID, internshipID string) (domain.Enrollment, error) {
	query := "SELECT " + enrollmentColumns + " FROM internship_enrollment WHERE student_id = ? AND internship_id = ?"
	row := s.db.QueryRowContext(ctx, query, studentID, internshipID)
	entity, err := scanEnrollment(row)
	if err == sql.ErrNoRows {
		return domain.Enrollment{}, fmt.Errorf("internship enrollment not found: %w", err)
	}
	return entity, err
}

// GetByCertificateID retrieves the enrollment a certificate was issued for.
// PRE: certificateID is non-empty
// POST: Returns the entity or an error if not found
func (s *EnrollmentSQLiteStore) GetByCertificateID(ctx context.Context, certificateID string) (domain.Enrollment, error) {
	query := "SELECT " + enrollmentColumns + " FROM internship_enrollment WHERE certificate_id = ?"
	row := s.db.QueryRowContext(ctx, query, certificateID)
	entity, err := scanEnrollment(row)
	if err == sql.ErrNoRows {
		return domain.Enrollment{}, fmt.Errorf("internship enrollment not found: %w", err)
	}
	return entity, err
}

// Save persists an Enrollment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *EnrollmentSQLiteStore) Save(ctx context.Context, entity domain.Enrollment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO internship_enrollment (" + enrollmentColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET status=excluded.status, " +
		"project_submission=excluded.project_submission, project_status=excluded.project_status, " +
		"certificate_id=excluded.certificate_id, completed_at=excluded.completed_at"

	var submission, certificateID any
	if entity.ProjectSubmission != "" {
		submission = entity.ProjectSubmission
	}
	if entity.CertificateID != "" {
		certificateID = entity.CertificateID
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.StudentID,
		entity.InternshipID,
		entity.Status,
		submission,
		entity.ProjectStatus,
		certificateID,
		storage.FormatTime(entity.CreatedAt),
		storage.FormatTime(entity.CompletedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Enrollment from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *EnrollmentSQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM internship_enrollment WHERE id = ?", id)
	return err
}

// ListByStudent retrieves a student's internship enrollments, newest first.
// PRE: studentID is non-empty
// POST: Returns entities ordered by creation time descending
func (s *EnrollmentSQLiteStore) ListByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error) {
	query := "SELECT " + enrollmentColumns + " FROM internship_enrollment WHERE student_id = ? ORDER BY created_at DESC"
	return s.list(ctx, query, studentID)
}

// ListByInternship retrieves an internship's enrollments, newest first.
// PRE: internshipID is non-empty
// POST: Returns entities ordered by creation time descending
func (s *EnrollmentSQLiteStore) ListByInternship(ctx context.Context, internshipID string) ([]domain.Enrollment, error) {
	query := "SELECT " + enrollmentColumns + " FROM internship_enrollment WHERE internship_id = ? ORDER BY created_at DESC"
	return s.list(ctx, query, internshipID)
}

// ListByProjectStatus retrieves enrollments whose project is in the given
// state. The review queue is ListByProjectStatus(ctx, "Submitted").
// PRE: projectStatus is a valid project status
// POST: Returns entities ordered by creation time descending
func (s *EnrollmentSQLiteStore) ListByProjectStatus(ctx context.Context, projectStatus string) ([]domain.Enrollment, error) {
	query := "SELECT " + enrollmentColumns + " FROM internship_enrollment WHERE project_status = ? ORDER BY created_at DESC"
	return s.list(ctx, query, projectStatus)
}

// Count returns the total number of internship enrollments.
// POST: Returns count >= 0
func (s *EnrollmentSQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM internship_enrollment").Scan(&count)
	return count, err
}

func (s *EnrollmentSQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Enrollment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Enrollment
	for rows.Next() {
		entity, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// IsDuplicate reports whether err is the unique-constraint violation raised
// when a second enrollment for the same (student, internship) pair is
// inserted.
func IsDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
