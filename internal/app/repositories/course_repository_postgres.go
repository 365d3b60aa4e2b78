package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/logger"
)

var courseColumns = []string{
	"id", "title", "description", "created_by", "mentor_name", "color", "color_name",
	"students_enrolled", "syllabus", "notes", "assignments",
}

// PostgresCourseRepository stores courses; sections are JSONB columns
type PostgresCourseRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresCourseRepository creates a new PostgresCourseRepository
func NewPostgresCourseRepository(db *pgxpool.Pool) *PostgresCourseRepository {
	return &PostgresCourseRepository{DB: db}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.CreatedBy, &c.MentorName, &c.Color, &c.ColorName,
		&c.StudentsEnrolled, &c.Syllabus, &c.Notes, &c.Assignments,
	)
	if err != nil {
		return nil, err
	}
	c.Normalize()
	return &c, nil
}

// Create inserts a course row
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	course.Normalize()

	sql, args, err := psql.Insert("courses").
		Columns(courseColumns...).
		Values(course.ID, course.Title, course.Description, course.CreatedBy, course.MentorName,
			course.Color, course.ColorName, course.StudentsEnrolled,
			course.Syllabus, course.Notes, course.Assignments).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// FindByID fetches one course
func (r *PostgresCourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := psql.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}
	course, err := scanCourse(r.DB.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	return course, nil
}

// List returns every course
func (r *PostgresCourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	return r.findMany(ctx, psql.Select(courseColumns...).From("courses").OrderBy("created_at"))
}

// ListByIDs returns the courses with the given ids
func (r *PostgresCourseRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Course, error) {
	if len(ids) == 0 {
		return []*models.Course{}, nil
	}
	return r.findMany(ctx, psql.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": ids}))
}

func (r *PostgresCourseRepository) findMany(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course list query: %w", err)
	}
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Save overwrites every column of the course row
func (r *PostgresCourseRepository) Save(ctx context.Context, course *models.Course) error {
	course.Normalize()
	sql, args, err := psql.Update("courses").
		Set("title", course.Title).
		Set("description", course.Description).
		Set("mentor_name", course.MentorName).
		Set("color", course.Color).
		Set("color_name", course.ColorName).
		Set("students_enrolled", course.StudentsEnrolled).
		Set("syllabus", course.Syllabus).
		Set("notes", course.Notes).
		Set("assignments", course.Assignments).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save course query: %w", err)
	}
	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course row
func (r *PostgresCourseRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := psql.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}
	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// AddStudent appends a student to the roster unless already enrolled
func (r *PostgresCourseRepository) AddStudent(ctx context.Context, courseID, studentID string) error {
	sql, args, err := psql.Update("courses").
		Set("students_enrolled", squirrel.Expr("array_append(students_enrolled, ?)", studentID)).
		Where(squirrel.Eq{"id": courseID}).
		Where(squirrel.Expr("NOT (? = ANY(students_enrolled))", studentID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build enroll query: %w", err)
	}
	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to enroll student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// either missing or already enrolled
		if _, err := r.FindByID(ctx, courseID); err != nil {
			return err
		}
	}
	return nil
}

// RemoveStudentFromAll removes a student from every roster
func (r *PostgresCourseRepository) RemoveStudentFromAll(ctx context.Context, studentID string) error {
	sql, args, err := psql.Update("courses").
		Set("students_enrolled", squirrel.Expr("array_remove(students_enrolled, ?)", studentID)).
		Where(squirrel.Expr("? = ANY(students_enrolled)", studentID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build unenroll query: %w", err)
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to remove student from courses: %w", err)
	}
	return nil
}
