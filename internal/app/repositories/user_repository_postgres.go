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
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/dberrors"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/logger"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresUserRepository stores mentors and students in two tables
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

func userTable(role models.RoleType) string {
	if role == models.RoleMentor {
		return "mentors"
	}
	return "students"
}

func courseListColumn(role models.RoleType) string {
	if role == models.RoleMentor {
		return "created_courses"
	}
	return "joined_courses"
}

func (r *PostgresUserRepository) selectUsers(role models.RoleType) squirrel.SelectBuilder {
	return psql.Select("id", "name", "email", "password", "role", courseListColumn(role)).
		From(userTable(role))
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CourseIDs); err != nil {
		return nil, err
	}
	if u.CourseIDs == nil {
		u.CourseIDs = []string{}
	}
	return &u, nil
}

// Create inserts a new account row
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CourseIDs == nil {
		user.CourseIDs = []string{}
	}

	sql, args, err := psql.Insert(userTable(user.Role)).
		Columns("id", "name", "email", "password", "role", courseListColumn(user.Role)).
		Values(user.ID, user.Name, user.Email, user.Password, user.Role, user.CourseIDs).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("role", string(user.Role)).Msg("Error executing create user query")
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID fetches one account by id
func (r *PostgresUserRepository) FindByID(ctx context.Context, role models.RoleType, id string) (*models.User, error) {
	return r.findOne(ctx, r.selectUsers(role).Where(squirrel.Eq{"id": id}))
}

// FindByEmail fetches one account by email
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, role models.RoleType, email string) (*models.User, error) {
	return r.findOne(ctx, r.selectUsers(role).Where(squirrel.Eq{"email": email}))
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query squirrel.SelectBuilder) (*models.User, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}
	user, err := scanUser(r.DB.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindNameByRef looks the uploader up in the table named by the reference
func (r *PostgresUserRepository) FindNameByRef(ctx context.Context, ref models.UploaderRef) (string, error) {
	sql, args, err := psql.Select("name").From(userTable(ref.Kind.Role())).
		Where(squirrel.Eq{"id": ref.ID}).ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build uploader query: %w", err)
	}
	var name string
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to resolve uploader: %w", err)
	}
	return name, nil
}

// ListByIDs fetches the accounts with the given ids
func (r *PostgresUserRepository) ListByIDs(ctx context.Context, role models.RoleType, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	return r.findMany(ctx, r.selectUsers(role).Where(squirrel.Eq{"id": ids}))
}

// List returns every account of the role
func (r *PostgresUserRepository) List(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	return r.findMany(ctx, r.selectUsers(role).OrderBy("name"))
}

func (r *PostgresUserRepository) findMany(ctx context.Context, query squirrel.SelectBuilder) ([]*models.User, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user list query: %w", err)
	}
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes name, email and password
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	sql, args, err := psql.Update(userTable(user.Role)).
		Set("name", user.Name).
		Set("email", user.Email).
		Set("password", user.Password).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}
	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes an account
func (r *PostgresUserRepository) Delete(ctx context.Context, role models.RoleType, id string) error {
	sql, args, err := psql.Delete(userTable(role)).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}
	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// AddCourse appends a course id unless it is already listed
func (r *PostgresUserRepository) AddCourse(ctx context.Context, role models.RoleType, userID, courseID string) error {
	if _, err := r.FindByID(ctx, role, userID); err != nil {
		return err
	}
	col := courseListColumn(role)
	sql, args, err := psql.Update(userTable(role)).
		Set(col, squirrel.Expr("array_append("+col+", ?)", courseID)).
		Where(squirrel.Eq{"id": userID}).
		Where(squirrel.Expr("NOT (? = ANY("+col+"))", courseID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add course query: %w", err)
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to add course to user: %w", err)
	}
	return nil
}

// RemoveCourse removes a course id from one account
func (r *PostgresUserRepository) RemoveCourse(ctx context.Context, role models.RoleType, userID, courseID string) error {
	col := courseListColumn(role)
	sql, args, err := psql.Update(userTable(role)).
		Set(col, squirrel.Expr("array_remove("+col+", ?)", courseID)).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove course query: %w", err)
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to remove course from user: %w", err)
	}
	return nil
}

// RemoveCourseFromAll removes a course id from every account of the role
func (r *PostgresUserRepository) RemoveCourseFromAll(ctx context.Context, role models.RoleType, courseID string) error {
	col := courseListColumn(role)
	sql, args, err := psql.Update(userTable(role)).
		Set(col, squirrel.Expr("array_remove("+col+", ?)", courseID)).
		Where(squirrel.Expr("? = ANY("+col+")", courseID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove course query: %w", err)
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to remove course from users: %w", err)
	}
	return nil
}
