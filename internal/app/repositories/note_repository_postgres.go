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
)

// PostgresNoteRepository stores personal notes
type PostgresNoteRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresNoteRepository creates a new PostgresNoteRepository
func NewPostgresNoteRepository(db *pgxpool.Pool) *PostgresNoteRepository {
	return &PostgresNoteRepository{DB: db}
}

func selectNotes() squirrel.SelectBuilder {
	return psql.Select("id", "user_id", "title", "description", "created_at", "updated_at").From("notes")
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var n models.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	sql, args, err := psql.Insert("notes").
		Columns("id", "user_id", "title", "description", "created_at", "updated_at").
		Values(note.ID, note.UserID, note.Title, note.Description, note.CreatedAt, note.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create note query: %w", err)
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// ListByUser returns the user's notes, newest first
func (r *PostgresNoteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	sql, args, err := selectNotes().Where(squirrel.Eq{"user_id": userID}).OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notes query: %w", err)
	}
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// FindByID fetches a note owned by userID
func (r *PostgresNoteRepository) FindByID(ctx context.Context, id, userID string) (*models.Note, error) {
	sql, args, err := selectNotes().Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build note query: %w", err)
	}
	note, err := scanNote(r.DB.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

// Update writes the mutable note fields
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	sql, args, err := psql.Update("notes").
		Set("title", note.Title).
		Set("description", note.Description).
		Set("updated_at", note.UpdatedAt).
		Where(squirrel.Eq{"id": note.ID, "user_id": note.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update note query: %w", err)
	}
	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// Delete removes a note owned by userID
func (r *PostgresNoteRepository) Delete(ctx context.Context, id, userID string) error {
	sql, args, err := psql.Delete("notes").Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete note query: %w", err)
	}
	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// DeleteByUser removes every note of a user
func (r *PostgresNoteRepository) DeleteByUser(ctx context.Context, userID string) error {
	sql, args, err := psql.Delete("notes").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete notes query: %w", err)
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}
	return nil
}
