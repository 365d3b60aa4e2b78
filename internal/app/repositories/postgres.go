package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// NewPostgresRepositories initializes all repositories on a PostgreSQL pool
func NewPostgresRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:   NewPostgresUserRepository(db),
		CourseRepository: NewPostgresCourseRepository(db),
		NoteRepository:   NewPostgresNoteRepository(db),
	}
}
