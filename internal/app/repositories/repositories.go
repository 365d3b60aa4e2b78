package repositories

import (
	"context"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
)

// UserRepository persists mentor and student accounts. Every lookup is
// scoped to one role's collection.
type UserRepository interface {
	// Create stores a new account and sets its ID. A duplicate email within
	// the role returns apperrors.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, role models.RoleType, id string) (*models.User, error)
	FindByEmail(ctx context.Context, role models.RoleType, email string) (*models.User, error)
	// FindNameByRef resolves a file entry uploader to a display name
	FindNameByRef(ctx context.Context, ref models.UploaderRef) (string, error)
	ListByIDs(ctx context.Context, role models.RoleType, ids []string) ([]*models.User, error)
	List(ctx context.Context, role models.RoleType) ([]*models.User, error)
	// Update writes name, email and password of an existing account
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, role models.RoleType, id string) error

	// AddCourse adds courseID to createdCourses or joinedCourses, once
	AddCourse(ctx context.Context, role models.RoleType, userID, courseID string) error
	RemoveCourse(ctx context.Context, role models.RoleType, userID, courseID string) error
	// RemoveCourseFromAll pulls courseID from every account of the role
	RemoveCourseFromAll(ctx context.Context, role models.RoleType, courseID string) error
}

// CourseRepository persists course documents together with their sections
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.Course, error)
	// Save replaces the whole stored document; last writer wins
	Save(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error

	// AddStudent adds studentID to studentsEnrolled, once
	AddStudent(ctx context.Context, courseID, studentID string) error
	// RemoveStudentFromAll pulls studentID from every course roster
	RemoveStudentFromAll(ctx context.Context, studentID string) error
}

// NoteRepository persists personal notes; every mutation is owner-scoped
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	// ListByUser returns the user's notes, newest first
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
	// Update writes title, description and updatedAt of a note owned by note.UserID
	Update(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, id, userID string) (*models.Note, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository   UserRepository
	CourseRepository CourseRepository
	NoteRepository   NoteRepository
}
