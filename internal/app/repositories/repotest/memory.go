// Package repotest provides in-memory repository implementations for tests.
package repotest

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
)

// Store backs all in-memory repositories. Values are copied on the way in and
// out so callers only observe persisted state.
type Store struct {
	mu      sync.Mutex
	seq     int
	users   map[models.RoleType]map[string]*models.User
	courses map[string]*models.Course
	order   []string
	notes   map[string]*models.Note

	// SaveErr, when set, is returned by CourseRepository.Save
	SaveErr error
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		users: map[models.RoleType]map[string]*models.User{
			models.RoleMentor:  {},
			models.RoleStudent: {},
		},
		courses: map[string]*models.Course{},
		notes:   map[string]*models.Note{},
	}
}

// Repositories returns repository views over the store
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		UserRepository:   &UserRepository{s},
		CourseRepository: &CourseRepository{s},
		NoteRepository:   &NoteRepository{s},
	}
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return prefix + strconv.Itoa(s.seq)
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.CourseIDs = append([]string{}, u.CourseIDs...)
	return &c
}

func copyCourse(c *models.Course) *models.Course {
	out := *c
	out.StudentsEnrolled = append([]string{}, c.StudentsEnrolled...)
	out.Syllabus = append([]models.FileEntry{}, c.Syllabus...)
	out.Notes = append([]models.FileEntry{}, c.Notes...)
	out.Assignments = append([]models.FileEntry{}, c.Assignments...)
	return &out
}

func addOnce(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func without(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// UserRepository is an in-memory repositories.UserRepository
type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users[user.Role] {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = r.s.nextID(string(user.Role) + "-")
	}
	if user.CourseIDs == nil {
		user.CourseIDs = []string{}
	}
	r.s.users[user.Role][user.ID] = copyUser(user)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, role models.RoleType, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[role][id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, role models.RoleType, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users[role] {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *UserRepository) FindNameByRef(ctx context.Context, ref models.UploaderRef) (string, error) {
	u, err := r.FindByID(ctx, ref.Kind.Role(), ref.ID)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, role models.RoleType, ids []string) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[role][id]; ok {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

func (r *UserRepository) List(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.User, 0, len(r.s.users[role]))
	for _, u := range r.s.users[role] {
		out = append(out, copyUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[user.Role][user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	for id, u := range r.s.users[user.Role] {
		if id != user.ID && u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.Password = user.Password
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, role models.RoleType, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[role][id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.s.users[role], id)
	return nil
}

func (r *UserRepository) AddCourse(ctx context.Context, role models.RoleType, userID, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[role][userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.CourseIDs = addOnce(u.CourseIDs, courseID)
	return nil
}

func (r *UserRepository) RemoveCourse(ctx context.Context, role models.RoleType, userID, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[role][userID]; ok {
		u.CourseIDs = without(u.CourseIDs, courseID)
	}
	return nil
}

func (r *UserRepository) RemoveCourseFromAll(ctx context.Context, role models.RoleType, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users[role] {
		u.CourseIDs = without(u.CourseIDs, courseID)
	}
	return nil
}

// CourseRepository is an in-memory repositories.CourseRepository
type CourseRepository struct{ s *Store }

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if course.ID == "" {
		course.ID = r.s.nextID("course-")
	}
	course.Normalize()
	r.s.courses[course.ID] = copyCourse(course)
	r.s.order = append(r.s.order, course.ID)
	return nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return copyCourse(c), nil
}

func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Course, 0, len(r.s.order))
	for _, id := range r.s.order {
		if c, ok := r.s.courses[id]; ok {
			out = append(out, copyCourse(c))
		}
	}
	return out, nil
}

func (r *CourseRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.s.courses[id]; ok {
			out = append(out, copyCourse(c))
		}
	}
	return out, nil
}

func (r *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.SaveErr != nil {
		return r.s.SaveErr
	}
	if _, ok := r.s.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	course.Normalize()
	r.s.courses[course.ID] = copyCourse(course)
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.s.courses, id)
	return nil
}

func (r *CourseRepository) AddStudent(ctx context.Context, courseID, studentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	c.StudentsEnrolled = addOnce(c.StudentsEnrolled, studentID)
	return nil
}

func (r *CourseRepository) RemoveStudentFromAll(ctx context.Context, studentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.courses {
		c.StudentsEnrolled = without(c.StudentsEnrolled, studentID)
	}
	return nil
}

// NoteRepository is an in-memory repositories.NoteRepository
type NoteRepository struct{ s *Store }

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if note.ID == "" {
		note.ID = r.s.nextID("note-")
	}
	n := *note
	r.s.notes[note.ID] = &n
	return nil
}

func (r *NoteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Note, 0)
	for _, n := range r.s.notes {
		if n.UserID == userID {
			c := *n
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id, userID string) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notes[id]
	if !ok || n.UserID != userID {
		return nil, apperrors.ErrNoteNotFound
	}
	c := *n
	return &c, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notes[note.ID]
	if !ok || n.UserID != note.UserID {
		return apperrors.ErrNoteNotFound
	}
	n.Title = note.Title
	n.Description = note.Description
	n.UpdatedAt = note.UpdatedAt
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notes[id]
	if !ok || n.UserID != userID {
		return apperrors.ErrNoteNotFound
	}
	delete(r.s.notes, id)
	return nil
}

func (r *NoteRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, n := range r.s.notes {
		if n.UserID == userID {
			delete(r.s.notes, id)
		}
	}
	return nil
}

var (
	_ repositories.UserRepository   = (*UserRepository)(nil)
	_ repositories.CourseRepository = (*CourseRepository)(nil)
	_ repositories.NoteRepository   = (*NoteRepository)(nil)
)
