package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	acl "github.com/ASahithi2005/NoteNexus-backend/internal/app/auth"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models/dto"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// CourseService defines course level operations
type CourseService interface {
	List(ctx context.Context, actor models.Actor) ([]dto.CourseListItem, error)
	Create(ctx context.Context, actor models.Actor, req *dto.CreateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, actor models.Actor, courseID string) error
	Join(ctx context.Context, actor models.Actor, courseID string) error
	Students(ctx context.Context, actor models.Actor, courseID string) (*dto.CourseStudentsResponse, error)
	AssignmentQuestions(ctx context.Context) ([]dto.AggregateItem, error)
	NoteFiles(ctx context.Context) ([]dto.AggregateItem, error)
}

type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
	userRepo   repositories.UserRepository
	access     *acl.AccessControl
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo repositories.CourseRepository,
	userRepo repositories.UserRepository,
	access *acl.AccessControl,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		access:     access,
		logger:     logger,
	}
}

// List returns every course. Student callers get a joined flag per course.
func (s *courseServiceImpl) List(ctx context.Context, actor models.Actor) ([]dto.CourseListItem, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	items := make([]dto.CourseListItem, 0, len(courses))
	for _, c := range courses {
		item := dto.CourseListItem{Course: *c}
		if actor.IsStudent() {
			joined := c.IsEnrolled(actor)
			item.Joined = &joined
		}
		items = append(items, item)
	}
	return items, nil
}

// Create stores a new course owned by the calling mentor
func (s *courseServiceImpl) Create(ctx context.Context, actor models.Actor, req *dto.CreateCourseRequest) (*models.Course, error) {
	if !actor.IsMentor() {
		return nil, apperrors.NewForbiddenError("Only mentors can create courses")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.Color) == "" || strings.TrimSpace(req.ColorName) == "" {
		return nil, apperrors.NewBadRequestError("Missing required fields")
	}

	mentor, err := s.userRepo.FindByID(ctx, models.RoleMentor, actor.ID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Mentor not found")
		}
		return nil, fmt.Errorf("error finding mentor: %w", err)
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   mentor.ID,
		MentorName:  mentor.Name,
		Color:       req.Color,
		ColorName:   req.ColorName,
	}
	course.Normalize()

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	if err := s.userRepo.AddCourse(ctx, models.RoleMentor, mentor.ID, course.ID); err != nil {
		return nil, fmt.Errorf("error linking course to mentor: %w", err)
	}

	s.logger.Info().Str("courseID", course.ID).Str("mentorID", mentor.ID).Msg("Course created")
	return course, nil
}

// Delete removes a course and every account's reference to it
func (s *courseServiceImpl) Delete(ctx context.Context, actor models.Actor, courseID string) error {
	if !actor.IsMentor() {
		return apperrors.NewForbiddenError("Only mentors can delete courses")
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if err := s.access.CanDeleteCourse(actor, course); err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, course.ID); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if err := s.userRepo.RemoveCourse(ctx, models.RoleMentor, actor.ID, course.ID); err != nil {
		return fmt.Errorf("error unlinking course from mentor: %w", err)
	}
	if err := s.userRepo.RemoveCourseFromAll(ctx, models.RoleStudent, course.ID); err != nil {
		return fmt.Errorf("error unlinking course from students: %w", err)
	}

	s.logger.Info().Str("courseID", course.ID).Msg("Course deleted")
	return nil
}

// Join enrolls the calling student. Joining twice is a no-op.
func (s *courseServiceImpl) Join(ctx context.Context, actor models.Actor, courseID string) error {
	if !actor.IsStudent() {
		return apperrors.NewForbiddenError("Only students can join courses")
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.IsEnrolled(actor) {
		return nil
	}

	if err := s.courseRepo.AddStudent(ctx, course.ID, actor.ID); err != nil {
		return fmt.Errorf("error enrolling student: %w", err)
	}
	if err := s.userRepo.AddCourse(ctx, models.RoleStudent, actor.ID, course.ID); err != nil {
		return fmt.Errorf("error linking course to student: %w", err)
	}

	s.logger.Info().Str("courseID", course.ID).Str("studentID", actor.ID).Msg("Student joined course")
	return nil
}

// Students lists the roster of a course for its creating mentor
func (s *courseServiceImpl) Students(ctx context.Context, actor models.Actor, courseID string) (*dto.CourseStudentsResponse, error) {
	if !actor.IsMentor() {
		return nil, apperrors.NewForbiddenError("Only mentors can view enrolled students")
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.CanListStudents(actor, course); err != nil {
		return nil, err
	}

	students, err := s.userRepo.ListByIDs(ctx, models.RoleStudent, course.StudentsEnrolled)
	if err != nil {
		return nil, fmt.Errorf("error loading students: %w", err)
	}

	resp := &dto.CourseStudentsResponse{Students: make([]dto.StudentSummary, 0, len(students))}
	for _, st := range students {
		resp.Students = append(resp.Students, dto.StudentSummary{ID: st.ID, Name: st.Name, Email: st.Email})
	}
	return resp, nil
}

// AssignmentQuestions flattens every mentor-uploaded assignment across courses
func (s *courseServiceImpl) AssignmentQuestions(ctx context.Context) ([]dto.AggregateItem, error) {
	return s.aggregate(ctx, models.SectionAssignments, func(e models.FileEntry) bool {
		return e.Type == models.FileTypeQuestion
	})
}

// NoteFiles flattens every notes file across courses
func (s *courseServiceImpl) NoteFiles(ctx context.Context) ([]dto.AggregateItem, error) {
	return s.aggregate(ctx, models.SectionNotes, nil)
}

// aggregate returns matching entries of section across all courses, newest first
func (s *courseServiceImpl) aggregate(ctx context.Context, section models.Section, match func(models.FileEntry) bool) ([]dto.AggregateItem, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	items := make([]dto.AggregateItem, 0)
	for _, c := range courses {
		for _, e := range c.Entries(section) {
			if match != nil && !match(e) {
				continue
			}
			items = append(items, dto.AggregateItem{
				ID:          e.ID,
				Title:       e.Title,
				FileURL:     e.FileURL,
				UploadedAt:  e.UploadedAt,
				CourseTitle: c.Title,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UploadedAt.After(items[j].UploadedAt)
	})
	return items, nil
}
