package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"sync"

	acl "github.com/ASahithi2005/NoteNexus-backend/internal/app/auth"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models/dto"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/filestorage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CourseFileService manages the file sections embedded in a course
type CourseFileService interface {
	Get(ctx context.Context, actor models.Actor, courseID string) (*dto.CourseDetail, error)
	Upload(ctx context.Context, actor models.Actor, courseID, section string, file *multipart.FileHeader, title string) (*dto.CourseDetail, error)
	Delete(ctx context.Context, actor models.Actor, courseID, section, index string) (*dto.CourseDetail, error)
	UpdateDescription(ctx context.Context, actor models.Actor, courseID, description string) (*models.Course, error)
}

type courseFileServiceImpl struct {
	courseRepo repositories.CourseRepository
	userRepo   repositories.UserRepository
	storage    filestorage.FileStorage
	access     *acl.AccessControl
	logger     zerolog.Logger

	// pending tracks detached file deletions
	pending sync.WaitGroup
}

// NewCourseFileService creates a new CourseFileService
func NewCourseFileService(
	courseRepo repositories.CourseRepository,
	userRepo repositories.UserRepository,
	storage filestorage.FileStorage,
	access *acl.AccessControl,
	logger zerolog.Logger,
) CourseFileService {
	return &courseFileServiceImpl{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		storage:    storage,
		access:     access,
		logger:     logger,
	}
}

// uploadDir returns the storage subdirectory for an upload
func uploadDir(section models.Section, actor models.Actor) string {
	switch section {
	case models.SectionAssignments:
		if actor.IsMentor() {
			return "assignments/questions"
		}
		return "assignments/answers"
	case models.SectionNotes:
		return "notes"
	case models.SectionSyllabus:
		return "syllabus"
	}
	return "others"
}

// Get returns the course with every uploader resolved to a name
func (s *courseFileServiceImpl) Get(ctx context.Context, actor models.Actor, courseID string) (*dto.CourseDetail, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.CanView(actor, course); err != nil {
		return nil, err
	}
	return s.resolve(ctx, course)
}

// Upload stores a file and appends its entry to the section
func (s *courseFileServiceImpl) Upload(ctx context.Context, actor models.Actor, courseID, sectionName string, file *multipart.FileHeader, title string) (*dto.CourseDetail, error) {
	section, ok := models.ParseSection(sectionName)
	if !ok {
		return nil, apperrors.ErrInvalidSection
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.CanUpload(actor, course, section); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperrors.NewBadRequestError("No file uploaded")
	}

	fileURL, err := s.storage.SaveFileWithPath(file, uploadDir(section, actor))
	if err != nil {
		return nil, fmt.Errorf("error storing uploaded file: %w", err)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = file.Filename
	}

	course.AppendEntry(section, models.FileEntry{
		ID:              uuid.New().String(),
		Title:           title,
		FileURL:         fileURL,
		UploadedBy:      actor.ID,
		UploadedByModel: models.UploaderModelFor(actor.Role),
		Role:            actor.Role,
		Type:            s.access.UploadType(actor, section),
		UploadedAt:      clock(),
	})

	if err := s.courseRepo.Save(ctx, course); err != nil {
		if delErr := s.storage.DeleteFile(fileURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("fileURL", fileURL).Msg("Could not remove file after failed save")
		}
		return nil, fmt.Errorf("error saving course: %w", err)
	}

	s.logger.Info().Str("courseID", course.ID).Str("section", string(section)).Str("fileURL", fileURL).Msg("File uploaded")
	return s.resolve(ctx, course)
}

// Delete removes the entry at index from a section. The physical file is
// removed in the background.
func (s *courseFileServiceImpl) Delete(ctx context.Context, actor models.Actor, courseID, sectionName, index string) (*dto.CourseDetail, error) {
	section, ok := models.ParseSection(sectionName)
	if !ok {
		return nil, apperrors.ErrInvalidSection
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	idx, err := strconv.Atoi(index)
	entries := course.Entries(section)
	if err != nil || idx < 0 || idx >= len(entries) {
		return nil, apperrors.ErrInvalidIndex
	}

	if err := s.access.CanDeleteEntry(actor, course, section, entries[idx]); err != nil {
		return nil, err
	}

	removed, _ := course.RemoveEntry(section, idx)
	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("error saving course: %w", err)
	}
	s.removeFileAsync(removed.FileURL)

	s.logger.Info().Str("courseID", course.ID).Str("section", string(section)).Int("index", idx).Msg("File entry deleted")
	return s.resolve(ctx, course)
}

// removeFileAsync deletes a stored file without waiting for the result.
// URLs that do not point into the store are left alone.
func (s *courseFileServiceImpl) removeFileAsync(fileURL string) {
	if _, err := s.storage.GetFullPath(fileURL); err != nil {
		s.logger.Debug().Str("fileURL", fileURL).Msg("Skipping removal of file outside storage")
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.storage.DeleteFile(fileURL); err != nil {
			s.logger.Warn().Err(err).Str("fileURL", fileURL).Msg("Could not delete file")
		}
	}()
}

// UpdateDescription replaces the course description
func (s *courseFileServiceImpl) UpdateDescription(ctx context.Context, actor models.Actor, courseID, description string) (*models.Course, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.NewBadRequestError("Description is required")
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.CanUpdateDescription(actor, course); err != nil {
		return nil, err
	}

	course.Description = description
	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("error saving course: %w", err)
	}
	return course, nil
}

// resolve builds the course detail, looking each uploader up once
func (s *courseFileServiceImpl) resolve(ctx context.Context, course *models.Course) (*dto.CourseDetail, error) {
	names := make(map[models.UploaderRef]*dto.UploaderSummary)

	convert := func(entries []models.FileEntry) ([]dto.FileEntryDetail, error) {
		out := make([]dto.FileEntryDetail, 0, len(entries))
		for _, e := range entries {
			ref := e.Uploader()
			summary, seen := names[ref]
			if !seen && ref.ID != "" {
				name, err := s.userRepo.FindNameByRef(ctx, ref)
				switch {
				case err == nil:
					summary = &dto.UploaderSummary{ID: ref.ID, Name: name}
				case apperrors.Is(err, apperrors.ErrResourceNotFound):
					// account deleted since the upload
				default:
					return nil, fmt.Errorf("error resolving uploader: %w", err)
				}
				names[ref] = summary
			}
			out = append(out, dto.FileEntryDetail{
				ID:              e.ID,
				Title:           e.Title,
				FileURL:         e.FileURL,
				UploadedBy:      summary,
				UploadedByModel: e.UploadedByModel,
				Role:            e.Role,
				Type:            e.Type,
				UploadedAt:      e.UploadedAt,
				Summary:         e.Summary,
			})
		}
		return out, nil
	}

	detail := &dto.CourseDetail{
		ID:               course.ID,
		Title:            course.Title,
		Description:      course.Description,
		CreatedBy:        course.CreatedBy,
		MentorName:       course.MentorName,
		Color:            course.Color,
		ColorName:        course.ColorName,
		StudentsEnrolled: course.StudentsEnrolled,
	}

	var err error
	if detail.Syllabus, err = convert(course.Syllabus); err != nil {
		return nil, err
	}
	if detail.Notes, err = convert(course.Notes); err != nil {
		return nil, err
	}
	if detail.Assignments, err = convert(course.Assignments); err != nil {
		return nil, err
	}
	return detail, nil
}
