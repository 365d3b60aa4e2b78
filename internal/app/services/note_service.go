package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models/dto"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// NoteService manages personal notes. Every operation is scoped to the caller.
type NoteService interface {
	List(ctx context.Context, actor models.Actor) ([]*models.Note, error)
	Create(ctx context.Context, actor models.Actor, req *dto.CreateNoteRequest) (*models.Note, error)
	Update(ctx context.Context, actor models.Actor, noteID string, req *dto.UpdateNoteRequest) (*models.Note, error)
	Delete(ctx context.Context, actor models.Actor, noteID string) error
}

type noteServiceImpl struct {
	noteRepo repositories.NoteRepository
	logger   zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo repositories.NoteRepository, logger zerolog.Logger) NoteService {
	return &noteServiceImpl{noteRepo: noteRepo, logger: logger}
}

func (s *noteServiceImpl) List(ctx context.Context, actor models.Actor) ([]*models.Note, error) {
	notes, err := s.noteRepo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return notes, nil
}

func (s *noteServiceImpl) Create(ctx context.Context, actor models.Actor, req *dto.CreateNoteRequest) (*models.Note, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewBadRequestError("Title is required")
	}

	now := clock()
	note := &models.Note{
		UserID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return note, nil
}

// Update changes the fields present in req. Notes of other users are reported
// as not found.
func (s *noteServiceImpl) Update(ctx context.Context, actor models.Actor, noteID string, req *dto.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, noteID, actor.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperrors.NewBadRequestError("Title cannot be empty")
		}
		note.Title = *req.Title
	}
	if req.Description != nil {
		note.Description = *req.Description
	}
	note.UpdatedAt = clock()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteServiceImpl) Delete(ctx context.Context, actor models.Actor, noteID string) error {
	return s.noteRepo.Delete(ctx, noteID, actor.ID)
}
