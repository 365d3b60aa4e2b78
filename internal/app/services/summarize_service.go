package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	acl "github.com/ASahithi2005/NoteNexus-backend/internal/app/auth"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/repositories"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/filestorage"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/pdftext"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/summarizer"
	"github.com/rs/zerolog"
)

// DefaultChunkTimeout bounds a single summarization call
const DefaultChunkTimeout = 60 * time.Second

// SummarizeOptions tunes the summarization pipeline
type SummarizeOptions struct {
	MaxPages     int
	ChunkSize    int
	ChunkTimeout time.Duration
	// PersistSummary writes a non-empty summary back onto the file entry
	PersistSummary bool
}

func (o SummarizeOptions) withDefaults() SummarizeOptions {
	if o.MaxPages <= 0 {
		o.MaxPages = pdftext.DefaultMaxPages
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = summarizer.DefaultChunkSize
	}
	if o.ChunkTimeout <= 0 {
		o.ChunkTimeout = DefaultChunkTimeout
	}
	return o
}

// SummarizeService summarizes PDF files of a course's notes section
type SummarizeService interface {
	Summarize(ctx context.Context, actor models.Actor, courseID, section, index string) (string, error)
}

type summarizeServiceImpl struct {
	courseRepo repositories.CourseRepository
	storage    filestorage.FileStorage
	extractor  pdftext.Extractor
	client     summarizer.Client
	access     *acl.AccessControl
	opts       SummarizeOptions
	logger     zerolog.Logger
}

// NewSummarizeService creates a new SummarizeService
func NewSummarizeService(
	courseRepo repositories.CourseRepository,
	storage filestorage.FileStorage,
	extractor pdftext.Extractor,
	client summarizer.Client,
	access *acl.AccessControl,
	opts SummarizeOptions,
	logger zerolog.Logger,
) SummarizeService {
	return &summarizeServiceImpl{
		courseRepo: courseRepo,
		storage:    storage,
		extractor:  extractor,
		client:     client,
		access:     access,
		opts:       opts.withDefaults(),
		logger:     logger,
	}
}

// Summarize extracts the text of the notes file at index and summarizes it
// chunk by chunk. Failed chunks are skipped.
func (s *summarizeServiceImpl) Summarize(ctx context.Context, actor models.Actor, courseID, section, index string) (string, error) {
	if section != string(models.SectionNotes) {
		return "", apperrors.NewBadRequestError("Summarization only supported for notes section")
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return "", err
	}

	idx, err := strconv.Atoi(index)
	if err != nil || idx < 0 || idx >= len(course.Notes) {
		return "", apperrors.ErrFileNotFound
	}
	entry := course.Notes[idx]

	if err := s.access.CanView(actor, course); err != nil {
		return "", err
	}

	if !strings.HasSuffix(strings.ToLower(entry.FileURL), ".pdf") {
		return "", apperrors.NewBadRequestError("Summarization only supported for PDF files")
	}
	if !s.storage.Exists(entry.FileURL) {
		return "", apperrors.NewResourceNotFoundError("PDF file not found on server")
	}
	path, err := s.storage.GetFullPath(entry.FileURL)
	if err != nil {
		return "", apperrors.NewResourceNotFoundError("PDF file not found on server")
	}

	text, err := s.extractor.Extract(path, s.opts.MaxPages)
	if err != nil {
		return "", fmt.Errorf("error extracting pdf text: %w", err)
	}

	chunks := summarizer.ChunkText(text, s.opts.ChunkSize)
	summary, ok := s.summarizeChunks(ctx, chunks)
	if !ok {
		return "", apperrors.NewUpstreamError("Summarization service failed for every part of the document")
	}

	if s.opts.PersistSummary && summary != "" {
		s.persist(ctx, courseID, idx, entry.FileURL, summary)
	}
	return summary, nil
}

// summarizeChunks calls the client once per chunk, in order. ok is false
// only when there were chunks and none of them came back.
func (s *summarizeServiceImpl) summarizeChunks(ctx context.Context, chunks []string) (summary string, ok bool) {
	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		chunkCtx, cancel := context.WithTimeout(ctx, s.opts.ChunkTimeout)
		out, err := s.client.Summarize(chunkCtx, chunk)
		cancel()
		if err != nil {
			s.logger.Warn().Err(err).Int("chunk", i).Msg("Summarization failed for a chunk")
			continue
		}
		summaries = append(summaries, out)
	}
	if len(chunks) > 0 && len(summaries) == 0 {
		return "", false
	}
	return strings.Join(summaries, "\n\n"), true
}

// persist stores the summary on the entry if it is still at the same index
func (s *summarizeServiceImpl) persist(ctx context.Context, courseID string, idx int, fileURL, summary string) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		s.logger.Warn().Err(err).Str("courseID", courseID).Msg("Could not reload course to store summary")
		return
	}
	if idx >= len(course.Notes) || course.Notes[idx].FileURL != fileURL {
		s.logger.Warn().Str("courseID", courseID).Int("index", idx).Msg("Notes entry moved, summary not stored")
		return
	}
	course.Notes[idx].Summary = summary
	if err := s.courseRepo.Save(ctx, course); err != nil {
		s.logger.Warn().Err(err).Str("courseID", courseID).Msg("Could not store summary")
	}
}
