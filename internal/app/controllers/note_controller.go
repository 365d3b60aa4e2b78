package controllers

import (
	"net/http"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models/dto"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/services"
	"github.com/ASahithi2005/NoteNexus-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NoteController handles personal notes
type NoteController struct {
	noteService services.NoteService
	logger      zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, logger zerolog.Logger) *NoteController {
	return &NoteController{noteService: noteService, logger: logger}
}

// ListNotes lists the caller's notes
// @Summary List my notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Note}
// @Router /notes [get]
func (c *NoteController) ListNotes(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	notes, err := c.noteService.List(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes))
}

// CreateNote adds a personal note
// @Summary Create note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNoteRequest true "Note"
// @Success 201 {object} dto.APIResponse{data=models.Note}
// @Failure 400 {object} dto.ErrorResponse "Title is required"
// @Router /notes [post]
func (c *NoteController) CreateNote(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	note, err := c.noteService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(note))
}

// UpdateNote changes one of the caller's notes
// @Summary Update note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body dto.UpdateNoteRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Note}
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id} [put]
func (c *NoteController) UpdateNote(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	note, err := c.noteService.Update(ctx.Request.Context(), actor, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note))
}

// DeleteNote removes one of the caller's notes
// @Summary Delete note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id} [delete]
func (c *NoteController) DeleteNote(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	if err := c.noteService.Delete(ctx.Request.Context(), actor, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Note deleted", nil))
}
