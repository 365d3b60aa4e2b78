package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models/dto"
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/services"
	"github.com/ASahithi2005/NoteNexus-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CourseDetailController handles the file sections of a course
type CourseDetailController struct {
	fileService      services.CourseFileService
	summarizeService services.SummarizeService
	logger           zerolog.Logger
}

// NewCourseDetailController creates a new CourseDetailController
func NewCourseDetailController(fileService services.CourseFileService, summarizeService services.SummarizeService, logger zerolog.Logger) *CourseDetailController {
	return &CourseDetailController{
		fileService:      fileService,
		summarizeService: summarizeService,
		logger:           logger,
	}
}

// GetCourseDetail returns a course with its sections
// @Summary Get course detail
// @Description Returns the course with every file entry's uploader resolved to a name
// @Tags courseDetail
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetail}
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courseDetail/{id} [get]
func (c *CourseDetailController) GetCourseDetail(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	detail, err := c.fileService.Get(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// UploadFile uploads a file into a course section
// @Summary Upload file
// @Description Uploads to syllabus or notes (creating mentor) or assignments (creating mentor or enrolled student)
// @Tags courseDetail
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param section path string true "Section" Enums(syllabus, notes, assignments)
// @Param file formData file true "File to upload"
// @Param title formData string false "Title, defaults to the file name"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetail}
// @Failure 400 {object} dto.ErrorResponse "Invalid section or no file uploaded"
// @Failure 403 {object} dto.ErrorResponse "Upload not allowed"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courseDetail/{id}/{section} [post]
func (c *CourseDetailController) UploadFile(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var file *multipart.FileHeader
	if fh, err := ctx.FormFile("file"); err == nil {
		file = fh
	}

	detail, err := c.fileService.Upload(ctx.Request.Context(), actor, ctx.Param("id"), ctx.Param("section"), file, ctx.PostForm("title"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// UpdateDescription changes the course description
// @Summary Update course description
// @Tags courseDetail
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.UpdateDescriptionRequest true "New description"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 400 {object} dto.ErrorResponse "Description is required"
// @Failure 403 {object} dto.ErrorResponse "Only the course creator can update the description"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courseDetail/{id}/description [put]
func (c *CourseDetailController) UpdateDescription(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdateDescriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	course, err := c.fileService.UpdateDescription(ctx.Request.Context(), actor, ctx.Param("id"), req.Description)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// DeleteFile removes a file entry by its position in the section
// @Summary Delete file
// @Tags courseDetail
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param section path string true "Section" Enums(syllabus, notes, assignments)
// @Param index path int true "Position of the entry in the section"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetail}
// @Failure 400 {object} dto.ErrorResponse "Invalid section or index"
// @Failure 403 {object} dto.ErrorResponse "Delete not allowed"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courseDetail/{id}/{section}/{index} [delete]
func (c *CourseDetailController) DeleteFile(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	detail, err := c.fileService.Delete(ctx.Request.Context(), actor, ctx.Param("id"), ctx.Param("section"), ctx.Param("index"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// Summarize summarizes a PDF in the notes section
// @Summary Summarize notes PDF
// @Description Extracts the text of a notes PDF and summarizes it with the configured model
// @Tags courseDetail
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param section path string true "Section, must be notes"
// @Param index path int true "Position of the entry in the section"
// @Success 200 {object} dto.APIResponse{data=dto.SummaryResponse}
// @Failure 400 {object} dto.ErrorResponse "Not a notes PDF"
// @Failure 403 {object} dto.ErrorResponse "Access denied"
// @Failure 404 {object} dto.ErrorResponse "Course or file not found"
// @Failure 502 {object} dto.ErrorResponse "Summarization service failed"
// @Router /courseDetail/{id}/{section}/{index}/summarize [post]
func (c *CourseDetailController) Summarize(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	summary, err := c.summarizeService.Summarize(ctx.Request.Context(), actor, ctx.Param("id"), ctx.Param("section"), ctx.Param("index"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SummaryResponse{Summary: summary}))
}
