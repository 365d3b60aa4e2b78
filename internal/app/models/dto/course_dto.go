package dto

import (
	"time"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
)

// CreateCourseRequest represents the body of a course creation call
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required" example:"Algo"`
	Description string `json:"description" binding:"required" example:"Algorithms and data structures"`
	Color       string `json:"color" binding:"required" example:"#fff"`
	ColorName   string `json:"colorName" binding:"required" example:"white"`
}

// UpdateDescriptionRequest represents a course description update
type UpdateDescriptionRequest struct {
	Description string `json:"description" binding:"required" example:"Updated description"`
}

// CourseListItem is a course as returned by the course listing.
// Joined is only present for student callers.
type CourseListItem struct {
	models.Course
	Joined *bool `json:"joined,omitempty"`
}

// FileEntryDetail is a file entry whose uploader id was resolved to a name
type FileEntryDetail struct {
	ID              string               `json:"_id"`
	Title           string               `json:"title"`
	FileURL         string               `json:"fileUrl"`
	UploadedBy      *UploaderSummary     `json:"uploadedBy"`
	UploadedByModel models.UploaderModel `json:"uploadedByModel"`
	Role            models.RoleType      `json:"role"`
	Type            models.FileType      `json:"type"`
	UploadedAt      time.Time            `json:"uploadedAt"`
	Summary         string               `json:"summary,omitempty"`
}

// UploaderSummary identifies who uploaded a file entry
type UploaderSummary struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CourseDetail is a course with every file entry's uploader resolved
type CourseDetail struct {
	ID               string            `json:"_id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	CreatedBy        string            `json:"createdBy"`
	MentorName       string            `json:"mentorName"`
	Color            string            `json:"color"`
	ColorName        string            `json:"colorName"`
	StudentsEnrolled []string          `json:"studentsEnrolled"`
	Syllabus         []FileEntryDetail `json:"syllabus"`
	Notes            []FileEntryDetail `json:"notes"`
	Assignments      []FileEntryDetail `json:"assignments"`
}

// StudentSummary is a student as shown in a course roster
type StudentSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CourseStudentsResponse lists the students enrolled in a course
type CourseStudentsResponse struct {
	Students []StudentSummary `json:"students"`
}

// AggregateItem is one file entry flattened out of its course
type AggregateItem struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	FileURL     string    `json:"fileUrl"`
	UploadedAt  time.Time `json:"uploadedAt"`
	CourseTitle string    `json:"courseTitle"`
}

// SummaryResponse carries the summary of a notes file
type SummaryResponse struct {
	Summary string `json:"summary"`
}
