package dto

import "github.com/ASahithi2005/NoteNexus-backend/internal/app/models"

// UpdateUserRequest represents a profile update; empty fields are kept
type UpdateUserRequest struct {
	Name  string `json:"name" example:"Ada Lovelace"`
	Email string `json:"email" binding:"omitempty,email" example:"ada@example.com"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// CourseRef is a course reduced to its id and title
type CourseRef struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// ProfileResponse is the caller's own profile
type ProfileResponse struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           models.RoleType `json:"role"`
	CreatedCourses []string        `json:"createdCourses,omitempty"`
	JoinedCourses  []CourseRef     `json:"joinedCourses,omitempty"`
}

// StudentListItem is a student with the courses they joined
type StudentListItem struct {
	ID            string      `json:"_id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	JoinedCourses []CourseRef `json:"joinedCourses"`
}
