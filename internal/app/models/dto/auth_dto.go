package dto

import "github.com/ASahithi2005/NoteNexus-backend/internal/app/models"

// SignupRequest represents a mentor or student registration request
type SignupRequest struct {
	Name     string          `json:"name" binding:"required,notblank" example:"Ada Lovelace"`
	Email    string          `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string          `json:"password" binding:"required" example:"secret123"`
	Role     models.RoleType `json:"role" binding:"required,userrole" example:"mentor"`
}

// LoginRequest represents login credentials; role selects the account collection
type LoginRequest struct {
	Email    string          `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string          `json:"password" binding:"required" example:"secret123"`
	Role     models.RoleType `json:"role" binding:"required,userrole" example:"mentor"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID    string          `json:"id" example:"665f1c2e9b1d4a0012345678"`
	Name  string          `json:"name" example:"Ada Lovelace"`
	Email string          `json:"email" example:"ada@example.com"`
	Role  models.RoleType `json:"role" example:"mentor"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType" example:"Bearer"`
	ExpiresIn int64        `json:"expiresIn" example:"604800"`
	User      UserResponse `json:"user"`
}

// NewUserResponse builds the public view of a user
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
