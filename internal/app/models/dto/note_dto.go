package dto

// CreateNoteRequest represents a personal note creation request
type CreateNoteRequest struct {
	Title       string `json:"title" binding:"required,notblank" example:"Exam prep"`
	Description string `json:"description" example:"Revise graphs and DP"`
}

// UpdateNoteRequest represents a personal note update; absent fields are kept
type UpdateNoteRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}
