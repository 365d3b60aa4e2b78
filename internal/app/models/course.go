package models

import (
	"time"
)

// UploaderModel tags which account collection a file entry's uploader lives in
type UploaderModel string

const (
	UploaderMentor  UploaderModel = "Mentor"
	UploaderStudent UploaderModel = "Student"
)

// UploaderModelFor maps a role onto the collection tag used in file entries
func UploaderModelFor(role RoleType) UploaderModel {
	if role == RoleMentor {
		return UploaderMentor
	}
	return UploaderStudent
}

// Role returns the role whose collection the tag points at
func (m UploaderModel) Role() RoleType {
	if m == UploaderMentor {
		return RoleMentor
	}
	return RoleStudent
}

// UploaderRef is a reference to either a mentor or a student account
type UploaderRef struct {
	Kind UploaderModel
	ID   string
}

// FileEntry is one uploaded file's metadata inside a course section.
// Its position in the section slice is its identity for delete and summarize.
type FileEntry struct {
	ID              string        `json:"_id" bson:"_id"`
	Title           string        `json:"title" bson:"title"`
	FileURL         string        `json:"fileUrl" bson:"fileUrl"`
	UploadedBy      string        `json:"uploadedBy" bson:"uploadedBy"`
	UploadedByModel UploaderModel `json:"uploadedByModel" bson:"uploadedByModel"`
	Role            RoleType      `json:"role" bson:"role"`
	Type            FileType      `json:"type" bson:"type"`
	UploadedAt      time.Time     `json:"uploadedAt" bson:"uploadedAt"`
	Summary         string        `json:"summary,omitempty" bson:"summary,omitempty"`
}

// Uploader returns the tagged reference to the account that uploaded the entry
func (f FileEntry) Uploader() UploaderRef {
	return UploaderRef{Kind: f.UploadedByModel, ID: f.UploadedBy}
}

// Course is the course document; the three sections are embedded
type Course struct {
	ID               string      `json:"_id" bson:"_id" db:"id"`
	Title            string      `json:"title" bson:"title" db:"title"`
	Description      string      `json:"description" bson:"description" db:"description"`
	CreatedBy        string      `json:"createdBy" bson:"createdBy" db:"created_by"`
	MentorName       string      `json:"mentorName" bson:"mentorName" db:"mentor_name"`
	Color            string      `json:"color" bson:"color" db:"color"`
	ColorName        string      `json:"colorName" bson:"colorName" db:"color_name"`
	StudentsEnrolled []string    `json:"studentsEnrolled" bson:"studentsEnrolled" db:"students_enrolled"`
	Syllabus         []FileEntry `json:"syllabus" bson:"syllabus" db:"syllabus"`
	Notes            []FileEntry `json:"notes" bson:"notes" db:"notes"`
	Assignments      []FileEntry `json:"assignments" bson:"assignments" db:"assignments"`
}

// Normalize replaces nil collections with empty ones
func (c *Course) Normalize() {
	if c.StudentsEnrolled == nil {
		c.StudentsEnrolled = []string{}
	}
	if c.Syllabus == nil {
		c.Syllabus = []FileEntry{}
	}
	if c.Notes == nil {
		c.Notes = []FileEntry{}
	}
	if c.Assignments == nil {
		c.Assignments = []FileEntry{}
	}
}

// IsCreator reports whether the actor is the mentor who created the course
func (c *Course) IsCreator(actor Actor) bool {
	return actor.IsMentor() && c.CreatedBy == actor.ID
}

// IsEnrolled reports whether the actor is a student enrolled in the course
func (c *Course) IsEnrolled(actor Actor) bool {
	if !actor.IsStudent() {
		return false
	}
	for _, id := range c.StudentsEnrolled {
		if id == actor.ID {
			return true
		}
	}
	return false
}

// Entries returns the entries of the given section
func (c *Course) Entries(section Section) []FileEntry {
	switch section {
	case SectionSyllabus:
		return c.Syllabus
	case SectionNotes:
		return c.Notes
	case SectionAssignments:
		return c.Assignments
	}
	return nil
}

// SetEntries replaces the entries of the given section
func (c *Course) SetEntries(section Section, entries []FileEntry) {
	switch section {
	case SectionSyllabus:
		c.Syllabus = entries
	case SectionNotes:
		c.Notes = entries
	case SectionAssignments:
		c.Assignments = entries
	}
}

// AppendEntry adds an entry at the end of the section
func (c *Course) AppendEntry(section Section, entry FileEntry) {
	c.SetEntries(section, append(c.Entries(section), entry))
}

// RemoveEntry removes the entry at index, shifting later entries down by one.
// It returns the removed entry and false if the index is out of range.
func (c *Course) RemoveEntry(section Section, index int) (FileEntry, bool) {
	entries := c.Entries(section)
	if index < 0 || index >= len(entries) {
		return FileEntry{}, false
	}
	removed := entries[index]
	kept := make([]FileEntry, 0, len(entries)-1)
	kept = append(kept, entries[:index]...)
	kept = append(kept, entries[index+1:]...)
	c.SetEntries(section, kept)
	return removed, true
}

// Note is a student's personal note, unrelated to course notes files
type Note struct {
	ID          string    `json:"_id" bson:"_id" db:"id"`
	UserID      string    `json:"userId" bson:"userId" db:"user_id"`
	Title       string    `json:"title" bson:"title" db:"title"`
	Description string    `json:"description" bson:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}
