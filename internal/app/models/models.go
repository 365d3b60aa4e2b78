package models

// RoleType defines the user role type
type RoleType string

const (
	RoleMentor  RoleType = "mentor"
	RoleStudent RoleType = "student"
)

// Valid reports whether r is one of the known roles
func (r RoleType) Valid() bool {
	return r == RoleMentor || r == RoleStudent
}

// Section names one of the file collections embedded in a course
type Section string

const (
	SectionSyllabus    Section = "syllabus"
	SectionNotes       Section = "notes"
	SectionAssignments Section = "assignments"
)

// ParseSection validates a section path parameter
func ParseSection(s string) (Section, bool) {
	switch Section(s) {
	case SectionSyllabus, SectionNotes, SectionAssignments:
		return Section(s), true
	}
	return "", false
}

// FileType classifies a file entry; question/answer only occur in assignments
type FileType string

const (
	FileTypeQuestion FileType = "question"
	FileTypeAnswer   FileType = "answer"
	FileTypeFile     FileType = "file"
)

// Actor is the identity resolved from a verified bearer token
type Actor struct {
	ID   string
	Role RoleType
}

// IsMentor reports whether the actor carries the mentor role
func (a Actor) IsMentor() bool {
	return a.Role == RoleMentor
}

// IsStudent reports whether the actor carries the student role
func (a Actor) IsStudent() bool {
	return a.Role == RoleStudent
}
