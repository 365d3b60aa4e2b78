// Package auth holds the course access-control rules.
package auth

import (
	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
)

// Denial messages
const (
	msgNoViewAccess        = "Access denied. You are not part of this course."
	msgCreatorOnlyUpload   = "Only the course creator can upload to this section."
	msgNotEnrolledUpload   = "You must be the course creator or an enrolled student to upload assignments."
	msgCreatorOnlyDelete   = "Only the course creator can delete from this section."
	msgNotOwnerDelete      = "You can only delete your own submissions."
	msgCreatorOnlyEdit     = "Only the course creator can update the description."
	msgCreatorOnlyCourse   = "Not authorized to delete this course."
	msgCreatorOnlyStudents = "Only the course creator can view enrolled students."
)

// AccessControl decides whether an actor may act on a course. Every decision
// is computed from the course document passed in; nothing is cached.
type AccessControl struct{}

// NewAccessControl creates an AccessControl
func NewAccessControl() *AccessControl {
	return &AccessControl{}
}

// CanView allows the creating mentor and enrolled students
func (a *AccessControl) CanView(actor models.Actor, course *models.Course) error {
	if course.IsCreator(actor) || course.IsEnrolled(actor) {
		return nil
	}
	return apperrors.NewForbiddenError(msgNoViewAccess)
}

// CanUpload allows the creating mentor on every section and enrolled students
// on assignments only.
func (a *AccessControl) CanUpload(actor models.Actor, course *models.Course, section models.Section) error {
	if course.IsCreator(actor) {
		return nil
	}
	if section == models.SectionAssignments {
		if course.IsEnrolled(actor) {
			return nil
		}
		return apperrors.NewForbiddenError(msgNotEnrolledUpload)
	}
	return apperrors.NewForbiddenError(msgCreatorOnlyUpload)
}

// UploadType returns the entry type an allowed upload gets
func (a *AccessControl) UploadType(actor models.Actor, section models.Section) models.FileType {
	if section != models.SectionAssignments {
		return models.FileTypeFile
	}
	if actor.IsMentor() {
		return models.FileTypeQuestion
	}
	return models.FileTypeAnswer
}

// CanDeleteEntry allows the creating mentor on every section and, on
// assignments, the student who uploaded the entry.
func (a *AccessControl) CanDeleteEntry(actor models.Actor, course *models.Course, section models.Section, entry models.FileEntry) error {
	if course.IsCreator(actor) {
		return nil
	}
	if section != models.SectionAssignments {
		return apperrors.NewForbiddenError(msgCreatorOnlyDelete)
	}
	owner := models.UploaderRef{Kind: models.UploaderStudent, ID: actor.ID}
	if actor.IsStudent() && entry.Uploader() == owner {
		return nil
	}
	return apperrors.NewForbiddenError(msgNotOwnerDelete)
}

// CanUpdateDescription allows the creating mentor only
func (a *AccessControl) CanUpdateDescription(actor models.Actor, course *models.Course) error {
	if course.IsCreator(actor) {
		return nil
	}
	return apperrors.NewForbiddenError(msgCreatorOnlyEdit)
}

// CanDeleteCourse allows the creating mentor only
func (a *AccessControl) CanDeleteCourse(actor models.Actor, course *models.Course) error {
	if course.IsCreator(actor) {
		return nil
	}
	return apperrors.NewForbiddenError(msgCreatorOnlyCourse)
}

// CanListStudents allows the creating mentor only
func (a *AccessControl) CanListStudents(actor models.Actor, course *models.Course) error {
	if course.IsCreator(actor) {
		return nil
	}
	return apperrors.NewForbiddenError(msgCreatorOnlyStudents)
}
