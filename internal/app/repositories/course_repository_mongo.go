package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
)

// MongoCourseRepository stores courses with their sections embedded
type MongoCourseRepository struct {
	courses *mongo.Collection
}

// NewMongoCourseRepository creates a new MongoCourseRepository
func NewMongoCourseRepository(db *mongo.Database) *MongoCourseRepository {
	return &MongoCourseRepository{courses: db.Collection(CoursesCollection)}
}

// Create inserts a new course document
func (r *MongoCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = primitive.NewObjectID().Hex()
	}
	course.Normalize()

	if _, err := r.courses.InsertOne(ctx, course); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// FindByID fetches one course
func (r *MongoCourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	course.Normalize()
	return &course, nil
}

// List returns every course
func (r *MongoCourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	return r.find(ctx, bson.M{})
}

// ListByIDs returns the courses with the given ids
func (r *MongoCourseRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Course, error) {
	if len(ids) == 0 {
		return []*models.Course{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoCourseRepository) find(ctx context.Context, filter bson.M) ([]*models.Course, error) {
	cur, err := r.courses.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer cur.Close(ctx)

	courses := make([]*models.Course, 0)
	for cur.Next(ctx) {
		var course models.Course
		if err := cur.Decode(&course); err != nil {
			return nil, fmt.Errorf("failed to decode course: %w", err)
		}
		course.Normalize()
		courses = append(courses, &course)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}
	return courses, nil
}

// Save replaces the stored course document
func (r *MongoCourseRepository) Save(ctx context.Context, course *models.Course) error {
	course.Normalize()
	res, err := r.courses.ReplaceOne(ctx, bson.M{"_id": course.ID}, course)
	if err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course document
func (r *MongoCourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.courses.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// AddStudent adds a student to the roster once
func (r *MongoCourseRepository) AddStudent(ctx context.Context, courseID, studentID string) error {
	res, err := r.courses.UpdateByID(ctx, courseID, bson.M{"$addToSet": bson.M{"studentsEnrolled": studentID}})
	if err != nil {
		return fmt.Errorf("failed to enroll student: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// RemoveStudentFromAll pulls a student from every roster
func (r *MongoCourseRepository) RemoveStudentFromAll(ctx context.Context, studentID string) error {
	_, err := r.courses.UpdateMany(ctx,
		bson.M{"studentsEnrolled": studentID},
		bson.M{"$pull": bson.M{"studentsEnrolled": studentID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove student from courses: %w", err)
	}
	return nil
}
