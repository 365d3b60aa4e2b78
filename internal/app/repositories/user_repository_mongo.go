package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ASahithi2005/NoteNexus-backend/internal/app/models"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/apperrors"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/dberrors"
	"github.com/ASahithi2005/NoteNexus-backend/internal/pkg/logger"
)

// Collection names
const (
	MentorsCollection  = "mentors"
	StudentsCollection = "students"
	CoursesCollection  = "courses"
	NotesCollection    = "notes"
)

// MongoUserRepository stores mentors and students in two collections
type MongoUserRepository struct {
	mentors  *mongo.Collection
	students *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		mentors:  db.Collection(MentorsCollection),
		students: db.Collection(StudentsCollection),
	}
}

func (r *MongoUserRepository) collection(role models.RoleType) *mongo.Collection {
	if role == models.RoleMentor {
		return r.mentors
	}
	return r.students
}

func courseListField(role models.RoleType) string {
	if role == models.RoleMentor {
		return "createdCourses"
	}
	return "joinedCourses"
}

func (r *MongoUserRepository) decodeOne(role models.RoleType, res *mongo.SingleResult) (*models.User, error) {
	if role == models.RoleMentor {
		var m models.Mentor
		if err := res.Decode(&m); err != nil {
			return nil, err
		}
		return models.MentorToUser(&m), nil
	}
	var s models.Student
	if err := res.Decode(&s); err != nil {
		return nil, err
	}
	return models.StudentToUser(&s), nil
}

func (r *MongoUserRepository) decodeAll(ctx context.Context, role models.RoleType, cur *mongo.Cursor) ([]*models.User, error) {
	defer cur.Close(ctx)

	users := make([]*models.User, 0)
	if role == models.RoleMentor {
		var mentors []models.Mentor
		if err := cur.All(ctx, &mentors); err != nil {
			return nil, err
		}
		for i := range mentors {
			users = append(users, models.MentorToUser(&mentors[i]))
		}
		return users, nil
	}

	var students []models.Student
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	for i := range students {
		users = append(users, models.StudentToUser(&students[i]))
	}
	return users, nil
}

// Create inserts a new account document
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if user.CourseIDs == nil {
		user.CourseIDs = []string{}
	}

	var doc interface{}
	if user.Role == models.RoleMentor {
		doc = models.Mentor{ID: user.ID, Name: user.Name, Email: user.Email, Password: user.Password, Role: user.Role, CreatedCourses: user.CourseIDs}
	} else {
		doc = models.Student{ID: user.ID, Name: user.Name, Email: user.Email, Password: user.Password, Role: user.Role, JoinedCourses: user.CourseIDs}
	}

	if _, err := r.collection(user.Role).InsertOne(ctx, doc); err != nil {
		if dberrors.IsDuplicateKey(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("role", string(user.Role)).Msg("Error inserting user")
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID fetches one account by id
func (r *MongoUserRepository) FindByID(ctx context.Context, role models.RoleType, id string) (*models.User, error) {
	return r.findOne(ctx, role, bson.M{"_id": id})
}

// FindByEmail fetches one account by email
func (r *MongoUserRepository) FindByEmail(ctx context.Context, role models.RoleType, email string) (*models.User, error) {
	return r.findOne(ctx, role, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, role models.RoleType, filter bson.M) (*models.User, error) {
	user, err := r.decodeOne(role, r.collection(role).FindOne(ctx, filter))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindNameByRef looks the uploader up in the collection named by the reference
func (r *MongoUserRepository) FindNameByRef(ctx context.Context, ref models.UploaderRef) (string, error) {
	var doc struct {
		Name string `bson:"name"`
	}
	opts := options.FindOne().SetProjection(bson.M{"name": 1})
	err := r.collection(ref.Kind.Role()).FindOne(ctx, bson.M{"_id": ref.ID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to resolve uploader: %w", err)
	}
	return doc.Name, nil
}

// ListByIDs fetches the accounts with the given ids
func (r *MongoUserRepository) ListByIDs(ctx context.Context, role models.RoleType, ids []string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	cur, err := r.collection(role).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return r.decodeAll(ctx, role, cur)
}

// List returns every account of the role
func (r *MongoUserRepository) List(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	cur, err := r.collection(role).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return r.decodeAll(ctx, role, cur)
}

// Update writes name, email and password
func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	update := bson.M{"$set": bson.M{
		"name":     user.Name,
		"email":    user.Email,
		"password": user.Password,
	}}
	res, err := r.collection(user.Role).UpdateByID(ctx, user.ID, update)
	if err != nil {
		if dberrors.IsDuplicateKey(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes an account
func (r *MongoUserRepository) Delete(ctx context.Context, role models.RoleType, id string) error {
	res, err := r.collection(role).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// AddCourse adds a course id to the account's course list
func (r *MongoUserRepository) AddCourse(ctx context.Context, role models.RoleType, userID, courseID string) error {
	update := bson.M{"$addToSet": bson.M{courseListField(role): courseID}}
	res, err := r.collection(role).UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to add course to user: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// RemoveCourse pulls a course id from the account's course list
func (r *MongoUserRepository) RemoveCourse(ctx context.Context, role models.RoleType, userID, courseID string) error {
	update := bson.M{"$pull": bson.M{courseListField(role): courseID}}
	if _, err := r.collection(role).UpdateByID(ctx, userID, update); err != nil {
		return fmt.Errorf("failed to remove course from user: %w", err)
	}
	return nil
}

// RemoveCourseFromAll pulls a course id from every account of the role
func (r *MongoUserRepository) RemoveCourseFromAll(ctx context.Context, role models.RoleType, courseID string) error {
	field := courseListField(role)
	_, err := r.collection(role).UpdateMany(ctx, bson.M{field: courseID}, bson.M{"$pull": bson.M{field: courseID}})
	if err != nil {
		return fmt.Errorf("failed to remove course from users: %w", err)
	}
	return nil
}
