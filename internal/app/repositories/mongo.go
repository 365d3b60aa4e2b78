package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoRepositories initializes all repositories on a MongoDB database
func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		UserRepository:   NewMongoUserRepository(db),
		CourseRepository: NewMongoCourseRepository(db),
		NoteRepository:   NewMongoNoteRepository(db),
	}
}

// EnsureMongoIndexes creates the indexes the repositories rely on: unique
// emails per role collection and the note owner lookup.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	uniqueEmail := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, name := range []string{MentorsCollection, StudentsCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, uniqueEmail); err != nil {
			return fmt.Errorf("failed to create email index on %s: %w", name, err)
		}
	}

	noteOwner := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}}
	if _, err := db.Collection(NotesCollection).Indexes().CreateOne(ctx, noteOwner); err != nil {
		return fmt.Errorf("failed to create note index: %w", err)
	}
	return nil
}
