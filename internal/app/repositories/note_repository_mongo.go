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
)

// MongoNoteRepository stores personal notes
type MongoNoteRepository struct {
	notes *mongo.Collection
}

// NewMongoNoteRepository creates a new MongoNoteRepository
func NewMongoNoteRepository(db *mongo.Database) *MongoNoteRepository {
	return &MongoNoteRepository{notes: db.Collection(NotesCollection)}
}

// Create inserts a note
func (r *MongoNoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.notes.InsertOne(ctx, note); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// ListByUser returns the user's notes, newest first
func (r *MongoNoteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.notes.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer cur.Close(ctx)

	notes := make([]*models.Note, 0)
	if err := cur.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, nil
}

// FindByID fetches a note owned by userID
func (r *MongoNoteRepository) FindByID(ctx context.Context, id, userID string) (*models.Note, error) {
	var note models.Note
	if err := r.notes.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&note); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return &note, nil
}

// Update writes the mutable note fields
func (r *MongoNoteRepository) Update(ctx context.Context, note *models.Note) error {
	update := bson.M{"$set": bson.M{
		"title":       note.Title,
		"description": note.Description,
		"updatedAt":   note.UpdatedAt,
	}}
	res, err := r.notes.UpdateOne(ctx, bson.M{"_id": note.ID, "userId": note.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// Delete removes a note owned by userID
func (r *MongoNoteRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.notes.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// DeleteByUser removes every note of a user
func (r *MongoNoteRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.notes.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}
	return nil
}
