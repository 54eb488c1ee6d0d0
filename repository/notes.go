package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"quicknotes/model"
	"quicknotes/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(db *mongo.Database, collectionName string) *NotesRepo {
	return &NotesRepo{
		MongoCollection: db.Collection(collectionName),
	}
}

// NoteFilter narrows a user's notes. Query is a case-sensitive substring
// matched against title or content; every tag in Tags must be present.
type NoteFilter struct {
	Query string
	Tags  []string
}

func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if note.UserID == "" {
		return errors.New("user ID is required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		utils.TrackError("database", "note_insert_failed")
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// FindNotes lists the user's notes newest-created first.
func (r *NotesRepo) FindNotes(ctx context.Context, userID string, filter NoteFilter) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	query := bson.M{"user_id": userID}
	if filter.Query != "" {
		pattern := regexp.QuoteMeta(filter.Query)
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": pattern}},
			{"content": bson.M{"$regex": pattern}},
		}
	}
	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$all": filter.Tags}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		utils.TrackError("database", "note_find_failed")
		return nil, fmt.Errorf("failed to find notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, nil
}

// GetNote returns ErrNotFound for missing notes and for notes owned by someone else.
func (r *NotesRepo) GetNote(ctx context.Context, noteID string, userID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": noteID, "user_id": userID}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		utils.TrackError("database", "note_lookup_error")
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return &note, nil
}

// UpdateNote sets only the patched fields and returns the stored result.
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID string, userID string, patch model.NotePatch, updatedAt time.Time) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": updatedAt}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": noteID, "user_id": userID},
		bson.M{"$set": set}, opts).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		utils.TrackError("database", "note_update_failed")
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return &note, nil
}

func (r *NotesRepo) DeleteNote(ctx context.Context, noteID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": noteID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "note_delete_failed")
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
