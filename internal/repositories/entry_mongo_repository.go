package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"saalisloki/internal/models"
)

// Per-call deadline for store operations; the driver pools connections,
// so each call just binds a context.
const mongoOpTimeout = 5 * time.Second

// MongoEntryRepository is a MongoDB implementation of EntryRepository.
// Entries live in the "entries" collection with a uuid string as _id.
type MongoEntryRepository struct {
	collection *mongo.Collection
}

// NewMongoEntryRepository creates a new instance of MongoEntryRepository.
func NewMongoEntryRepository(db *mongo.Database) *MongoEntryRepository {
	return &MongoEntryRepository{
		collection: db.Collection("entries"),
	}
}

// GetAll retrieves all entries from the collection.
func (r *MongoEntryRepository) GetAll() ([]models.Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	return entries, nil
}

// GetByID retrieves a single entry by its ID from the collection.
func (r *MongoEntryRepository) GetByID(id string) (*models.Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("entry id %q: %w", id, ErrInvalidID)
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	var entry models.Entry
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entry by ID %s: %w", id, err)
	}
	return &entry, nil
}

// Create inserts a new entry, assigning an ID if absent.
func (r *MongoEntryRepository) Create(entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// Update replaces an existing entry document in full.
func (r *MongoEntryRepository) Update(entry *models.Entry) error {
	if _, err := uuid.Parse(entry.ID); err != nil {
		return fmt.Errorf("entry id %q: %w", entry.ID, ErrInvalidID)
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("entry %s: %w", entry.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an entry by its ID.
func (r *MongoEntryRepository) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("entry id %q: %w", id, ErrInvalidID)
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}
