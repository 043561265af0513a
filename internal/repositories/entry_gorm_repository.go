package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"saalisloki/internal/models"
)

// GORMEntryRepository is a GORM implementation of EntryRepository.
type GORMEntryRepository struct {
	db *gorm.DB
}

// NewGORMEntryRepository creates a new instance of GORMEntryRepository.
func NewGORMEntryRepository(db *gorm.DB) *GORMEntryRepository {
	return &GORMEntryRepository{
		db: db,
	}
}

// GetAll retrieves all entries from the database.
func (r *GORMEntryRepository) GetAll() ([]models.Entry, error) {
	entries := []models.Entry{}
	if err := r.db.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get all entries: %w", err)
	}
	return entries, nil
}

// GetByID retrieves a single entry by its ID from the database.
func (r *GORMEntryRepository) GetByID(id string) (*models.Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("entry id %q: %w", id, ErrInvalidID)
	}
	var entry models.Entry
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entry by ID %s: %w", id, err)
	}
	return &entry, nil
}

// Create creates a new entry in the database, assigning an ID if absent.
func (r *GORMEntryRepository) Create(entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// Update replaces an existing entry in the database.
func (r *GORMEntryRepository) Update(entry *models.Entry) error {
	if _, err := uuid.Parse(entry.ID); err != nil {
		return fmt.Errorf("entry id %q: %w", entry.ID, ErrInvalidID)
	}
	res := r.db.Model(&models.Entry{}).Where("id = ?", entry.ID).Select("*").Updates(entry)
	if res.Error != nil {
		return fmt.Errorf("failed to update entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("entry %s: %w", entry.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes an entry by its ID from the database.
func (r *GORMEntryRepository) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("entry id %q: %w", id, ErrInvalidID)
	}
	res := r.db.Delete(&models.Entry{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}
