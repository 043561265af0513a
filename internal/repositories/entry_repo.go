package repositories

import "saalisloki/internal/models"

// EntryRepository defines the interface for entry data access.
//
// GetByID, Update and Delete return ErrInvalidID for ids that are not
// well-formed identifiers, without touching storage, and ErrNotFound
// when no entry matches.
type EntryRepository interface {
	GetAll() ([]models.Entry, error)
	GetByID(id string) (*models.Entry, error)
	Create(entry *models.Entry) error
	Update(entry *models.Entry) error
	Delete(id string) error
}
