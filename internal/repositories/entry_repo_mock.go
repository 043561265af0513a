package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"saalisloki/internal/models"
)

// MockEntryRepository is an in-memory implementation of EntryRepository,
// used in tests and for running without a database.
type MockEntryRepository struct {
	entries map[string]models.Entry
	mu      sync.RWMutex
}

// NewMockEntryRepository creates a new instance of MockEntryRepository.
func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]models.Entry),
	}
}

// GetAll returns all entries.
func (r *MockEntryRepository) GetAll() ([]models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entryList := make([]models.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entryList = append(entryList, e)
	}
	return entryList, nil
}

// GetByID returns an entry by its ID.
func (r *MockEntryRepository) GetByID(id string) (*models.Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("entry id %q: %w", id, ErrInvalidID)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return &entry, nil
}

// Create adds a new entry, assigning an ID if absent.
func (r *MockEntryRepository) Create(entry *models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.entries[entry.ID] = *entry
	return nil
}

// Update replaces an existing entry.
func (r *MockEntryRepository) Update(entry *models.Entry) error {
	if _, err := uuid.Parse(entry.ID); err != nil {
		return fmt.Errorf("entry id %q: %w", entry.ID, ErrInvalidID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.ID]; !ok {
		return fmt.Errorf("entry %s: %w", entry.ID, ErrNotFound)
	}
	r.entries[entry.ID] = *entry
	return nil
}

// Delete removes an entry by its ID.
func (r *MockEntryRepository) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("entry id %q: %w", id, ErrInvalidID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	delete(r.entries, id)
	return nil
}
