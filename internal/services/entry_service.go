package services

import (
	"log"

	"saalisloki/internal/models"
	"saalisloki/internal/repositories"
	"saalisloki/internal/validation"
	"saalisloki/pkg/rabbitmq"
)

// EntryService handles business logic for catch entries: normalization,
// validation, persistence and event publishing.
type EntryService struct {
	entryRepo repositories.EntryRepository
	mqClient  *rabbitmq.Client
}

// NewEntryService creates a new EntryService. mqClient may be nil, in
// which case no events are published.
func NewEntryService(entryRepo repositories.EntryRepository, mqClient *rabbitmq.Client) *EntryService {
	return &EntryService{
		entryRepo: entryRepo,
		mqClient:  mqClient,
	}
}

// normalizeEntry fills absent optional fields with their defaults
// before validation, so the validator always sees a value. Coordinates
// stay empty; the empty string is a valid coordinate value.
func normalizeEntry(e *models.Entry) {
	if e.Length == "" {
		e.Length = "-"
	}
	if e.Weight == "" {
		e.Weight = "-"
	}
	if e.Lure == "" {
		e.Lure = "-"
	}
	if e.Place == "" {
		e.Place = "-"
	}
}

// ListEntries retrieves all entries.
func (s *EntryService) ListEntries() ([]models.Entry, error) {
	return s.entryRepo.GetAll()
}

// GetEntry retrieves a single entry by its ID.
func (s *EntryService) GetEntry(id string) (*models.Entry, error) {
	return s.entryRepo.GetByID(id)
}

// CreateEntry normalizes and validates an incoming entry, persists it
// and publishes a created event. The storage layer assigns the id.
func (s *EntryService) CreateEntry(entry models.Entry) (*models.Entry, error) {
	normalizeEntry(&entry)
	if err := validation.ValidateEntry(entry); err != nil {
		return nil, err
	}

	entry.ID = ""
	if err := s.entryRepo.Create(&entry); err != nil {
		return nil, err
	}

	s.publish("entry.created", entry)
	return &entry, nil
}

// UpdateEntry replaces all fields of an existing entry except its id.
func (s *EntryService) UpdateEntry(id string, entry models.Entry) (*models.Entry, error) {
	normalizeEntry(&entry)
	if err := validation.ValidateEntry(entry); err != nil {
		return nil, err
	}

	entry.ID = id
	if err := s.entryRepo.Update(&entry); err != nil {
		return nil, err
	}

	s.publish("entry.updated", entry)
	return &entry, nil
}

// DeleteEntry removes an entry by its ID.
func (s *EntryService) DeleteEntry(id string) error {
	if err := s.entryRepo.Delete(id); err != nil {
		return err
	}

	s.publish("entry.deleted", models.Entry{ID: id})
	return nil
}

// publish sends an entry event when a broker is configured. Publish
// failures are logged, never surfaced; the write already happened.
func (s *EntryService) publish(action string, entry models.Entry) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEntryEvent(action, entry); err != nil {
		log.Printf("Warning: failed to publish %s event for entry %s: %v", action, entry.ID, err)
	}
}
