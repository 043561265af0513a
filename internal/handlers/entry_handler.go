package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"saalisloki/internal/models"
	"saalisloki/internal/repositories"
	"saalisloki/internal/services"
	"saalisloki/internal/validation"
)

// EntryHandler handles HTTP requests for catch entries.
type EntryHandler struct {
	service *services.EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(service *services.EntryService) *EntryHandler {
	return &EntryHandler{
		service: service,
	}
}

// RegisterRoutes registers the entry routes. Reads are public; the
// auth middleware guards every mutation.
func (h *EntryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	entryRoutes := router.Group("/entries")
	entryRoutes.Get("/", h.HandleGetEntries)
	entryRoutes.Get("/:id", h.HandleGetEntryByID)
	entryRoutes.Post("/", auth, h.HandleCreateEntry)
	entryRoutes.Put("/:id", auth, h.HandleUpdateEntry)
	entryRoutes.Delete("/:id", auth, h.HandleDeleteEntry)
}

// HandleGetEntries retrieves all entries.
func (h *EntryHandler) HandleGetEntries(c *fiber.Ctx) error {
	entries, err := h.service.ListEntries()
	if err != nil {
		log.Printf("Error getting all entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not retrieve entries",
		})
	}
	return c.JSON(entries)
}

// HandleGetEntryByID retrieves a single entry by its ID.
func (h *EntryHandler) HandleGetEntryByID(c *fiber.Ctx) error {
	entry, err := h.service.GetEntry(c.Params("id"))
	if err != nil {
		return entryError(c, err)
	}
	return c.JSON(entry)
}

// HandleCreateEntry creates a new entry. The created entry is returned
// with a 200, matching the public API contract.
func (h *EntryHandler) HandleCreateEntry(c *fiber.Ctx) error {
	var entry models.Entry
	if err := c.BodyParser(&entry); err != nil {
		log.Printf("Error parsing entry request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	created, err := h.service.CreateEntry(entry)
	if err != nil {
		return entryError(c, err)
	}
	return c.JSON(created)
}

// HandleUpdateEntry replaces all fields of an existing entry.
func (h *EntryHandler) HandleUpdateEntry(c *fiber.Ctx) error {
	var entry models.Entry
	if err := c.BodyParser(&entry); err != nil {
		log.Printf("Error parsing entry request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	updated, err := h.service.UpdateEntry(c.Params("id"), entry)
	if err != nil {
		return entryError(c, err)
	}
	return c.JSON(updated)
}

// HandleDeleteEntry deletes an entry by its ID.
func (h *EntryHandler) HandleDeleteEntry(c *fiber.Ctx) error {
	if err := h.service.DeleteEntry(c.Params("id")); err != nil {
		return entryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// entryError translates service and repository failures to responses:
// validation failure and malformed id are 400, missing entry 404,
// anything else 500.
func entryError(c *fiber.Ctx, err error) error {
	var ve *validation.EntryError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Message,
		})
	case errors.Is(err, repositories.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed id",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "entry not found",
		})
	default:
		log.Printf("Entry operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}
