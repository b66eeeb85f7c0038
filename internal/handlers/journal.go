package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/moodscribe/moodscribe/internal/models"
	"github.com/moodscribe/moodscribe/internal/services"
	"github.com/moodscribe/moodscribe/internal/utils"
	"gorm.io/gorm"
)

// JournalHandler handles the journal entry routes
type JournalHandler struct {
	DB         *gorm.DB
	Classifier services.Classifier
}

// UpdateEntryInput is the PATCH /journal/:id request body
type UpdateEntryInput struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}

// EntryWithAnalysis is an entry joined with its analysis for API output
type EntryWithAnalysis struct {
	models.Journal
	Analysis *models.Analysis `json:"analysis"`
}

// currentUser extracts the authenticated user set by the auth middleware
func currentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("user").(*models.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// entryID parses the :id path parameter
func entryID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entry id %q", c.Params("id"))
	}
	return id, nil
}

// CreateEntry handles POST /api/journal
// @Summary Create a journal entry
// @Description Create a placeholder journal entry and seed its initial analysis
// @Tags Journal
// @Produce json
// @Success 201 {object} utils.DataResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /journal [post]
func (h *JournalHandler) CreateEntry(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden)
	}

	entry, err := services.CreateJournalEntry(c.Context(), h.DB, h.Classifier, user.ID)
	if err != nil {
		return utils.ErrorResponse(c, "Failed to create journal entry", fiber.StatusInternalServerError)
	}

	return utils.DataResponse(c, entry, fiber.StatusCreated)
}

// UpdateEntry handles PATCH /api/journal/:id
// @Summary Update a journal entry
// @Description Save new title/content, classify the content and upsert the derived analysis
// @Tags Journal
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param body body UpdateEntryInput true "New title and content"
// @Success 200 {object} utils.DataResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /journal/{id} [patch]
func (h *JournalHandler) UpdateEntry(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden)
	}

	id, err := entryID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest)
	}

	var input UpdateEntryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest)
	}

	entry, analysis, err := services.SaveEntry(c.Context(), h.DB, h.Classifier, user.ID, id, input.Title, input.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Journal entry %d not found", id))
		}
		return utils.ErrorResponse(c, "Failed to update journal entry", fiber.StatusInternalServerError)
	}

	return utils.DataResponse(c, EntryWithAnalysis{Journal: *entry, Analysis: analysis}, fiber.StatusOK)
}

// DeleteEntry handles DELETE /api/journal/:id
// @Summary Delete a journal entry
// @Description Delete the analysis then the entry
// @Tags Journal
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /journal/{id} [delete]
func (h *JournalHandler) DeleteEntry(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden)
	}

	id, err := entryID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest)
	}

	if err := services.DeleteJournalEntry(h.DB, user.ID, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Journal entry %d not found", id))
		}
		return utils.ErrorResponse(c, "Failed to delete journal entry", fiber.StatusInternalServerError)
	}

	return utils.MessageResponse(c, "Journal entry deleted successfully")
}

// GetEntry handles GET /api/journal/:id
// @Summary Get a journal entry
// @Tags Journal
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} utils.DataResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /journal/{id} [get]
func (h *JournalHandler) GetEntry(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden)
	}

	id, err := entryID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest)
	}

	entry, err := services.GetEntry(h.DB, user.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Journal entry %d not found", id))
		}
		return utils.ErrorResponse(c, "Failed to get journal entry", fiber.StatusInternalServerError)
	}

	// An entry whose first classification never completed has no analysis yet
	out := EntryWithAnalysis{Journal: *entry}
	analysis, err := services.GetAnalysis(h.DB, entry.ID)
	switch {
	case err == nil:
		out.Analysis = analysis
	case !errors.Is(err, services.ErrNotFound):
		return utils.ErrorResponse(c, "Failed to get journal entry", fiber.StatusInternalServerError)
	}

	return utils.DataResponse(c, out, fiber.StatusOK)
}

// ListEntries handles GET /api/journal
// @Summary List journal entries
// @Description List the caller's entries, newest first, each with its analysis
// @Tags Journal
// @Produce json
// @Success 200 {object} utils.DataResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /journal [get]
func (h *JournalHandler) ListEntries(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden)
	}

	entries, err := services.ListEntries(h.DB, user.ID)
	if err != nil {
		return utils.ErrorResponse(c, "Failed to list journal entries", fiber.StatusInternalServerError)
	}

	analyses, err := services.ListAnalyses(h.DB, user.ID)
	if err != nil {
		return utils.ErrorResponse(c, "Failed to list journal entries", fiber.StatusInternalServerError)
	}

	byEntry := make(map[uint64]*models.Analysis, len(analyses))
	for i := range analyses {
		byEntry[analyses[i].EntryID] = &analyses[i]
	}

	out := make([]EntryWithAnalysis, 0, len(entries))
	for _, entry := range entries {
		out = append(out, EntryWithAnalysis{Journal: entry, Analysis: byEntry[entry.ID]})
	}

	return utils.DataResponse(c, out, fiber.StatusOK)
}

// History handles GET /api/history
// @Summary Sentiment history
// @Description The caller's analyses in creation order plus the rounded average sentiment
// @Tags Journal
// @Produce json
// @Success 200 {object} utils.DataResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /history [get]
func (h *JournalHandler) History(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden)
	}

	analyses, err := services.ListAnalyses(h.DB, user.ID)
	if err != nil {
		return utils.ErrorResponse(c, "Failed to load history", fiber.StatusInternalServerError)
	}

	avg, err := services.AverageSentiment(h.DB, user.ID)
	if err != nil {
		return utils.ErrorResponse(c, "Failed to load history", fiber.StatusInternalServerError)
	}

	return utils.DataResponse(c, fiber.Map{
		"avg":      avg,
		"analyses": analyses,
	}, fiber.StatusOK)
}
