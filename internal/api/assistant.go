package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lecompagnon/boamp-companion/internal/clients/boamp"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/lecompagnon/boamp-companion/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) AnalyzeTender(c echo.Context) error {

	profile, tender, err := h.resolveTender(c)
	if err != nil {
		return err
	}

	analysis, err := h.assistant.AnalyzeTender(c.Request().Context(), profile, *tender)
	if err != nil {
		return upstreamError(err)
	}

	h.persistAnalysis(c, profile.UserID, tender.ID, analysis)

	return c.JSON(http.StatusOK, analysis)
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

func (h *Handler) ChatAboutTender(c echo.Context) error {

	var request chatRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, tender, err := h.resolveTender(c)
	if err != nil {
		return err
	}

	history := h.chatHistory(c, profile.UserID, tender.ID)

	reply, err := h.assistant.ChatAboutTender(c.Request().Context(), profile, *tender, history, request.Message)
	if err != nil {
		return upstreamError(err)
	}

	h.persistChatLog(c, profile.UserID, tender.ID, append(history,
		models.ChatMessage{Role: "user", Content: request.Message, SentAt: time.Now().UTC()},
		models.ChatMessage{Role: "assistant", Content: reply, SentAt: time.Now().UTC()},
	))

	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}

func (h *Handler) resolveTender(c echo.Context) (*models.Profile, *models.Tender, error) {

	profile, err := h.requireProfile(c)
	if err != nil {
		return nil, nil, err
	}

	tender, err := h.tenders.GetTender(c.Request().Context(), profile, c.Param("id"))
	if err != nil {
		if errors.Is(err, boamp.ErrNotFound) {
			return nil, nil, echo.NewHTTPError(http.StatusNotFound, "tender not found")
		}
		return nil, nil, upstreamError(err)
	}

	return profile, tender, nil
}

func (h *Handler) chatHistory(c echo.Context, userID, tenderID string) []models.ChatMessage {

	interaction, err := h.interactions.GetByUserAndTender(c.Request().Context(), userID, tenderID)
	if err != nil || interaction == nil {
		return []models.ChatMessage{}
	}

	history, err := interaction.ChatMessages()
	if err != nil {
		log.Warningf("discarding unreadable chat log for tender %v: %v", tenderID, err)
		return []models.ChatMessage{}
	}
	return history
}

// persistAnalysis stores the assessment on the interaction row when one
// exists. The analysis was already returned to the caller, so a storage
// failure is logged, not surfaced.
func (h *Handler) persistAnalysis(c echo.Context, userID, tenderID string, analysis *models.TenderAnalysis) {

	encoded, err := json.Marshal(analysis)
	if err != nil {
		log.Errorf("failed to encode analysis: %v", err)
		return
	}

	if err = h.interactions.SaveAnalysis(c.Request().Context(), userID, tenderID, string(encoded)); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to persist analysis for tender %v: %v", tenderID, err)
	}
}

func (h *Handler) persistChatLog(c echo.Context, userID, tenderID string, history []models.ChatMessage) {

	encoded, err := json.Marshal(history)
	if err != nil {
		log.Errorf("failed to encode chat log: %v", err)
		return
	}

	if err = h.interactions.SaveChatLog(c.Request().Context(), userID, tenderID, string(encoded)); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to persist chat log for tender %v: %v", tenderID, err)
	}
}
