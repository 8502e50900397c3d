package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/lecompagnon/boamp-companion/internal/services"
)

func (h *Handler) GetWorkspace(c echo.Context) error {

	entries, err := h.workspace.GetEntries(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"entries": entries})
}

type upsertInteractionRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes"`
}

func (h *Handler) UpsertInteraction(c echo.Context) error {

	var request upsertInteractionRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, err := models.ParseInteractionStatus(request.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, tenderID := principal(c), c.Param("tenderID")
	if err = h.interactions.Upsert(c.Request().Context(), userID, tenderID, status, request.Notes); err != nil {
		return err
	}

	interaction, err := h.interactions.GetByUserAndTender(c.Request().Context(), userID, tenderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, interaction)
}

type setReminderRequest struct {
	RemindAt time.Time `json:"remind_at" validate:"required"`
}

func (h *Handler) SetReminder(c echo.Context) error {

	var request setReminderRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, tenderID := principal(c), c.Param("tenderID")

	interaction, err := h.interactions.GetByUserAndTender(c.Request().Context(), userID, tenderID)
	if err != nil {
		return err
	}
	if interaction == nil {
		return echo.NewHTTPError(http.StatusNotFound, "tender is not triaged")
	}

	if err = h.interactions.SetReminder(c.Request().Context(), userID, tenderID, request.RemindAt); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ClearReminder(c echo.Context) error {

	err := h.interactions.ClearReminder(c.Request().Context(), principal(c), c.Param("tenderID"))
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetView(c echo.Context) error {

	filter, err := h.dashboard.LoadView(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	if filter == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no saved view")
	}

	return c.JSON(http.StatusOK, filter)
}

func (h *Handler) SaveView(c echo.Context) error {

	var filter services.DashboardFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.dashboard.SaveView(c.Request().Context(), principal(c), filter); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
