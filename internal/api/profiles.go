package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/lecompagnon/boamp-companion/internal/events"
)

type profileResponse struct {
	UserID           string   `json:"user_id"`
	CompanyName      string   `json:"company_name"`
	Specialization   string   `json:"specialization"`
	CPVCodes         []string `json:"cpv_codes"`
	NegativeKeywords []string `json:"negative_keywords"`
	Scope            string   `json:"scope"`
	Departments      []string `json:"departments"`
	Subscription     string   `json:"subscription"`
}

func toProfileResponse(profile *models.Profile) profileResponse {
	return profileResponse{
		UserID:           profile.UserID,
		CompanyName:      profile.CompanyName,
		Specialization:   profile.Specialization,
		CPVCodes:         profile.CPVCodesAsArray(),
		NegativeKeywords: profile.NegativeKeywordsAsArray(),
		Scope:            string(profile.Scope),
		Departments:      profile.DepartmentsAsArray(),
		Subscription:     string(profile.Subscription),
	}
}

func (h *Handler) GetProfile(c echo.Context) error {

	profile, err := h.requireProfile(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

type upsertProfileRequest struct {
	CompanyName      string   `json:"company_name" validate:"required"`
	Specialization   string   `json:"specialization" validate:"required"`
	CPVCodes         []string `json:"cpv_codes"`
	NegativeKeywords []string `json:"negative_keywords"`
	Scope            string   `json:"scope" validate:"required"`
	Departments      []string `json:"departments"`
}

func (h *Handler) UpsertProfile(c echo.Context) error {

	var request upsertProfileRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	scope, err := models.ToGeographicScope(request.Scope)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if scope == models.ScopeDepartments && len(request.Departments) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "departments scope requires at least one department")
	}

	profile := models.NewProfile(principal(c), request.CompanyName, request.Specialization,
		scope, request.Departments)
	profile.CPVCodes = strings.Join(request.CPVCodes, ",")
	profile.NegativeKeywords = strings.Join(request.NegativeKeywords, ",")

	// an update never resets the subscription the user already has
	existing, err := h.profiles.GetByID(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	if existing != nil {
		profile.Subscription = existing.Subscription
		profile.LastCheckedAt = existing.LastCheckedAt
	}

	if err = h.profiles.Upsert(c.Request().Context(), *profile); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) DeleteProfile(c echo.Context) error {

	userID := principal(c)
	if err := h.profiles.Remove(c.Request().Context(), userID); err != nil {
		return err
	}

	h.bus.Publish(events.ProfileDeletedTopic, events.ProfileDeleted{UserID: userID})
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SuggestCPVCodes(c echo.Context) error {

	profile, err := h.requireProfile(c)
	if err != nil {
		return err
	}

	codes, err := h.assistant.SuggestCPVCodes(c.Request().Context(), profile)
	if err != nil {
		return upstreamError(err)
	}

	return c.JSON(http.StatusOK, map[string][]string{"cpv_codes": codes})
}
