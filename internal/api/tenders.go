package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lecompagnon/boamp-companion/internal/clients/boamp"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/lecompagnon/boamp-companion/internal/services"
	"github.com/pkg/errors"
)

type tendersQuery struct {
	Text           string  `query:"text"`
	Procedure      string  `query:"procedure"`
	PublishedAfter string  `query:"published_after"`
	MinScore       int     `query:"min_score" validate:"gte=0,lte=100"`
	MaxBudget      float64 `query:"max_budget" validate:"gte=0"`
	Offset         int     `query:"offset" validate:"gte=0"`
}

func (h *Handler) GetTenders(c echo.Context) error {

	var query tendersQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	filter := services.DashboardFilter{
		SearchFilter: services.SearchFilter{
			Text:      query.Text,
			Procedure: query.Procedure,
		},
		MinScore:  query.MinScore,
		MaxBudget: query.MaxBudget,
	}

	if query.PublishedAfter != "" {
		publishedAfter, err := time.Parse("2006-01-02", query.PublishedAfter)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "published_after must be YYYY-MM-DD")
		}
		filter.PublishedAfter = publishedAfter
	}

	profile, err := h.requireProfile(c)
	if err != nil {
		return err
	}

	page, err := h.dashboard.FetchPage(c.Request().Context(), profile, filter, query.Offset)
	if err != nil {
		return upstreamError(err)
	}

	return c.JSON(http.StatusOK, page)
}

func (h *Handler) GetTender(c echo.Context) error {

	profile, err := h.requireProfile(c)
	if err != nil {
		return err
	}

	tender, err := h.tenders.GetTender(c.Request().Context(), profile, c.Param("id"))
	if err != nil {
		if errors.Is(err, boamp.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "tender not found")
		}
		return upstreamError(err)
	}

	return c.JSON(http.StatusOK, tender)
}

// requireProfile resolves the caller's profile; every tender operation needs
// one, since scoring and geography both come from it.
func (h *Handler) requireProfile(c echo.Context) (*models.Profile, error) {

	profile, err := h.profiles.GetByID(c.Request().Context(), principal(c))
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "profile not set up")
	}
	return profile, nil
}

// upstreamError maps a feed or model failure to 502: the request was fine,
// the dependency was not.
func upstreamError(err error) error {
	return echo.NewHTTPError(http.StatusBadGateway, err.Error())
}
