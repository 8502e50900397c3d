package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lecompagnon/boamp-companion/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const principalContextKey = "user_id"

// Server exposes the companion over HTTP. Every /api route requires an
// authenticated principal; who the caller is never comes from a request body,
// only from the X-User-ID header the auth proxy in front of us sets.
type Server struct {
	echo    *echo.Echo
	handler *Handler
}

func NewServer(handler *Handler) *Server {

	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler()
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	api := e.Group("/api", principalMiddleware)

	api.GET("/tenders", handler.GetTenders)
	api.GET("/tenders/:id", handler.GetTender)
	api.POST("/tenders/:id/analysis", handler.AnalyzeTender)
	api.POST("/tenders/:id/chat", handler.ChatAboutTender)

	api.GET("/workspace", handler.GetWorkspace)
	api.PUT("/interactions/:tenderID", handler.UpsertInteraction)
	api.POST("/interactions/:tenderID/reminder", handler.SetReminder)
	api.DELETE("/interactions/:tenderID/reminder", handler.ClearReminder)

	api.GET("/views", handler.GetView)
	api.PUT("/views", handler.SaveView)

	api.GET("/profile", handler.GetProfile)
	api.PUT("/profile", handler.UpsertProfile)
	api.DELETE("/profile", handler.DeleteProfile)
	api.POST("/profile/cpv-suggestions", handler.SuggestCPVCodes)

	return &Server{echo: e, handler: handler}
}

func (s *Server) Start(address string) error {
	err := s.echo.Start(address)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func principalMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get("X-User-ID")
		if userID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing X-User-ID header")
		}
		c.Set(principalContextKey, userID)
		return next(c)
	}
}

func principal(c echo.Context) string {
	userID, _ := c.Get(principalContextKey).(string)
	return userID
}

func errorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).
				Errorf("unhandled error on %v: %v", c.Request().RequestURI, err)
			he = &echo.HTTPError{
				Code:    http.StatusInternalServerError,
				Message: http.StatusText(http.StatusInternalServerError),
			}
		}

		if !c.Response().Committed {
			if err := c.JSON(he.Code, map[string]interface{}{"error": he.Message}); err != nil {
				log.Errorf("failed to write error response: %v", err)
			}
		}
	}
}
