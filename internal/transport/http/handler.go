package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mensetsu-app/backend/internal/domain"
	"github.com/mensetsu-app/backend/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/session/start", h.StartSession)
	e.POST("/turn", h.Turn)
	e.POST("/session/end", h.EndSession)
	e.GET("/health", h.Health)
}

// StartSession creates a new interview session.
// POST /session/start
func (h *Handler) StartSession(c echo.Context) error {
	track := domain.Track(c.FormValue("track"))
	field := c.FormValue("field")
	target := c.FormValue("target")

	sid, greeting, err := h.service.StartSession(track, field, target)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": vErr.Reason})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"session_id":    sid,
		"first_message": greeting,
	})
}

// Turn runs one interview turn from an uploaded recording.
// POST /turn
func (h *Handler) Turn(c echo.Context) error {
	sessionID := c.FormValue("session_id")

	file, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "upload_error: " + err.Error()})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "upload_error: " + err.Error()})
	}
	defer src.Close()

	result, err := h.service.Turn(c.Request().Context(), sessionID, file.Filename, src)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"user_text":      result.UserText,
		"assistant_text": result.AssistantText,
		"audio_url":      result.AudioURL,
	})
}

// EndSession returns the retrospective summary for a session.
// POST /session/end
func (h *Handler) EndSession(c echo.Context) error {
	sessionID := c.FormValue("session_id")

	summary, err := h.service.EndSession(c.Request().Context(), sessionID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

// Health returns the dependency health report.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Health(c.Request().Context()))
}

// errorResponse maps service errors onto status codes: unknown session is
// 404, stage failures carry their own status, anything else is 500.
func (h *Handler) errorResponse(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": domain.ErrNotFound.Error()})
	}
	var stageErr *domain.StageError
	if errors.As(err, &stageErr) {
		return c.JSON(stageErr.Stage.HTTPStatus(), map[string]string{"error": stageErr.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
