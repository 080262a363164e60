package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/coordinate-advisor/internal/domain/coordinate"
	"github.com/yanqian/coordinate-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/coordinate-advisor/pkg/errors"
)

const (
	sessionHeader = "X-Session-ID"
	sourceHeader  = "X-Suggestion-Source"

	maxSuggestBodyBytes = 16 << 10
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	weatherSvc weather.Service
	suggestSvc coordinate.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(weatherSvc weather.Service, suggestSvc coordinate.Service, logger *slog.Logger) *Handler {
	return &Handler{
		weatherSvc: weatherSvc,
		suggestSvc: suggestSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Weather returns the current snapshot for the configured location.
func (h *Handler) Weather(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	snap, err := h.weatherSvc.Current(c.Request.Context())
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Suggest runs the outfit suggestion pipeline. The body is parsed by the domain
// validator rather than bound, since malformed fields degrade to defaults.
func (h *Handler) Suggest(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSuggestBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "Invalid JSON body", err))
		return
	}

	req, err := coordinate.ParseRequest(body)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	req.SessionID = strings.TrimSpace(c.GetHeader(sessionHeader))

	resp, err := h.suggestSvc.Suggest(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	c.Header(sourceHeader, string(resp.Source))
	c.JSON(http.StatusOK, resp)
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
