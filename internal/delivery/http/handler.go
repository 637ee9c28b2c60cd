package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vinolens/backend/internal/domain"
	"github.com/vinolens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recognition *usecase.RecognitionService
	matcher     *usecase.MatchingService
	history     domain.HistoryRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(
	recognition *usecase.RecognitionService,
	matcher *usecase.MatchingService,
	history domain.HistoryRepository,
) *Handler {
	return &Handler{
		recognition: recognition,
		matcher:     matcher,
		history:     history,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "vinolens-backend",
		"version": "1.0.0",
	})
}

// AnalyzeLabel handles a multipart label image upload and returns the
// recognition result.
func (h *Handler) AnalyzeLabel(c *gin.Context) {
	if h.recognition == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "recognition service not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	result, err := h.recognition.AnalyzeLabel(c.Request.Context(), image, imageMediaType(header.Header.Get("Content-Type"), header.Filename))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// Internal error detail is not part of the UI contract.
			c.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed"})
		}
		return
	}

	if h.history != nil {
		entry := &domain.HistoryEntry{Result: *result}
		if err := h.history.Save(c.Request.Context(), entry); err == nil {
			c.JSON(http.StatusOK, gin.H{"historyId": entry.ID, "result": result})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// SearchWines handles catalog free-text search
func (h *Handler) SearchWines(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	wines := h.matcher.Search(query)
	if wines == nil {
		wines = []domain.Wine{}
	}
	c.JSON(http.StatusOK, gin.H{"wines": wines})
}

// ListHistory returns recognition history, newest first
func (h *Handler) ListHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "history store not configured"})
		return
	}

	entries, err := h.history.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	if entries == nil {
		entries = []*domain.HistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// favoriteRequest is the SetFavorite request body
type favoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// SetFavorite marks or unmarks a history entry as favorite
func (h *Handler) SetFavorite(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "history store not configured"})
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.history.SetFavorite(c.Request.Context(), c.Param("id"), req.Favorite)
	if err != nil {
		if errors.Is(err, domain.ErrHistoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "history entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update history entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "favorite": req.Favorite})
}

// imageMediaType resolves the uploaded media type, falling back to the file
// extension when the part has no Content-Type.
func imageMediaType(contentType, filename string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return contentType
	}
	return "image/" + ext
}
