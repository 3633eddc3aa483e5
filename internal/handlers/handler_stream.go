package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finsight/backend/internal/apperrors"
	portssvc "github.com/finsight/backend/internal/core/ports/services"
	"github.com/finsight/backend/internal/dto"
	"github.com/finsight/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// streamHandler handles HTTP requests related to recurring cash flow streams.
type streamHandler struct {
	streamService portssvc.StreamSvcFacade
}

// newStreamHandler creates a new streamHandler.
func newStreamHandler(ss portssvc.StreamSvcFacade) *streamHandler {
	return &streamHandler{
		streamService: ss,
	}
}

// RegisterStreamRoutes registers all stream-related routes.
func RegisterStreamRoutes(rg *gin.RouterGroup, streamService portssvc.StreamSvcFacade) {
	registerCustomValidators()
	h := newStreamHandler(streamService)

	streams := rg.Group("/streams")
	{
		streams.POST("", h.createStream)
		streams.GET("", h.listStreams)
		streams.GET("/:id", h.getStream)
		streams.PUT("/:id", h.updateStream)
		streams.DELETE("/:id", h.deactivateStream)
	}
}

// createStream godoc
// @Summary Create a cash flow stream
// @Description Creates a recurring income or expense stream for the authenticated user
// @Tags streams
// @Accept  json
// @Produce  json
// @Param   stream body dto.CreateStreamRequest true "Stream details"
// @Success 201 {object} dto.StreamResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create stream"
// @Security BearerAuth
// @Router /streams [post]
func (h *streamHandler) createStream(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create stream request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stream, err := h.streamService.CreateStream(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create stream in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stream"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToStreamResponse(stream))
}

// listStreams godoc
// @Summary List cash flow streams
// @Description Retrieves the authenticated user's streams with token-based pagination
// @Tags streams
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Param   includeInactive query bool false "Include deactivated streams" default(false)
// @Success 200 {object} dto.ListStreamsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list streams"
// @Security BearerAuth
// @Router /streams [get]
func (h *streamHandler) listStreams(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListStreamsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListStreams", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	streams, nextToken, err := h.streamService.ListStreams(c.Request.Context(), userID, params.Limit, params.NextToken, params.IncludeInactive)
	if err != nil {
		logger.Error("Failed to list streams from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list streams"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListStreamsResponse(streams, nextToken))
}

// getStream godoc
// @Summary Get a cash flow stream by ID
// @Description Retrieves a specific stream owned by the authenticated user
// @Tags streams
// @Produce  json
// @Param   id path string true "Stream ID"
// @Success 200 {object} dto.StreamResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Stream not found"
// @Failure 500 {object} map[string]string "Failed to retrieve stream"
// @Security BearerAuth
// @Router /streams/{id} [get]
func (h *streamHandler) getStream(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	streamID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stream, err := h.streamService.GetStreamByID(c.Request.Context(), streamID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Stream not found", "Failed to retrieve stream")
		return
	}

	c.JSON(http.StatusOK, dto.ToStreamResponse(stream))
}

// updateStream godoc
// @Summary Update a cash flow stream
// @Description Updates a stream's name, amount or end date
// @Tags streams
// @Accept  json
// @Produce  json
// @Param   id path string true "Stream ID"
// @Param   stream body dto.UpdateStreamRequest true "Stream fields to update"
// @Success 200 {object} dto.StreamResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Stream not found"
// @Failure 500 {object} map[string]string "Failed to update stream"
// @Security BearerAuth
// @Router /streams/{id} [put]
func (h *streamHandler) updateStream(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	streamID := c.Param("id")
	var req dto.UpdateStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStream", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stream, err := h.streamService.UpdateStream(c.Request.Context(), streamID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Stream not found", "Failed to update stream")
		return
	}

	c.JSON(http.StatusOK, dto.ToStreamResponse(stream))
}

// deactivateStream godoc
// @Summary Deactivate a cash flow stream
// @Description Marks a stream inactive; its accrued history keeps counting toward past balances
// @Tags streams
// @Produce  json
// @Param   id path string true "Stream ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Stream not found"
// @Failure 500 {object} map[string]string "Failed to deactivate stream"
// @Security BearerAuth
// @Router /streams/{id} [delete]
func (h *streamHandler) deactivateStream(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	streamID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.streamService.DeactivateStream(c.Request.Context(), streamID, userID); err != nil {
		respondServiceError(c, logger, err, "Stream not found", "Failed to deactivate stream")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondServiceError maps service errors for stream operations to HTTP responses.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, notFoundMsg, internalMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
