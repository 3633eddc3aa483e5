package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/finsight/backend/internal/core/ports/services"
	"github.com/finsight/backend/internal/dto"
	"github.com/finsight/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// planningHandler handles HTTP requests for balance reconstruction,
// monthly snapshots and forward projection.
type planningHandler struct {
	planningService portssvc.PlanningSvcFacade
}

// newPlanningHandler creates a new planningHandler.
func newPlanningHandler(ps portssvc.PlanningSvcFacade) *planningHandler {
	return &planningHandler{
		planningService: ps,
	}
}

// registerPlanningRoutes registers the balance, snapshot and projection routes.
func registerPlanningRoutes(rg *gin.RouterGroup, planningService portssvc.PlanningSvcFacade) {
	h := newPlanningHandler(planningService)

	rg.GET("/balance", h.getBalance)
	rg.GET("/projection", h.getProjection)

	snapshots := rg.Group("/snapshots")
	{
		snapshots.GET("", h.listSnapshots)
		snapshots.POST("", h.computeSnapshot)
	}
}

// getBalance godoc
// @Summary Get reconstructed balance
// @Description Reconstructs the user's cash position as of a date from streams, entries and goal contributions
// @Tags planning
// @Produce  json
// @Param   asOf query string false "Date (YYYY-MM-DD), defaults to now"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /balance [get]
func (h *planningHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.BalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	asOf := time.Now()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	balance, err := h.planningService.GetBalance(c.Request.Context(), userID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Balance not found", "Failed to compute balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance, AsOf: asOf})
}

// listSnapshots godoc
// @Summary List monthly snapshots
// @Description Retrieves stored health snapshots for a month range, ordered by month
// @Tags planning
// @Produce  json
// @Param   from query string true "First month (YYYY-MM)"
// @Param   to query string true "Last month (YYYY-MM)"
// @Success 200 {object} dto.ListSnapshotsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list snapshots"
// @Security BearerAuth
// @Router /snapshots [get]
func (h *planningHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListSnapshotsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListSnapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	snapshots, err := h.planningService.GetSnapshots(c.Request.Context(), userID, params.From, params.To)
	if err != nil {
		logger.Error("Failed to list snapshots from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list snapshots"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSnapshotsResponse(snapshots))
}

// computeSnapshot godoc
// @Summary Compute a monthly snapshot
// @Description Computes and stores the health snapshot for a month, replacing any previous row for that month
// @Tags planning
// @Accept  json
// @Produce  json
// @Param   snapshot body dto.ComputeSnapshotRequest true "Month to compute"
// @Success 200 {object} dto.SnapshotResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute snapshot"
// @Security BearerAuth
// @Router /snapshots [post]
func (h *planningHandler) computeSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ComputeSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ComputeSnapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	snapshot, err := h.planningService.ComputeSnapshot(c.Request.Context(), userID, req.Month)
	if err != nil {
		respondServiceError(c, logger, err, "Snapshot not found", "Failed to compute snapshot")
		return
	}

	resp := dto.ToSnapshotResponse(snapshot)
	c.JSON(http.StatusOK, resp)
}

// getProjection godoc
// @Summary Project balance forward
// @Description Projects the user's balance forward by whole months with decaying confidence
// @Tags planning
// @Produce  json
// @Param   horizonMonths query int false "Months ahead to project" default(12)
// @Success 200 {object} dto.ProjectionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to project balance"
// @Security BearerAuth
// @Router /projection [get]
func (h *planningHandler) getProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ProjectionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetProjection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	points, err := h.planningService.ProjectBalance(c.Request.Context(), userID, params.HorizonMonths)
	if err != nil {
		respondServiceError(c, logger, err, "Projection not found", "Failed to project balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectionResponse(points))
}
