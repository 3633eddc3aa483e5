package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finsight/backend/internal/core/ports/services"
	"github.com/finsight/backend/internal/dto"
	"github.com/finsight/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// goalHandler handles HTTP requests related to financial goals and their
// contributions.
type goalHandler struct {
	goalService     portssvc.GoalSvcFacade
	planningService portssvc.PlanningSvcFacade
}

// newGoalHandler creates a new goalHandler.
func newGoalHandler(gs portssvc.GoalSvcFacade, ps portssvc.PlanningSvcFacade) *goalHandler {
	return &goalHandler{
		goalService:     gs,
		planningService: ps,
	}
}

// registerGoalRoutes registers all goal-related routes, including the
// per-goal planning endpoints (scenarios, forecast, analysis).
func registerGoalRoutes(rg *gin.RouterGroup, goalService portssvc.GoalSvcFacade, planningService portssvc.PlanningSvcFacade) {
	h := newGoalHandler(goalService, planningService)

	goals := rg.Group("/goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.GET("/:id", h.getGoal)
		goals.PUT("/:id", h.updateGoal)
		goals.DELETE("/:id", h.deleteGoal)

		goals.POST("/:id/contributions", h.addContribution)
		goals.GET("/:id/contributions", h.listContributions)

		goals.POST("/:id/scenarios", h.generateScenarios)
		goals.GET("/:id/forecast", h.forecastAsset)
		goals.GET("/:id/analysis", h.analyzeContributions)
	}
}

// createGoal godoc
// @Summary Create a financial goal
// @Description Creates a goal with a target amount and date, optionally with asset forecasting parameters
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   goal body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create goal"
// @Security BearerAuth
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create goal request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Goal not found", "Failed to create goal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToGoalResponse(goal))
}

// listGoals godoc
// @Summary List financial goals
// @Description Retrieves the authenticated user's goals with token-based pagination, nearest deadline first
// @Tags goals
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Param   includeCompleted query bool false "Include completed goals" default(false)
// @Success 200 {object} dto.ListGoalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list goals"
// @Security BearerAuth
// @Router /goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListGoalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListGoals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	goals, nextToken, err := h.goalService.ListGoals(c.Request.Context(), userID, params.Limit, params.NextToken, params.IncludeCompleted)
	if err != nil {
		logger.Error("Failed to list goals from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list goals"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListGoalsResponse(goals, nextToken))
}

// getGoal godoc
// @Summary Get a financial goal by ID
// @Description Retrieves a specific goal owned by the authenticated user
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 200 {object} dto.GoalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve goal"
// @Security BearerAuth
// @Router /goals/{id} [get]
func (h *goalHandler) getGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.goalService.GetGoalByID(c.Request.Context(), goalID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Goal not found", "Failed to retrieve goal")
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// updateGoal godoc
// @Summary Update a financial goal
// @Description Updates a goal's name, target amount, target date or asset parameters
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   goal body dto.UpdateGoalRequest true "Goal fields to update"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to update goal"
// @Security BearerAuth
// @Router /goals/{id} [put]
func (h *goalHandler) updateGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")
	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateGoal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), goalID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Goal not found", "Failed to update goal")
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// deleteGoal godoc
// @Summary Delete a financial goal
// @Description Removes a goal and its contribution history permanently
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to delete goal"
// @Security BearerAuth
// @Router /goals/{id} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), goalID, userID); err != nil {
		respondServiceError(c, logger, err, "Goal not found", "Failed to delete goal")
		return
	}

	c.Status(http.StatusNoContent)
}

// addContribution godoc
// @Summary Record a goal contribution
// @Description Records a monthly contribution, advancing the goal's current amount and completing it when the target is reached
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   contribution body dto.AddContributionRequest true "Contribution details"
// @Success 201 {object} dto.ContributionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to record contribution"
// @Security BearerAuth
// @Router /goals/{id}/contributions [post]
func (h *goalHandler) addContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")
	var req dto.AddContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddContribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contribution, err := h.goalService.AddContribution(c.Request.Context(), goalID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Goal not found", "Failed to record contribution")
		return
	}

	c.JSON(http.StatusCreated, dto.ToContributionResponse(contribution))
}

// listContributions godoc
// @Summary List goal contributions
// @Description Retrieves the full contribution history of a goal ordered by month
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 200 {object} dto.ListContributionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to list contributions"
// @Security BearerAuth
// @Router /goals/{id}/contributions [get]
func (h *goalHandler) listContributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contributions, err := h.goalService.ListContributions(c.Request.Context(), goalID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Goal not found", "Failed to list contributions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListContributionsResponse(contributions))
}

// generateScenarios godoc
// @Summary Generate savings scenarios for a goal
// @Description Evaluates candidate savings rates against the goal and recommends the one closest to the desired timeline
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   scenario body dto.ScenarioRequest true "Scenario inputs"
// @Success 200 {object} dto.ScenarioSetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to generate scenarios"
// @Security BearerAuth
// @Router /goals/{id}/scenarios [post]
func (h *goalHandler) generateScenarios(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")
	var req dto.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateScenarios", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	scenarios, err := h.planningService.GenerateScenarios(c.Request.Context(), goalID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Goal not found", "Failed to generate scenarios")
		return
	}

	c.JSON(http.StatusOK, scenarios)
}

// forecastAsset godoc
// @Summary Forecast the asset attached to a goal
// @Description Projects the asset's price with compound growth and the savings required for its down payment
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   horizonMonths query int false "Months ahead to project" default(12)
// @Success 200 {object} dto.AssetForecastResponse
// @Failure 400 {object} map[string]string "Invalid input or goal has no asset parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to forecast asset"
// @Security BearerAuth
// @Router /goals/{id}/forecast [get]
func (h *goalHandler) forecastAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ForecastParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ForecastAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	forecast, err := h.planningService.ForecastGoalAsset(c.Request.Context(), goalID, params.HorizonMonths, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Goal not found", "Failed to forecast asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetForecastResponse(forecast))
}

// analyzeContributions godoc
// @Summary Analyze a goal's contribution history
// @Description Rates consistency and trend of contributions and projects the completion date
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 200 {object} dto.ContributionAnalysisResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Goal not found"
// @Failure 500 {object} map[string]string "Failed to analyze contributions"
// @Security BearerAuth
// @Router /goals/{id}/analysis [get]
func (h *goalHandler) analyzeContributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	analysis, err := h.planningService.AnalyzeGoalContributions(c.Request.Context(), goalID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Goal not found", "Failed to analyze contributions")
		return
	}

	c.JSON(http.StatusOK, dto.ToContributionAnalysisResponse(analysis))
}
