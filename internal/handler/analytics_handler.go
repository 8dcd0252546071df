package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portalgambit/backend/internal/auth"
	"portalgambit/backend/internal/models"
	"portalgambit/backend/internal/service"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// RecordGame godoc
// @Summary      Record game analytics
// @Description  Stores the analytics record of a finished game. Only participants may record it.
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        game_id path string                     true "Game ID"
// @Param        input   body models.GameAnalyticsInput  true "Game data"
// @Success      201  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /analytics/games/{game_id} [post]
func (h *AnalyticsHandler) RecordGame(c *gin.Context) {
	var input models.GameAnalyticsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	uid := auth.CurrentUserID(c)
	if uid != input.WhitePlayerID && uid != input.BlackPlayerID {
		forbidden(c, "Can only record analytics for games you participated in")
		return
	}
	input.GameID = c.Param("game_id")

	if _, err := h.analytics.RecordGameAnalytics(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusCreated, "Game analytics recorded successfully")
}

// GetDailyStats godoc
// @Summary      Statistics of one day
// @Description  Aggregates the analytics records of the UTC day. Once computed the result is cached.
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        date path      string  true  "Day (YYYY-MM-DD or RFC 3339)"
// @Success      200  {object}  models.DailyStats
// @Failure      400  {object}  ErrorResponse
// @Router       /analytics/daily/{date} [get]
func (h *AnalyticsHandler) GetDailyStats(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	stats, err := h.analytics.GetDailyStats(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetPlayerPerformance godoc
// @Summary      Performance of a player
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        uid  path     string  true   "User ID"
// @Param        days query    int     false  "Window in days" default(30)
// @Success      200  {object}  models.PlayerPerformance
// @Failure      400  {object}  ErrorResponse
// @Router       /analytics/players/{uid}/performance [get]
func (h *AnalyticsHandler) GetPlayerPerformance(c *gin.Context) {
	days, err := queryInt(c, "days", 30)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	perf, err := h.analytics.GetPlayerPerformance(c.Request.Context(), c.Param("uid"), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

// GetGlobalStats godoc
// @Summary      Global statistics
// @Description  Summary over the most recent games, recomputed at most once an hour.
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.GlobalStats
// @Router       /analytics/global [get]
func (h *AnalyticsHandler) GetGlobalStats(c *gin.Context) {
	stats, err := h.analytics.GetGlobalStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
