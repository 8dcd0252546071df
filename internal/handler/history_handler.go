package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portalgambit/backend/internal/auth"
	"portalgambit/backend/internal/models"
	"portalgambit/backend/internal/service"
)

// ArchiveResponse is returned after a game is archived.
type ArchiveResponse struct {
	StatusResponse
	GameID string `json:"game_id" example:"g_123"`
}

type HistoryHandler struct {
	history *service.HistoryService
}

func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// ArchiveGame godoc
// @Summary      Archive a finished game
// @Description  Stores the game and applies the rating change to both players. Only participants may archive a game.
// @Tags         history
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body models.GameHistory true "Finished game"
// @Success      201  {object}  ArchiveResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /history/games [post]
func (h *HistoryHandler) ArchiveGame(c *gin.Context) {
	var input models.GameHistory
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !input.IsParticipant(auth.CurrentUserID(c)) {
		forbidden(c, "Can only archive games you participated in")
		return
	}

	g, err := h.history.ArchiveGame(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ArchiveResponse{
		StatusResponse: StatusResponse{Status: "success", Message: "Game archived successfully"},
		GameID:         g.GameID,
	})
}

// GetGame godoc
// @Summary      Get an archived game
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Game ID"
// @Success      200  {object}  models.GameHistory
// @Failure      404  {object}  ErrorResponse
// @Router       /history/games/{id} [get]
func (h *HistoryHandler) GetGame(c *gin.Context) {
	g, err := h.history.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// GetUserGames godoc
// @Summary      Recent games of a user
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        uid   path     string  true   "User ID"
// @Param        limit query    int     false  "Max results" default(50)
// @Success      200  {array}   models.GameHistory
// @Failure      400  {object}  ErrorResponse
// @Router       /history/users/{uid}/games [get]
func (h *HistoryHandler) GetUserGames(c *gin.Context) {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	games, err := h.history.GetUserGames(c.Request.Context(), c.Param("uid"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGamesBetween godoc
// @Summary      Recent games between two players
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        p1    path     string  true   "First player ID"
// @Param        p2    path     string  true   "Second player ID"
// @Param        limit query    int     false  "Max results" default(10)
// @Success      200  {array}   models.GameHistory
// @Failure      400  {object}  ErrorResponse
// @Router       /history/games/between/{p1}/{p2} [get]
func (h *HistoryHandler) GetGamesBetween(c *gin.Context) {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	games, err := h.history.GetGamesBetweenPlayers(c.Request.Context(), c.Param("p1"), c.Param("p2"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetUserStats godoc
// @Summary      Game statistics of a user
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        uid  path     string  true   "User ID"
// @Param        days query    int     false  "Window in days" default(30)
// @Success      200  {object}  models.UserGameStats
// @Failure      400  {object}  ErrorResponse
// @Router       /history/users/{uid}/stats [get]
func (h *HistoryHandler) GetUserStats(c *gin.Context) {
	days, err := queryInt(c, "days", 30)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	stats, err := h.history.GetUserStats(c.Request.Context(), c.Param("uid"), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetPopularOpenings godoc
// @Summary      Most played openings
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        limit query    int  false  "Max results" default(10)
// @Success      200  {array}   models.OpeningStats
// @Failure      400  {object}  ErrorResponse
// @Router       /history/openings/popular [get]
func (h *HistoryHandler) GetPopularOpenings(c *gin.Context) {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	openings, err := h.history.GetPopularOpenings(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, openings)
}
