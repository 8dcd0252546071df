package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"portalgambit/backend/internal/auth"
	"portalgambit/backend/pkg/jwt"
)

// Handlers groups the route handlers of the API.
type Handlers struct {
	Auth      *AuthHandler
	Profiles  *ProfileHandler
	Friends   *FriendHandler
	History   *HistoryHandler
	Analytics *AnalyticsHandler
}

// RegisterRoutes mounts every route on r. limiter may be nil, which disables
// throttling of the token exchange.
func RegisterRoutes(r *gin.Engine, h Handlers, codec *jwt.Codec, limiter auth.Limiter) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Portal Gambit!"})
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	requireAuth := auth.AuthMiddleware(codec)

	authRoutes := r.Group("/auth")
	{
		exchange := []gin.HandlerFunc{h.Auth.Token}
		if limiter != nil {
			exchange = append([]gin.HandlerFunc{auth.RateLimit(limiter, "token")}, exchange...)
		}
		authRoutes.POST("/token", exchange...)
		authRoutes.GET("/verify", requireAuth, h.Auth.Verify)
	}

	profileRoutes := r.Group("/profiles")
	profileRoutes.Use(requireAuth)
	{
		profileRoutes.POST("/", h.Profiles.CreateProfile)
		profileRoutes.GET("/search/:prefix", h.Profiles.SearchProfiles) // Must be before /:uid
		profileRoutes.GET("/leaderboard/top", h.Profiles.Leaderboard)
		profileRoutes.GET("/:uid", h.Profiles.GetProfile)
		profileRoutes.PATCH("/:uid", auth.RequireSelf("uid"), h.Profiles.UpdateProfile)
		profileRoutes.POST("/:uid/achievements/:achievement_id", auth.RequireSelf("uid"), h.Profiles.AddAchievement)
	}

	friendRoutes := r.Group("/friends")
	friendRoutes.Use(requireAuth)
	{
		friendRoutes.POST("/requests", h.Friends.SendRequest)
		friendRoutes.GET("/requests/pending", h.Friends.GetPendingRequests)
		friendRoutes.GET("/requests/:id", h.Friends.GetRequest)
		friendRoutes.POST("/requests/:id/respond", h.Friends.RespondToRequest)
		friendRoutes.GET("/list", h.Friends.GetFriends)
		friendRoutes.DELETE("/:friend_id", h.Friends.RemoveFriend)
		friendRoutes.POST("/:friend_id/interactions", h.Friends.UpdateInteraction)
	}

	historyRoutes := r.Group("/history")
	historyRoutes.Use(requireAuth)
	{
		historyRoutes.POST("/games", h.History.ArchiveGame)
		historyRoutes.GET("/games/between/:p1/:p2", h.History.GetGamesBetween)
		historyRoutes.GET("/games/:id", h.History.GetGame)
		historyRoutes.GET("/users/:uid/games", h.History.GetUserGames)
		historyRoutes.GET("/users/:uid/stats", h.History.GetUserStats)
		historyRoutes.GET("/openings/popular", h.History.GetPopularOpenings)
	}

	analyticsRoutes := r.Group("/analytics")
	analyticsRoutes.Use(requireAuth)
	{
		analyticsRoutes.POST("/games/:game_id", h.Analytics.RecordGame)
		analyticsRoutes.GET("/daily/:date", h.Analytics.GetDailyStats)
		analyticsRoutes.GET("/players/:uid/performance", h.Analytics.GetPlayerPerformance)
		analyticsRoutes.GET("/global", h.Analytics.GetGlobalStats)
	}
}
