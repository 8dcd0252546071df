package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portalgambit/backend/internal/auth"
	"portalgambit/backend/internal/models"
	"portalgambit/backend/internal/service"
)

// region --- DTOs ---

// CreateProfileInput is the body of a profile creation request.
type CreateProfileInput struct {
	UID          string         `json:"uid" binding:"required" example:"f1r3b4s3u1d"`
	Username     string         `json:"username" binding:"required" example:"knightrider"`
	Email        string         `json:"email" binding:"required,email" example:"player@example.com"`
	DisplayName  *string        `json:"display_name"`
	AvatarURL    *string        `json:"avatar_url"`
	Rating       int            `json:"rating" example:"1200"`
	Achievements []string       `json:"achievements"`
	Preferences  map[string]any `json:"preferences"`
}

// endregion

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// CreateProfile godoc
// @Summary      Create a profile
// @Description  Creates the profile of the authenticated user.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateProfileInput true "Profile"
// @Success      201  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /profiles/ [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var input CreateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if input.UID != auth.CurrentUserID(c) {
		forbidden(c, "Cannot create profile for another user")
		return
	}

	_, err := h.profiles.Create(c.Request.Context(), models.UserProfile{
		UID:          input.UID,
		Username:     input.Username,
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		AvatarURL:    input.AvatarURL,
		Rating:       input.Rating,
		Achievements: input.Achievements,
		Preferences:  input.Preferences,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	success(c, http.StatusCreated, "Profile created successfully")
}

// GetProfile godoc
// @Summary      Get a profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        uid  path      string  true  "User ID"
// @Success      200  {object}  models.UserProfile
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/{uid} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfile godoc
// @Summary      Update a profile
// @Description  Changes username, display name, avatar or preferences of the caller's own profile.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uid   path  string                 true  "User ID"
// @Param        input body  service.ProfileUpdate  true  "Fields to change"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/{uid} [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var input service.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.profiles.Update(c.Request.Context(), c.Param("uid"), input); err != nil {
		respondError(c, err)
		return
	}

	success(c, http.StatusOK, "Profile updated successfully")
}

// SearchProfiles godoc
// @Summary      Search profiles
// @Description  Finds profiles whose username starts with the prefix.
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        prefix path     string  true   "Username prefix"
// @Param        limit  query    int     false  "Max results" default(10)
// @Success      200  {array}   models.UserProfile
// @Failure      400  {object}  ErrorResponse
// @Router       /profiles/search/{prefix} [get]
func (h *ProfileHandler) SearchProfiles(c *gin.Context) {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	profiles, err := h.profiles.SearchByUsernamePrefix(c.Request.Context(), c.Param("prefix"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// Leaderboard godoc
// @Summary      Top rated players
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        limit query    int  false  "Max results" default(100)
// @Success      200  {array}   models.UserProfile
// @Failure      400  {object}  ErrorResponse
// @Router       /profiles/leaderboard/top [get]
func (h *ProfileHandler) Leaderboard(c *gin.Context) {
	limit, err := queryInt(c, "limit", 100)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	profiles, err := h.profiles.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// AddAchievement godoc
// @Summary      Grant an achievement
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        uid             path  string  true  "User ID"
// @Param        achievement_id  path  string  true  "Achievement ID"
// @Success      200  {object}  StatusResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/{uid}/achievements/{achievement_id} [post]
func (h *ProfileHandler) AddAchievement(c *gin.Context) {
	if err := h.profiles.AddAchievement(c.Request.Context(), c.Param("uid"), c.Param("achievement_id")); err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, "Achievement added successfully")
}
