package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portalgambit/backend/internal/auth"
	"portalgambit/backend/internal/service"
)

// region --- DTOs ---

// FriendRequestInput is the body of a new friend request.
type FriendRequestInput struct {
	ReceiverID string  `json:"receiver_id" binding:"required" example:"u2"`
	Message    *string `json:"message" example:"good game!"`
}

// RespondInput answers a friend request.
type RespondInput struct {
	Accept *bool `json:"accept" binding:"required" example:"true"`
}

// InteractionInput records a game played with a friend.
type InteractionInput struct {
	GameID *string `json:"game_id" example:"g_123"`
}

// SentRequestResponse is returned after a request is sent.
type SentRequestResponse struct {
	StatusResponse
	RequestID string `json:"request_id" example:"3f2c5a9e-..."`
}

// endregion

type FriendHandler struct {
	friends *service.FriendService
}

func NewFriendHandler(friends *service.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// SendRequest godoc
// @Summary      Send a friend request
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendRequestInput true "Receiver and optional message"
// @Success      201  {object}  SentRequestResponse
// @Failure      400  {object}  ErrorResponse "Request to self"
// @Failure      409  {object}  ErrorResponse "Already friends or request pending"
// @Failure      503  {object}  ErrorResponse
// @Router       /friends/requests [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	var input FriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	req, err := h.friends.SendRequest(c.Request.Context(), auth.CurrentUserID(c), input.ReceiverID, input.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SentRequestResponse{
		StatusResponse: StatusResponse{Status: "success", Message: "Friend request sent successfully"},
		RequestID:      req.RequestID,
	})
}

// GetPendingRequests godoc
// @Summary      Incoming pending requests
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.FriendRequest
// @Failure      401  {object}  ErrorResponse
// @Router       /friends/requests/pending [get]
func (h *FriendHandler) GetPendingRequests(c *gin.Context) {
	requests, err := h.friends.GetPendingRequests(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetRequest godoc
// @Summary      Get a friend request
// @Description  Only the sender and the receiver may read a request.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  models.FriendRequest
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friends/requests/{id} [get]
func (h *FriendHandler) GetRequest(c *gin.Context) {
	req, err := h.friends.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if uid := auth.CurrentUserID(c); uid != req.SenderID && uid != req.ReceiverID {
		forbidden(c, "Cannot view requests of other users")
		return
	}
	c.JSON(http.StatusOK, req)
}

// RespondToRequest godoc
// @Summary      Accept or reject a request
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string        true  "Request ID"
// @Param        input body  RespondInput  true  "Answer"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse "Request already answered"
// @Failure      403  {object}  ErrorResponse "Not the receiver"
// @Failure      404  {object}  ErrorResponse
// @Router       /friends/requests/{id}/respond [post]
func (h *FriendHandler) RespondToRequest(c *gin.Context) {
	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	_, err := h.friends.RespondToRequest(c.Request.Context(), c.Param("id"), auth.CurrentUserID(c), *input.Accept)
	if err != nil {
		respondError(c, err)
		return
	}

	msg := "Friend request rejected successfully"
	if *input.Accept {
		msg = "Friend request accepted successfully"
	}
	success(c, http.StatusOK, msg)
}

// GetFriends godoc
// @Summary      List friends
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.FriendStatus
// @Failure      401  {object}  ErrorResponse
// @Router       /friends/list [get]
func (h *FriendHandler) GetFriends(c *gin.Context) {
	friends, err := h.friends.GetFriends(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// RemoveFriend godoc
// @Summary      Remove a friend
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        friend_id path string true "Friend's user ID"
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /friends/{friend_id} [delete]
func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	if err := h.friends.RemoveFriend(c.Request.Context(), auth.CurrentUserID(c), c.Param("friend_id")); err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, "Friend removed successfully")
}

// UpdateInteraction godoc
// @Summary      Record an interaction with a friend
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        friend_id path string           true  "Friend's user ID"
// @Param        input     body InteractionInput false "Game played"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse "Not friends"
// @Router       /friends/{friend_id}/interactions [post]
func (h *FriendHandler) UpdateInteraction(c *gin.Context) {
	var input InteractionInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	if err := h.friends.UpdateLastInteraction(c.Request.Context(), auth.CurrentUserID(c), c.Param("friend_id"), input.GameID); err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, "Interaction updated successfully")
}
