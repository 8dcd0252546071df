package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portalgambit/backend/internal/auth"
	"portalgambit/backend/internal/identity"
	"portalgambit/backend/pkg/jwt"
)

// TokenInput is the external credential to exchange.
type TokenInput struct {
	FirebaseToken string `json:"firebase_token" binding:"required" example:"eyJhbGciOiJSUzI1NiIs..."`
}

type AuthHandler struct {
	gateway *identity.Gateway
}

func NewAuthHandler(gateway *identity.Gateway) *AuthHandler {
	return &AuthHandler{gateway: gateway}
}

// Token godoc
// @Summary      Exchange a Firebase token
// @Description  Verifies a Firebase ID token and returns a backend session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body TokenInput true "Firebase ID token"
// @Success      200  {object}  identity.Session
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var input TokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	session, err := h.gateway.ExchangeForSession(c.Request.Context(), input.FirebaseToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Verify godoc
// @Summary      Verify the session token
// @Description  Returns the identity embedded in the bearer token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  jwt.Identity
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		respondError(c, jwt.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, id)
}
