package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"portalgambit/backend/internal/docstore"
	"portalgambit/backend/internal/identity"
	"portalgambit/backend/internal/service"
	"portalgambit/backend/pkg/jwt"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// StatusResponse is the body of a successful mutation.
type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Profile created successfully"`
}

func success(c *gin.Context, code int, msg string) {
	c.JSON(code, StatusResponse{Status: "success", Message: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"error": msg})
}

// statusFor maps service and store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrFriendshipNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrProfileExists),
		errors.Is(err, service.ErrGameExists),
		errors.Is(err, service.ErrAlreadyFriends),
		errors.Is(err, service.ErrRequestPending):
		return http.StatusConflict
	case errors.Is(err, service.ErrSelfRequest),
		errors.Is(err, service.ErrRequestNotPending),
		errors.Is(err, service.ErrInvalidGame),
		errors.Is(err, service.ErrInvalidUpdate):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, jwt.ErrUnauthenticated),
		errors.Is(err, identity.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, identity.ErrUnavailable),
		errors.Is(err, docstore.ErrStorage):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes err with the status it maps to. Server-side failures
// are logged and their detail is not exposed.
func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	msg := err.Error()
	switch code {
	case http.StatusUnauthorized:
		c.Header("WWW-Authenticate", "Bearer")
	case http.StatusServiceUnavailable:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		if errors.Is(err, docstore.ErrStorage) {
			msg = "Storage temporarily unavailable"
		}
	case http.StatusInternalServerError:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = "Internal server error"
	}
	c.JSON(code, gin.H{"error": msg})
}
