package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/internal/repository"
	"github.com/rohingrover/absuma/internal/service"
)

// respondError translates a service error into the matching HTTP response.
// Validation errors carry the full list of violations; conflict errors
// surface their message verbatim; anything unexpected is logged in full
// but reported generically so database detail never reaches the client.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Errors})
		return
	}

	var cerr *service.ConflictError
	if errors.As(err, &cerr) {
		c.JSON(http.StatusConflict, gin.H{"error": cerr.Message})
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	log.WithError(err).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
