package handlers

import (
	"errors"
	"net/http"

	"assessment-service/internal/models"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors onto HTTP statuses. Errors are surfaced
// verbatim; the client decides whether to redirect to payment, reopen the
// quiz, or send the user to support.
func writeError(c *gin.Context, err error) {
	var incomplete *models.IncompleteAnswersError
	if errors.As(err, &incomplete) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      incomplete.Error(),
			"unanswered": incomplete.Missing,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrPaymentRequired):
		status = http.StatusPaymentRequired
	case errors.Is(err, models.ErrSecurityViolation):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidQuestionIndex),
		errors.Is(err, models.ErrMalformedInput):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrSessionNotActive),
		errors.Is(err, models.ErrNoQuestionsAvailable),
		errors.Is(err, models.ErrConcurrencyConflict):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// userID reads the caller identity set by the auth middleware upstream.
func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-User-ID")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
		return "", false
	}
	return id, true
}
