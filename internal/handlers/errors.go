package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gazetadovale/newsdesk/internal/logger"
	"github.com/gazetadovale/newsdesk/internal/upstream"
)

func errBadParam(name string) error {
	return fmt.Errorf("invalid %s parameter", name)
}

// respondUpstreamError maps upstream failures to JSON error responses.
// Upstream errors never corrupt held state; callers simply retry.
func respondUpstreamError(c *gin.Context, log logger.Logger, msg string, err error) {
	log.Error(msg, logger.Error(err))

	switch {
	case errors.Is(err, upstream.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, upstream.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream request failed"})
	}
}
