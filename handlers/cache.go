package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CacheStats reports on the product cache.
type CacheStats interface {
	Stats(ctx context.Context) (map[string]interface{}, error)
}

type CacheHandler struct {
	cache CacheStats
	log   *zap.Logger
}

// NewCacheHandler builds the cache endpoints. cache may be nil when no
// Redis is configured.
func NewCacheHandler(cache CacheStats, log *zap.Logger) *CacheHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CacheHandler{cache: cache, log: log}
}

// GetCacheStats GET /api/cache/stats
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "disabled",
			"enabled": false,
		})
		return
	}

	stats, err := h.cache.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("read cache stats", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"enabled": true,
		"stats":   stats,
	})
}
