package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healthmart/storefront/internal/store"
)

// HandleListNotifications returns the live notifications in insertion order.
func HandleListNotifications(queue *store.NotificationQueue) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"notifications": queue.Active()})
	}
}

// HandleDismissNotification removes a notification regardless of its
// remaining ttl. Dismissing an unknown id is a no-op.
func HandleDismissNotification(queue *store.NotificationQueue) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
			return
		}
		queue.Dismiss(id)
		c.Status(http.StatusNoContent)
	}
}
