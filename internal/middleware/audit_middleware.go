package middleware

import (
	"log"
	"net/http"

	"resto-pos/internal/models"
	"resto-pos/internal/store"

	"github.com/gin-gonic/gin"
)

// Audit records every authenticated mutation (anything that is not a GET)
// after the handler has run, including the response status. Failures to
// write the log line are logged and swallowed; auditing must never block
// the operation it observes.
func Audit(repo store.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}

		userID, _ := c.Get("userID")
		username, _ := c.Get("username")
		entry := models.AuditLog{
			Method: c.Request.Method,
			Path:   c.FullPath(),
			Status: c.Writer.Status(),
		}
		if id, ok := userID.(uint); ok {
			entry.UserID = id
		}
		if name, ok := username.(string); ok {
			entry.Username = name
		}
		if err := repo.CreateAuditLog(&entry); err != nil {
			log.Printf("audit: failed to record %s %s: %v", entry.Method, entry.Path, err)
		}
	}
}
