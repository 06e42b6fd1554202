package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		logrus.WithField("route", route).Errorf("panic recovered: %v", r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	logrus.WithFields(logrus.Fields{"route": route, "status": status}).Warn(message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// newToken returns an opaque uppercase identifier of length n. Identifiers
// are generated in their canonical case so lookups never need to normalize
// stored values.
func newToken(n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	for len(hex) < n {
		hex += strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	}
	return hex[:n]
}

// canonicalID normalizes an identifier from a path or query parameter.
func canonicalID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
