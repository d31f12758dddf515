package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheControl sets appropriate cache headers based on the request path.
func CacheControl() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/api") {
			c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
		}

		if isStaticAsset(path) {
			c.Header("Cache-Control", "public, max-age=31536000")
		}

		c.Next()
	}
}

func isStaticAsset(path string) bool {
	staticExtensions := []string{".css", ".js", ".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico", ".woff", ".woff2", ".ttf", ".eot"}
	for _, ext := range staticExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
