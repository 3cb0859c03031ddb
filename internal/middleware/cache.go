package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoStore sets "Cache-Control: no-store" on every response of the group.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
