package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/elevenlabs-stt/util"
)

const defaultMaxBodySize = 10 * 1024 * 1024

// BodySizeLimit caps the request body at maxSize (e.g. "10MB", "512KB").
// Reading past the limit fails with *http.MaxBytesError.
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, size)
		c.Next()
	}
}
