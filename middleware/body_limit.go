package middleware

import (
	"net/http"
	"strings"

	"staybook/utils"

	"github.com/gin-gonic/gin"
)

// JSONBodyLimit is the maximum accepted size of a JSON request body.
const JSONBodyLimit = 10 << 10

// LimitJSONBody caps JSON bodies at limit bytes. Multipart uploads are
// bounded by the storage limits instead.
func LimitJSONBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			utils.JSONError(c, http.StatusRequestEntityTooLarge, "Request body too large", "")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
