package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"filmorate/internal/pkg/response"
)

// RequestLogger logs each request as one key=value line and recovers from
// panics with a JSON 500 instead of a dropped connection.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Printf(
					"panic method=%s path=%s error=%q stack=%s",
					c.Request.Method,
					c.Request.URL.Path,
					fmt.Sprintf("%v", recovered),
					debug.Stack(),
				)
				response.Error(c, http.StatusInternalServerError,
					"INTERNAL_ERROR", "internal server error")
				c.Abort()
				return
			}

			log.Printf(
				"request method=%s path=%s query=%s status=%d client_ip=%s latency=%s",
				c.Request.Method,
				c.Request.URL.Path,
				c.Request.URL.RawQuery,
				c.Writer.Status(),
				c.ClientIP(),
				time.Since(start),
			)
		}()

		c.Next()
	}
}
