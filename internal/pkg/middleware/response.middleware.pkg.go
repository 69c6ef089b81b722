package middleware

import (
	types "checkout-hub/internal/common/type"
	"checkout-hub/internal/pkg/logger"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/gin-gonic/gin"
)

// RequestInit tags every request with an id and logs it on completion.
func RequestInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := gonanoid.New()
		if err == nil {
			c.Set("request_id", requestID)
			c.Header("X-Request-Id", requestID)
		}

		start := time.Now()
		c.Next()
		logger.HTTP.Printf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// ResponseInit installs the "send" responder handlers use to emit a
// normalized API response.
func ResponseInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("send", func(r *types.Response) {
			body := types.ResponseAPI{
				Status:  r.Code,
				Message: r.Message,
				Data:    r.Data,
			}
			if r.Error != nil {
				body.Error = r.Error.Error()
			}
			c.JSON(r.Code, body)
			c.Abort()
		})
		c.Next()
	}
}
