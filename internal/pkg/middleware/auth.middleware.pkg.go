package middleware

import (
	"net/http"

	types "checkout-hub/internal/common/type"
	"checkout-hub/internal/pkg/helper"
	"checkout-hub/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		send := c.MustGet("send").(func(r *types.Response))
		if token == "" {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "token not found"}))
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "invalid token", Error: err}))
			return
		}

		c.Set("claims", claims)
		c.Set("auth", types.UserWithAuth{
			ID:    claims.ID,
			Email: claims.Email,
			Role:  claims.Role,
		})
		c.Next()
	}
}
