package middleware

import (
	"net/http"
	"strings"
	"time"

	"study_assistant/internal/util"
	"study_assistant/pkg/logger"
	"study_assistant/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userIDKey = "user_id"

// Auth 校验 Bearer 令牌并把 subject 作为用户 ID 写入上下文。
// 与 flask-jwt 一致：缺少令牌返回 401，令牌无效返回 422。
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if authHeader == "" || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Missing Authorization Header"})
			return
		}

		subject, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("JWT parse failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"msg": "Invalid token"})
			return
		}
		id := util.MustParseUint(subject)
		if id == 0 {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"msg": "Invalid token subject"})
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserID 只能在 Auth 之后调用
func UserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}

// RequestLogger 记录请求方法、路由、状态码和耗时
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.Debug("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
			zap.String("authorization", security.RedactAuthorization(c.GetHeader("Authorization"))),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
