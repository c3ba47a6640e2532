package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/http/jwt"
	"github.com/go-crew/crew/pkg/log"
	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// Claims is the fiber locals key holding the parsed *jwt.AuthClaims.
const Claims = "claims"

// AuthorizationMiddleware 认证中间件
// secretKey: 用于验证 JWT 的密钥
// keyPrefix: Redis 中会话键的前缀
// This function is used as the middleware of fiber.
func AuthorizationMiddleware(secretKey, keyPrefix string, client *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get("Authorization")
		if aToken == "" {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return http.WithRepErrMsg(c, http.TokenFormatIncorrect.Code, http.TokenFormatIncorrect.Msg, c.Path())
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			log.Errorf("parse token failed: %v", err)
			return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		// 检查 Redis 中是否存在会话
		if client != nil {
			sessionKey := keyPrefix + claims.UserId
			exists, err := client.Exists(context.Background(), sessionKey).Result()
			if err != nil {
				log.Errorf("redis check session exists failed: %v", err)
				return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
			}
			if exists == 0 {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
		}

		c.Locals(Claims, claims)
		return c.Next()
	}
}
