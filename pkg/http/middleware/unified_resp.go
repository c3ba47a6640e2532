package middleware

import (
	"github.com/go-crew/crew/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// Locals keys used by handlers to hand results to the unified response middleware.
const (
	DETAIL    = "detail"
	OPERATION = "operation"
)

// UnifiedResponseMiddleware 统一响应拦截器
// c.Locals(DETAIL, value) 用于设置响应数据
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		if c.Response().StatusCode() == 0 {
			c.Status(fiber.StatusOK)
		}

		if c.Response().StatusCode() >= fiber.StatusOK && c.Response().StatusCode() < fiber.StatusMultipleChoices {
			if detail := c.Locals(DETAIL); detail != nil {
				return http.WithRepJSON(c, detail)
			}

			// 业务逻辑正确, 无响应数据, 只返回结果
			if c.Locals(OPERATION) != nil {
				return http.WithRepNotDetail(c)
			}
		}

		return nil
	}
}
