package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Recovery перехватывает паники обработчиков. Агент безголовый, поэтому
// стек уходит в структурированный лог, а не в stderr
func Recovery(logger *zap.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.Error("Panic in handler",
				zap.String("path", c.Path()),
				zap.Any("panic", e))
		},
	})
}
