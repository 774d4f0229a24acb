package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/pkg/logger"
)

// RequestLogger registra una línea por petición con método, ruta, estado y latencia.
// Debe montarse antes de AuthFilter: el usuario se lee al terminar la cadena.
func RequestLogger(l *logger.Logger) fiber.Handler {
	zl := l.Component("http").Zerolog()
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// El ErrorHandler global todavía no escribió la respuesta; se hace aquí
			// para registrar el estado real.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = zl.Error()
		case status >= fiber.StatusBadRequest:
			ev = zl.Warn()
		default:
			ev = zl.Info()
		}
		if p := GetPrincipal(c); p != nil {
			ev = ev.Str("username", p.Username)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición")
		return nil
	}
}
