package telegram

import (
	"context"
	"encoding/json"
	"time"

	"quizbot/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request the webhook server handles.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

// WebhookServer receives updates over HTTP instead of long polling. Telegram
// posts each update to the configured path; the server decodes it and hands
// it to the same processing path the poller uses.
type WebhookServer struct {
	app  *fiber.App
	bot  *Bot
	addr string
}

func NewWebhookServer(bot *Bot, listen, path string) *WebhookServer {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(requestLogger())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post(path, func(c *fiber.Ctx) error {
		var update tgbotapi.Update
		if err := json.Unmarshal(c.Body(), &update); err != nil {
			logger.Get().Warn("bad webhook payload", zap.Error(err))
			return c.SendStatus(fiber.StatusBadRequest)
		}
		bot.ProcessUpdate(c.UserContext(), update)
		return c.SendStatus(fiber.StatusOK)
	})

	return &WebhookServer{app: app, bot: bot, addr: listen}
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *WebhookServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
