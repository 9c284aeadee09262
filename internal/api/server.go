package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/auth"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/config"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/metrics"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/middleware"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/service"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/ws"
)

// NewServer builds the fiber app and mounts all routes. limiter and wsrv are
// optional; passing nil skips rate limiting and the /ws endpoint.
func NewServer(
	cfg *config.Config,
	users *service.UserService,
	messages *service.MessageService,
	tokens *auth.TokenManager,
	limiter *middleware.RateLimiter,
	wsrv *ws.Server,
	log *zap.SugaredLogger,
) *fiber.App {
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	h := NewHandlers(users, messages, log)

	api := app.Group("/api")
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)

	authed := api.Group("", middleware.Auth(tokens))
	if limiter != nil {
		authed.Use(limiter.ByKey(middleware.IdentityKey))
	}
	authed.Get("/getProfile", h.GetProfile)
	authed.Post("/createProfile", h.CreateProfile)
	authed.Put("/updateProfile", h.UpdateProfile)
	authed.Get("/viewMessages", h.ViewMessages)
	authed.Post("/sendMessage", h.SendMessage)

	if wsrv != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(wsrv.Handle))
	}

	return app
}
