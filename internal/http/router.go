package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/renohub/backend/internal/config"
	"github.com/renohub/backend/internal/http/handlers"
	"github.com/renohub/backend/internal/middleware"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	requestHandler *handlers.RequestHandler,
	contractHandler *handlers.ContractHandler,
	paymentHandler *handlers.PaymentHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Rate-limited endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/statuses", metaHandler.GetStatuses)
	api.Get("/meta/categories", metaHandler.GetCategories)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// User
	protected.Get("/me", userHandler.GetMe)

	// Renovation requests & quotes
	protected.Post("/requests", requestHandler.CreateRequest)
	protected.Get("/requests", requestHandler.ListRequests)
	protected.Get("/requests/:id", requestHandler.GetRequest)
	protected.Post("/requests/:id/close", requestHandler.CloseRequest)
	protected.Post("/requests/:id/quotes", requestHandler.SubmitQuote)
	protected.Get("/requests/:id/quotes", requestHandler.ListQuotes)
	protected.Post("/quotes/:id/accept", requestHandler.AcceptQuote)
	protected.Post("/quotes/:id/decline", requestHandler.DeclineQuote)

	// Contract ledger
	protected.Post("/contracts", contractHandler.CreateContract)
	protected.Get("/contracts", contractHandler.ListContracts)
	protected.Get("/contracts/:id", contractHandler.GetContract)
	protected.Post("/contracts/:id/cancel", contractHandler.CancelContract)
	protected.Get("/contracts/:id/events", contractHandler.GetContractEvents)

	// Escrow payment engine
	protected.Post("/contracts/:id/payments", paymentHandler.DepositPayment)
	protected.Get("/contracts/:id/payments", paymentHandler.ListPayments)
	protected.Post("/payments/:id/request-approval", paymentHandler.RequestApproval)
	protected.Post("/payments/:id/approve", paymentHandler.ApprovePayment)
	protected.Post("/payments/:id/reject", paymentHandler.RejectApproval)
	protected.Post("/payments/:id/refund", paymentHandler.RefundPayment)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
