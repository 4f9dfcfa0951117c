package router

import (
	"event_ticketing/config"
	"event_ticketing/handler"
	"event_ticketing/middleware"
	"event_ticketing/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	user := v1.Group("/user", logger.New())
	user.Get("/me", middleware.Protected(), handler.Me)
	user.Put("/profile", middleware.Protected(), validate.EditProfile(), handler.UpdateProfile)
	user.Post("/change-password", middleware.Protected(), validate.ChangePassword(), handler.ChangePassword)
	user.Get("/tickets", middleware.Protected(), handler.GetMyTickets)
	user.Get("/transactions", middleware.Protected(), handler.GetMyTransactions)

	event := v1.Group("/event", logger.New())
	event.Get("/", validate.FilterEvents(), handler.GetEvents)
	event.Get("/slug/:slug", handler.GetEventBySlug)
	event.Get("/organizer/:username", handler.GetEventsByOrganizer)
	event.Get("/:eventId", validate.GetById("eventId"), handler.GetEventById)
	event.Post("/", middleware.Protected(), validate.CreateEvent(), handler.CreateEvent)
	event.Put("/:eventId", middleware.Protected(), validate.GetById("eventId"), validate.EditEvent(), handler.EditEvent)
	event.Delete("/:eventId", middleware.Protected(), validate.GetById("eventId"), handler.DeleteEvent)
	event.Get("/:eventId/ticket-types", validate.GetById("eventId"), handler.GetTicketTypes)
	event.Post("/:eventId/ticket-types", middleware.Protected(), validate.GetById("eventId"), validate.CreateTicketType(), handler.CreateTicketType)

	category := v1.Group("/category", logger.New())
	category.Get("/", handler.GetCategories)
	category.Post("/", middleware.Protected(), validate.CreateCategory(), handler.CreateCategory)

	ticketType := v1.Group("/ticket-type", logger.New())
	ticketType.Get("/:ticketTypeId", middleware.Protected(), validate.GetById("ticketTypeId"), handler.GetTicketTypeById)
	ticketType.Put("/:ticketTypeId", middleware.Protected(), validate.GetById("ticketTypeId"), validate.EditTicketType(), handler.EditTicketType)
	ticketType.Patch("/:ticketTypeId/cancel", middleware.Protected(), validate.GetById("ticketTypeId"), handler.CancelTicketType)

	purchaseLimiter := middleware.PurchaseRateLimit(redis.NewClient(&redis.Options{
		Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
	}), 20)
	v1.Post("/purchase", middleware.Protected(), purchaseLimiter, validate.PurchaseTicket(), handler.PurchaseTicket)

	ticket := v1.Group("/ticket", logger.New())
	ticket.Get("/:ticketId/status", middleware.Protected(), validate.GetById("ticketId"), handler.GetTicketStatus)
	ticket.Patch("/:ticketId/status", middleware.Protected(), validate.GetById("ticketId"), validate.UpdateTicketStatus(), handler.UpdateTicketStatus)
	ticket.Get("/:ticketId/download", middleware.Protected(), validate.GetById("ticketId"), handler.DownloadTicket)
	ticket.Get("/:ticketId/qr", middleware.Protected(), validate.GetById("ticketId"), handler.GetTicketQR)

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)
	v1.Post("/upload-image", middleware.Protected(), handler.UploadImage)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/event/:id", websocket.New(handler.EventStockSocket))
}
