package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"savoria/controllers"
	"savoria/middleware"
	"savoria/models"
	"savoria/utils"
)

// Register wires every API route group. Role guards run after the principal
// has been deserialized, independent of handler bodies.
func Register(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", controllers.SignUpUser)
	auth.Post("/login", controllers.SignInUser)
	auth.Post("/logout", middleware.DeserializeUser, controllers.LogoutUser)
	auth.Post("/refresh", controllers.RefreshAccessToken)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)

	users := api.Group("/users", middleware.DeserializeUser)
	users.Get("/me", controllers.GetMe)
	users.Put("/me", controllers.UpdateMe)
	users.Get("/", middleware.RequireRole(models.RoleAdmin), controllers.ListUsers)
	users.Get("/:id", controllers.GetUserByID)
	users.Put("/:id/block", middleware.RequireRole(models.RoleAdmin), controllers.BlockUser)
	users.Delete("/:id", controllers.DeleteUser)

	addresses := api.Group("/addresses", middleware.DeserializeUser)
	addresses.Post("/", controllers.CreateAddress)
	addresses.Get("/", controllers.GetMyAddresses)
	addresses.Get("/default", controllers.GetDefaultAddress)
	addresses.Put("/:id", controllers.UpdateAddress)
	addresses.Delete("/:id", controllers.DeleteAddress)

	categories := api.Group("/categories")
	categories.Get("/", controllers.ListCategories)
	categories.Post("/", middleware.DeserializeUser, middleware.RequireRole(models.RoleAdmin), controllers.CreateCategory)
	categories.Put("/:id", middleware.DeserializeUser, middleware.RequireRole(models.RoleAdmin), controllers.UpdateCategory)
	categories.Delete("/:id", middleware.DeserializeUser, middleware.RequireRole(models.RoleAdmin), controllers.DeleteCategory)

	menu := api.Group("/menu")
	menu.Get("/", controllers.ListMenuItems)
	menu.Get("/search", controllers.SearchMenuItems)
	menu.Get("/:id", controllers.GetMenuItem)
	menu.Post("/", middleware.DeserializeUser, middleware.RequireRole(models.RoleAdmin), controllers.CreateMenuItem)
	menu.Put("/:id", middleware.DeserializeUser, middleware.RequireRole(models.RoleAdmin), controllers.UpdateMenuItem)
	menu.Delete("/:id", middleware.DeserializeUser, middleware.RequireRole(models.RoleAdmin), controllers.DeleteMenuItem)

	cart := api.Group("/cart", middleware.DeserializeUser)
	cart.Post("/", controllers.AddCartItem)
	cart.Get("/", controllers.GetCart)
	cart.Put("/:id", controllers.UpdateCartItem)
	cart.Delete("/clear", controllers.ClearCart)
	cart.Delete("/:id", controllers.RemoveCartItem)

	orders := api.Group("/orders", middleware.DeserializeUser)
	orders.Post("/", controllers.CreateOrder)
	orders.Get("/", controllers.ListOrders)
	orders.Get("/all", middleware.RequireRole(models.RoleAdmin), controllers.ListAllOrders)
	orders.Get("/:id", controllers.GetOrder)
	orders.Patch("/:id/status", middleware.RequireRole(models.RoleAdmin), controllers.UpdateOrderStatus)
	orders.Post("/:id/cancel", controllers.CancelOrder)
	orders.Get("/:id/track", controllers.TrackOrder)

	payments := api.Group("/payments")
	payments.Post("/webhook", controllers.PaymentWebhook)
	payments.Post("/initiate", middleware.DeserializeUser, controllers.InitiatePayment)
	payments.Get("/:id/status", middleware.DeserializeUser, controllers.GetPaymentStatus)
	payments.Post("/:id/confirm", middleware.DeserializeUser, controllers.ConfirmPayment)

	reservations := api.Group("/reservations", middleware.DeserializeUser)
	reservations.Post("/", controllers.CreateReservation)
	reservations.Get("/", controllers.ListReservations)
	reservations.Get("/:id", controllers.GetReservation)
	reservations.Put("/:id", controllers.UpdateReservation)
	reservations.Put("/:id/confirm", middleware.RequireRole(models.RoleAdmin), controllers.ConfirmReservation)
	reservations.Post("/:id/cancel", controllers.CancelReservation)

	deliveries := api.Group("/deliveries", middleware.DeserializeUser)
	deliveries.Post("/assign", middleware.RequireRole(models.RoleAdmin), controllers.AssignDelivery)
	deliveries.Get("/assigned", middleware.RequireRole(models.RoleDriver), controllers.GetAssignedDeliveries)
	deliveries.Post("/:id/status", middleware.RequireRole(models.RoleDriver), controllers.UpdateDeliveryStatus)
	deliveries.Post("/:id/confirm", middleware.RequireRole(models.RoleDriver), controllers.ConfirmDelivery)

	reviews := api.Group("/reviews")
	reviews.Get("/item/:item_id", controllers.ListReviewsForItem)
	reviews.Get("/mine", middleware.DeserializeUser, controllers.ListMyReviews)
	reviews.Get("/:id", controllers.GetReview)
	reviews.Post("/", middleware.DeserializeUser, controllers.CreateReview)
	reviews.Put("/:id", middleware.DeserializeUser, controllers.UpdateReview)
	reviews.Delete("/:id", middleware.DeserializeUser, controllers.DeleteReview)

	support := api.Group("/support", middleware.DeserializeUser)
	support.Post("/", controllers.CreateSupportTicket)
	support.Get("/", controllers.ListMyTickets)
	support.Get("/all", middleware.RequireRole(models.RoleAdmin), controllers.ListAllTickets)
	support.Get("/:id", controllers.GetSupportTicket)
	support.Put("/:id/status", middleware.RequireRole(models.RoleAdmin), controllers.UpdateTicketStatus)
	support.Post("/:id/reply", controllers.ReplyToTicket)

	notifications := api.Group("/notifications", middleware.DeserializeUser)
	notifications.Get("/", controllers.ListMyNotifications)
	notifications.Put("/:id/read", controllers.MarkNotificationRead)
	notifications.Post("/reservation-reminder/:id", controllers.SendReservationReminder)
	notifications.Post("/order-confirmation/:id", controllers.SendOrderConfirmation)
	notifications.Post("/order-receipt/:id", controllers.SendOrderReceipt)
	notifications.Post("/admin-alert", middleware.RequireRole(models.RoleAdmin), controllers.NotifyAdmins)

	restaurants := api.Group("/restaurants")
	restaurants.Get("/", controllers.ListRestaurants)
	restaurants.Get("/:id", controllers.GetRestaurant)
	restaurants.Post("/", middleware.DeserializeUser, middleware.RequireRole(models.RoleAdmin), controllers.CreateRestaurant)
	restaurants.Put("/:id", middleware.DeserializeUser, middleware.RequireRole(models.RoleAdmin), controllers.UpdateRestaurant)
	restaurants.Delete("/:id", middleware.DeserializeUser, middleware.RequireRole(models.RoleAdmin), controllers.DeleteRestaurant)

	inventory := api.Group("/inventory", middleware.DeserializeUser, middleware.RequireRole(models.RoleAdmin))
	inventory.Post("/", controllers.CreateInventoryItem)
	inventory.Get("/", controllers.ListInventoryItems)
	inventory.Get("/low-stock", controllers.ListLowStockItems)
	inventory.Get("/:id", controllers.GetInventoryItem)
	inventory.Put("/:id", controllers.UpdateInventoryItem)
	inventory.Delete("/:id", controllers.DeleteInventoryItem)

	registerWebsocket(app)
}

// registerWebsocket mounts the per-user push socket. The connection stays
// registered until the client goes away.
func registerWebsocket(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", middleware.DeserializeUser, websocket.New(func(conn *websocket.Conn) {
		user, ok := conn.Locals("user").(models.UserResponse)
		if !ok {
			conn.Close()
			return
		}

		utils.RegisterClient(user.ID, conn)
		defer utils.UnregisterClient(user.ID, conn)

		// drain reads until the peer closes
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}
