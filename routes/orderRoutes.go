package routes

import (
	"vastra/middleware"
	"vastra/orders"
	"vastra/pay"
	"vastra/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddOrderRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	user := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)
	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	// Checkout replays with the same Idempotency-Key return the stored
	// response instead of reserving stock twice.
	router.POST("/api/v1/checkout/:addressid",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate, pay.Idempotent)(orders.Checkout))

	router.GET("/api/v1/orders", user(orders.GetMyOrders))
	router.GET("/api/v1/orders/:id", user(orders.GetOrder))
	router.POST("/api/v1/orders/:id/pay", user(orders.CreatePaymentOrder))
	router.POST("/api/v1/orders/:id/verify", user(orders.VerifyPayment))
	router.GET("/api/v1/orders/:id/invoice", user(orders.PrintInvoice))

	router.PUT("/api/v1/orders/:id/status", admin(orders.UpdateOrderStatus))
}
