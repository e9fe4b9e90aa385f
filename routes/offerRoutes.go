package routes

import (
	"vastra/middleware"
	"vastra/offers"
	"vastra/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddOfferRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.GET("/api/v1/offers", rateLimiter.Limit(offers.GetOffers))
	router.GET("/api/v1/offers/:id", rateLimiter.Limit(offers.GetOffer))

	router.POST("/api/v1/offers", admin(offers.CreateOffer))
	router.PUT("/api/v1/offers/:id", admin(offers.UpdateOffer))
	router.DELETE("/api/v1/offers/:id", admin(offers.DeleteOffer))

	router.POST("/api/v1/offers/:id/product/:prodid", admin(offers.AddOffer))
	router.DELETE("/api/v1/offers/:id/product/:prodid", admin(offers.RemoveProductOffer))
}
