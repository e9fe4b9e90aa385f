package routes

import (
	"vastra/address"
	"vastra/middleware"
	"vastra/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAddressRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	user := middleware.Chain(rateLimiter.Limit, middleware.Authenticate)

	router.GET("/api/v1/addresses", user(address.GetMyAddresses))
	router.POST("/api/v1/addresses", user(address.AddAddress))
	router.DELETE("/api/v1/addresses/:id", user(address.RemoveAddress))
}
