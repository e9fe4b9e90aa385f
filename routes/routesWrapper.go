package routes

import (
	"vastra/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddAddressRoutes(router, rateLimiter)
	AddProductRoutes(router, rateLimiter)
	AddStockRoutes(router, rateLimiter)
	AddBrandRoutes(router, rateLimiter)
	AddCategoryRoutes(router, rateLimiter)
	AddOfferRoutes(router, rateLimiter)
	AddCouponRoutes(router, rateLimiter)
	AddOrderRoutes(router, rateLimiter)
	AddStaticRoutes(router)
}
