package routes

import (
	"vastra/coupons"
	"vastra/middleware"
	"vastra/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddCouponRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.POST("/api/v1/coupons/validate",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(coupons.Validate))

	router.GET("/api/v1/coupons", admin(coupons.GetCoupons))
	router.POST("/api/v1/coupons", admin(coupons.CreateCoupon))
	router.PUT("/api/v1/coupons/:id", admin(coupons.UpdateCoupon))
	router.PUT("/api/v1/coupons/:id/deactivate", admin(coupons.DeactivateCoupon))
	router.DELETE("/api/v1/coupons/:id", admin(coupons.DeleteCoupon))
}
