package routes

import (
	"vastra/auth"
	"vastra/middleware"
	"vastra/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/v1/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/v1/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/v1/auth/refresh", rateLimiter.Limit(auth.Refresh))
	router.POST("/api/v1/auth/forget-password", rateLimiter.Limit(auth.ForgetPassword))
	router.POST("/api/v1/auth/reset-password", rateLimiter.Limit(auth.ResetPassword))

	router.POST("/api/v1/auth/logout",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(auth.Logout))
	router.GET("/api/v1/auth/me",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(auth.GetProfile))
	router.POST("/api/v1/auth/send-otp",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(auth.SendOTP))
	router.POST("/api/v1/auth/verify-email",
		middleware.Chain(rateLimiter.Limit, middleware.Authenticate)(auth.VerifyEmail))
}
