package routes

import (
	"vastra/catalog"
	"vastra/middleware"
	"vastra/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddProductRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	// Public reads take an optional token so a logged-in browse keeps its
	// identity in context without requiring one.
	public := middleware.Chain(rateLimiter.Limit, middleware.OptionalAuth)

	router.GET("/api/v1/products", public(catalog.GetProducts))
	router.GET("/api/v1/search/products", public(catalog.SearchProducts))
	router.GET("/api/v1/products/:id", public(catalog.GetProduct))

	router.POST("/api/v1/products", admin(catalog.CreateProduct))
	router.PUT("/api/v1/products/:id", admin(catalog.UpdateProductDetails))
	router.DELETE("/api/v1/products/:id", admin(catalog.DeleteProduct))

	router.POST("/api/v1/product/:productid/category/:catid", admin(catalog.AddProductCategory))
	router.DELETE("/api/v1/product/:productid/category/:catid", admin(catalog.RemoveProductCategory))
	router.POST("/api/v1/product/:productid/brand/:brandid", admin(catalog.AddProductBrand))
	router.DELETE("/api/v1/product/:productid/brand/:brandid", admin(catalog.RemoveProductBrand))
}

func AddStockRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.GET("/api/v1/product/:productid/stocks/sizes", rateLimiter.Limit(catalog.GetStockSizes))
	router.GET("/api/v1/product/:productid/stocks/colors", rateLimiter.Limit(catalog.GetStockColors))
	router.GET("/api/v1/product/:productid/stocks/variant", rateLimiter.Limit(catalog.GetStockByVariant))
	router.GET("/api/v1/stocks/:id", rateLimiter.Limit(catalog.GetStock))

	router.POST("/api/v1/product/:productid/stocks", admin(catalog.CreateStock))
	router.PUT("/api/v1/stocks/:id", admin(catalog.UpdateStock))
	router.DELETE("/api/v1/stocks/:id", admin(catalog.DeleteStock))
	router.POST("/api/v1/stocks/:id/images", admin(catalog.AddStockImage))
	router.DELETE("/api/v1/stocks/:id/images/:imageid", admin(catalog.RemoveStockImage))
}

func AddBrandRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.GET("/api/v1/brands", rateLimiter.Limit(catalog.GetBrands))
	router.GET("/api/v1/brands/:id", rateLimiter.Limit(catalog.GetBrand))
	router.POST("/api/v1/brands", admin(catalog.CreateBrand))
	router.PUT("/api/v1/brands/:id", admin(catalog.UpdateBrand))
	router.PUT("/api/v1/brands/:id/image", admin(catalog.UpdateBrandImage))
	router.DELETE("/api/v1/brands/:id", admin(catalog.DeleteBrand))
}

func AddCategoryRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	admin := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireRoles("admin"))

	router.GET("/api/v1/categories", rateLimiter.Limit(catalog.GetCategories))
	router.GET("/api/v1/categories/:id", rateLimiter.Limit(catalog.GetCategory))
	router.POST("/api/v1/categories", admin(catalog.CreateCategory))
	router.PUT("/api/v1/categories/:id", admin(catalog.UpdateCategory))
	router.DELETE("/api/v1/categories/:id", admin(catalog.DeleteCategory))
}
