// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	CatalogHandler   *handler.CatalogHandler
	InventoryHandler *handler.InventoryHandler
	CartHandler      *handler.CartHandler
	CouponHandler    *handler.CouponHandler
	CheckoutHandler  *handler.CheckoutHandler
	OrderHandler     *handler.OrderHandler
	AddressHandler   *handler.AddressHandler
	ReviewHandler    *handler.ReviewHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params
	authed := p.AuthMiddleware.Authenticate
	can := p.AuthMiddleware.RequireCapability

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", p.AuthHandler.Register)
		authGroup.POST("/login", p.AuthHandler.Login)
		authGroup.POST("/otp/request", p.AuthHandler.RequestOTP)
		authGroup.POST("/otp/verify", p.AuthHandler.VerifyOTP)
	}

	// Public catalog routes
	products := e.Group("/products")
	{
		products.GET("", p.CatalogHandler.ListProducts)
		products.GET("/:id", p.CatalogHandler.GetProduct)
		products.GET("/:productId/reviews", p.ReviewHandler.ListReviews)
	}
	e.GET("/categories", p.CatalogHandler.ListCategories)
	e.GET("/brands", p.CatalogHandler.ListBrands)

	// Authenticated shopper routes
	profile := e.Group("/profile", authed)
	{
		profile.GET("", p.UserHandler.GetProfile)
	}

	cart := e.Group("/cart", authed, can(entity.CapShop))
	{
		cart.GET("", p.CartHandler.GetCart)
		cart.POST("/items", p.CartHandler.AddToCart)
		cart.PUT("/items/:itemId", p.CartHandler.UpdateItem)
		cart.DELETE("/items/:itemId", p.CartHandler.RemoveItem)
		cart.DELETE("", p.CartHandler.ClearCart)
	}

	coupons := e.Group("/coupons", authed, can(entity.CapShop))
	{
		coupons.GET("/applicable", p.CouponHandler.FindApplicableCoupons)
		coupons.POST("/apply", p.CouponHandler.ApplyCoupon)
	}

	checkout := e.Group("/checkout", authed, can(entity.CapShop))
	{
		checkout.POST("/payment-intent", p.CheckoutHandler.CreatePaymentIntent)
		checkout.POST("/confirm", p.CheckoutHandler.ConfirmPayment)
	}

	addresses := e.Group("/addresses", authed, can(entity.CapShop))
	{
		addresses.GET("", p.AddressHandler.ListAddresses)
		addresses.POST("", p.AddressHandler.CreateAddress)
		addresses.PUT("/:id", p.AddressHandler.UpdateAddress)
		addresses.DELETE("/:id", p.AddressHandler.DeleteAddress)
	}

	reviews := e.Group("/reviews", authed, can(entity.CapShop))
	{
		reviews.POST("/products/:productId", p.ReviewHandler.CreateReview)
		reviews.PUT("/:id", p.ReviewHandler.UpdateReview)
		reviews.DELETE("/:id", p.ReviewHandler.DeleteReview)
	}

	orders := e.Group("/orders", authed)
	{
		orders.GET("/mine", p.OrderHandler.ListMyOrders, can(entity.CapViewOrders))
		orders.GET("/:id", p.OrderHandler.GetOrder)
	}

	// Delivery agent routes
	deliveries := e.Group("/deliveries", authed, can(entity.CapDeliverOrders))
	{
		deliveries.GET("/orders", p.OrderHandler.ListAssignedOrders)
	}

	// Back-office routes, capability-gated per concern
	admin := e.Group("/admin", authed)
	{
		users := admin.Group("/users", can(entity.CapManageUsers))
		users.GET("", p.UserHandler.ListUsers)
		users.POST("", p.UserHandler.CreateUser)
		users.GET("/:id", p.UserHandler.GetUser)
		users.PUT("/:id", p.UserHandler.UpdateUser)
		users.DELETE("/:id", p.UserHandler.DeleteUser)

		catalog := admin.Group("/products", can(entity.CapManageCatalog))
		catalog.POST("", p.CatalogHandler.CreateProduct)
		catalog.POST("/import", p.CatalogHandler.BulkImportProducts)
		catalog.PUT("/:id", p.CatalogHandler.UpdateProduct)
		catalog.DELETE("/:id", p.CatalogHandler.DeleteProduct)

		categories := admin.Group("/categories", can(entity.CapManageCatalog))
		categories.POST("", p.CatalogHandler.CreateCategory)
		categories.PUT("/:id", p.CatalogHandler.UpdateCategory)
		categories.DELETE("/:id", p.CatalogHandler.DeleteCategory)

		brands := admin.Group("/brands", can(entity.CapManageCatalog))
		brands.POST("", p.CatalogHandler.CreateBrand)
		brands.PUT("/:id", p.CatalogHandler.UpdateBrand)
		brands.DELETE("/:id", p.CatalogHandler.DeleteBrand)

		inventory := admin.Group("/inventory", can(entity.CapManageInventory))
		inventory.GET("/:productId", p.InventoryHandler.GetStock)
		inventory.PUT("/:productId", p.InventoryHandler.UpdateStock)

		couponAdmin := admin.Group("/coupons", can(entity.CapManageCoupons))
		couponAdmin.GET("", p.CouponHandler.ListCoupons)
		couponAdmin.POST("", p.CouponHandler.CreateCoupon)
		couponAdmin.PUT("/:id", p.CouponHandler.UpdateCoupon)
		couponAdmin.DELETE("/:id", p.CouponHandler.DeleteCoupon)

		orderAdmin := admin.Group("/orders", can(entity.CapManageOrders))
		orderAdmin.GET("", p.OrderHandler.ListOrders)
		orderAdmin.PUT("/:id/status", p.OrderHandler.UpdateStatus)
		orderAdmin.PUT("/:id/agent", p.OrderHandler.AssignDeliveryAgent)
		orderAdmin.POST("/:orderId/refund", p.CheckoutHandler.RefundPayment)

		payments := admin.Group("/payments", can(entity.CapManageOrders))
		payments.POST("/links", p.CheckoutHandler.CreatePaymentLink)
	}
}
