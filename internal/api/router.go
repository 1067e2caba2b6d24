package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/api/handlers"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/api/middleware"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/auth"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/config"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/logbuf"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/payments"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/security"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logBuffer *logbuf.Buffer, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens := auth.NewTokenManager(cfg.Session.Secret)
	whatsapp := service.NewWhatsAppService(cfg.WhatsApp.BusinessNumber, cfg.BaseURL)

	deps := &handlers.Deps{
		Cfg:         cfg,
		Repos:       repos,
		Tokens:      tokens,
		Catalog:     service.NewCatalogService(repos.Product, repos.Order, repos.RecentlyViewed, logger),
		Checkout:    service.NewCheckoutService(repos.Order, repos.Coupon, whatsapp, logger),
		Orders:      service.NewOrderService(repos, logger),
		WhatsApp:    whatsapp,
		Mpesa:       payments.NewMpesaClient(cfg.Mpesa, logger),
		Flutterwave: payments.NewFlutterwaveClient(cfg.Flutterwave, cfg.BaseURL, logger),
		Lockout:     security.NewLockoutTracker(),
		RegLimiter:  security.NewRegistrationLimiter(),
		LoginLimit:  security.NewLoginLimiter(),
		LogBuffer:   logBuffer,
		Logger:      logger,
	}

	router := gin.New()

	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.SessionMiddleware(tokens, cfg.Session.CookieName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Storefront
	router.GET("/", handlers.HandleHome(deps))
	router.GET("/products", handlers.HandleListProducts(deps))
	router.GET("/products/:id", handlers.HandleGetProduct(deps))
	router.GET("/api/product/:id", handlers.HandleGetProductAPI(deps))
	router.GET("/search/autocomplete", handlers.HandleAutocomplete(deps))
	router.GET("/track/:order_id", handlers.HandleTrackOrder(deps))

	// Identity
	router.POST("/register", handlers.HandleRegister(deps))
	router.POST("/login", handlers.HandleLogin(deps))
	router.POST("/logout", handlers.HandleLogout(deps))
	router.POST("/forgot-password", handlers.HandleForgotPassword(deps))
	router.POST("/check-name", handlers.HandleCheckName(deps))
	router.POST("/check-email", handlers.HandleCheckEmail(deps))

	// Cart and coupons (anonymous; cart lives in a cookie)
	router.GET("/cart", handlers.HandleGetCart(deps))
	router.POST("/cart/items", handlers.HandleAddCartItem(deps))
	router.DELETE("/cart/items/:product_id", handlers.HandleRemoveCartItem(deps))
	router.POST("/validate-coupon", handlers.HandleValidateCoupon(deps))

	// Payment provider callbacks
	router.POST("/mpesa/callback", handlers.HandleMpesaCallback(deps))
	router.GET("/payment/callback", handlers.HandleFlutterwaveCallback(deps))

	// Customer routes
	user := router.Group("")
	user.Use(middleware.RequireUser())
	{
		user.GET("/dashboard", handlers.HandleDashboard(deps))
		user.GET("/profile", handlers.HandleGetProfile(deps))
		user.PUT("/profile", handlers.HandleUpdateProfile(deps))
		user.GET("/recently-viewed", handlers.HandleRecentlyViewed(deps))

		user.POST("/checkout", handlers.HandleCheckout(deps))
		user.POST("/checkout/pay", handlers.HandlePayOrder(deps))

		user.GET("/orders", handlers.HandleListMyOrders(deps))
		user.POST("/orders/:id/cancel", handlers.HandleCancelOrder(deps))
		user.POST("/orders/:id/refund-request", handlers.HandleRefundRequest(deps))
		user.POST("/orders/:id/report-issue", handlers.HandleReportIssue(deps))
		user.POST("/orders/:id/confirm-delivery", handlers.HandleConfirmDelivery(deps))

		user.GET("/wishlist", handlers.HandleGetWishlist(deps))
		user.POST("/wishlist/:product_id", handlers.HandleAddToWishlist(deps))
		user.DELETE("/wishlist/:product_id", handlers.HandleRemoveFromWishlist(deps))
		user.POST("/products/:id/reviews", handlers.HandleCreateReview(deps))
	}

	// Back-office
	router.POST("/admin/login", handlers.HandleAdminLogin(deps))
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/dashboard", handlers.HandleAdminDashboard(deps))

		admin.POST("/products", handlers.HandleAdminCreateProduct(deps))
		admin.PUT("/products/:id", handlers.HandleAdminUpdateProduct(deps))
		admin.DELETE("/products/:id", handlers.HandleAdminDeleteProduct(deps))
		admin.POST("/products/:id/toggle-trending", handlers.HandleAdminToggleTrending(deps))

		admin.GET("/orders", handlers.HandleAdminListOrders(deps))
		admin.POST("/orders/:id/status", handlers.HandleAdminUpdateOrderStatus(deps))
		admin.POST("/orders/:id/tracking", handlers.HandleAdminAddTracking(deps))

		admin.GET("/delivery-confirmations", handlers.HandleAdminListConfirmations(deps))
		admin.POST("/confirm-delivery", handlers.HandleAdminConfirmDelivery(deps))

		admin.GET("/coupons", handlers.HandleAdminListCoupons(deps))
		admin.POST("/coupons", handlers.HandleAdminCreateCoupon(deps))
		admin.POST("/coupons/:id/toggle", handlers.HandleAdminToggleCoupon(deps))

		admin.GET("/users", handlers.HandleAdminListUsers(deps))

		admin.GET("/logs", handlers.HandleAdminLogs(deps))
		admin.GET("/logs/errors", handlers.HandleAdminErrorLogs(deps))
		admin.POST("/logs/clear", handlers.HandleAdminClearLogs(deps))
		admin.GET("/stats", handlers.HandleAdminStats(deps))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
