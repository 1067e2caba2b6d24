package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
)

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleAdminLogin handles POST /admin/login against the configured
// back-office credentials.
func HandleAdminLogin(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		if req.Username != d.Cfg.Admin.Username || req.Password != d.Cfg.Admin.Password {
			d.Logger.Warn("Failed admin login attempt",
				zap.String("username", req.Username),
				zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := d.Tokens.GenerateAdminToken()
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		setSessionCookie(c, d, token)
		d.Logger.Info("Admin login successful", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleAdminDashboard handles GET /admin/dashboard with store-wide stats
func HandleAdminDashboard(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		totalOrders, err := d.Repos.Order.Count(ctx)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		totalProducts, err := d.Repos.Product.Count(ctx)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		totalUsers, err := d.Repos.User.Count(ctx)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		totalRevenue, err := d.Repos.Order.SumTotals(ctx)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		recentOrders, err := d.Repos.Order.List(ctx, 5, 0)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		recent := make([]OrderResponse, 0, len(recentOrders))
		for _, o := range recentOrders {
			recent = append(recent, toOrderResponse(o))
		}

		lowStock, err := d.Catalog.LowStock(ctx)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		todayOrders, err := d.Repos.Order.ListCreatedSince(ctx, dayStart)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		var todaySales float64
		for _, o := range todayOrders {
			todaySales += o.Total
		}

		c.JSON(http.StatusOK, gin.H{
			"total_orders":   totalOrders,
			"total_products": totalProducts,
			"total_users":    totalUsers,
			"total_revenue":  totalRevenue,
			"recent_orders":  recent,
			"low_stock":      toProductResponses(lowStock, now, "KSh"),
			"today_sales":    todaySales,
			"today_orders":   len(todayOrders),
		})
	}
}

type productRequest struct {
	Name           string     `json:"name" binding:"required"`
	Price          float64    `json:"price" binding:"required"`
	Description    string     `json:"description"`
	Category       string     `json:"category" binding:"required"`
	Gender         string     `json:"gender"`
	Stock          int        `json:"stock"`
	ImageURLs      []string   `json:"image_urls"`
	VideoURLs      []string   `json:"video_urls"`
	Sizes          []string   `json:"sizes"`
	Colors         []string   `json:"colors"`
	FlashSalePrice *float64   `json:"flash_sale_price"`
	FlashSaleEnd   *time.Time `json:"flash_sale_end"`
}

// HandleAdminCreateProduct handles POST /admin/products
func HandleAdminCreateProduct(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price and category are required"})
			return
		}

		gender := req.Gender
		if gender == "" {
			gender = "unisex"
		}

		product := &domain.Product{
			ID:             uuid.New(),
			Name:           req.Name,
			Slug:           slug.Make(req.Name),
			Price:          req.Price,
			Description:    req.Description,
			ImageURLs:      req.ImageURLs,
			VideoURLs:      req.VideoURLs,
			Category:       req.Category,
			Gender:         gender,
			Stock:          req.Stock,
			Sizes:          req.Sizes,
			Colors:         req.Colors,
			FlashSalePrice: req.FlashSalePrice,
			FlashSaleEnd:   req.FlashSaleEnd,
		}
		if err := d.Repos.Product.Create(c.Request.Context(), product); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"product_id": product.ID.String(), "slug": product.Slug})
	}
}

// HandleAdminUpdateProduct handles PUT /admin/products/:id
func HandleAdminUpdateProduct(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price and category are required"})
			return
		}
		ctx := c.Request.Context()

		product, err := d.Repos.Product.GetByID(ctx, productID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		product.Name = req.Name
		product.Slug = slug.Make(req.Name)
		product.Price = req.Price
		product.Description = req.Description
		product.Category = req.Category
		if req.Gender != "" {
			product.Gender = req.Gender
		}
		product.Stock = req.Stock
		if req.ImageURLs != nil {
			product.ImageURLs = req.ImageURLs
		}
		if req.VideoURLs != nil {
			product.VideoURLs = req.VideoURLs
		}
		if req.Sizes != nil {
			product.Sizes = req.Sizes
		}
		if req.Colors != nil {
			product.Colors = req.Colors
		}
		product.FlashSalePrice = req.FlashSalePrice
		product.FlashSaleEnd = req.FlashSaleEnd

		if err := d.Repos.Product.Update(ctx, product); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleAdminDeleteProduct handles DELETE /admin/products/:id
func HandleAdminDeleteProduct(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		if err := d.Repos.Product.Delete(c.Request.Context(), productID); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleAdminToggleTrending handles POST /admin/products/:id/toggle-trending
func HandleAdminToggleTrending(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		ctx := c.Request.Context()

		product, err := d.Repos.Product.GetByID(ctx, productID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		if err := d.Repos.Product.SetTrending(ctx, productID, !product.IsTrending); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"is_trending": !product.IsTrending})
	}
}

// HandleAdminListOrders handles GET /admin/orders
func HandleAdminListOrders(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		orders, err := d.Repos.Order.List(c.Request.Context(), limit, offset)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		list := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			list = append(list, toOrderResponse(o))
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleAdminUpdateOrderStatus handles POST /admin/orders/:id/status
func HandleAdminUpdateOrderStatus(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}

		if err := d.Orders.UpdateStatus(c.Request.Context(), orderID, domain.OrderStatus(req.Status)); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type addTrackingRequest struct {
	Location         string `json:"location" binding:"required"`
	TransportCompany string `json:"transport_company"`
	DriverName       string `json:"driver_name"`
	Status           string `json:"status" binding:"required"`
}

// HandleAdminAddTracking handles POST /admin/orders/:id/tracking
func HandleAdminAddTracking(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req addTrackingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "location and status are required"})
			return
		}

		entry := &domain.OrderTracking{
			Location:         req.Location,
			TransportCompany: req.TransportCompany,
			DriverName:       req.DriverName,
			Status:           req.Status,
		}
		if err := d.Orders.AddTracking(c.Request.Context(), orderID, entry); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"tracking_id": entry.ID.String()})
	}
}

// HandleAdminListConfirmations handles GET /admin/delivery-confirmations
func HandleAdminListConfirmations(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		confirmations, err := d.Repos.DeliveryConfirmation.List(c.Request.Context())
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		type confirmationResponse struct {
			ID               string    `json:"id"`
			OrderID          string    `json:"order_id"`
			UserID           string    `json:"user_id"`
			Rating           int       `json:"rating"`
			Feedback         string    `json:"feedback"`
			PhotoURL         *string   `json:"photo_url,omitempty"`
			ConfirmedByAdmin bool      `json:"confirmed_by_admin"`
			CreatedAt        time.Time `json:"created_at"`
		}
		list := make([]confirmationResponse, 0, len(confirmations))
		for _, conf := range confirmations {
			list = append(list, confirmationResponse{
				ID:               conf.ID.String(),
				OrderID:          conf.OrderID.String(),
				UserID:           conf.UserID.String(),
				Rating:           conf.Rating,
				Feedback:         conf.Feedback,
				PhotoURL:         conf.PhotoURL,
				ConfirmedByAdmin: conf.ConfirmedByAdmin,
				CreatedAt:        conf.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"confirmations": list})
	}
}

type adminConfirmDeliveryRequest struct {
	ConfirmationID string `json:"confirmation_id" binding:"required"`
	AdminRating    int    `json:"admin_rating"`
}

// HandleAdminConfirmDelivery handles POST /admin/confirm-delivery
func HandleAdminConfirmDelivery(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminConfirmDeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation_id is required"})
			return
		}
		if req.AdminRating < 0 || req.AdminRating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "admin_rating must be between 0 and 5"})
			return
		}

		confirmationID, err := uuid.Parse(req.ConfirmationID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid confirmation id"})
			return
		}

		if err := d.Orders.AdminConfirmDelivery(c.Request.Context(), confirmationID, req.AdminRating); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type createCouponRequest struct {
	Code          string  `json:"code" binding:"required"`
	DiscountType  string  `json:"discount_type" binding:"required"`
	DiscountValue float64 `json:"discount_value" binding:"required"`
	MinPurchase   float64 `json:"min_purchase"`
	MaxUses       *int    `json:"max_uses"`
	ExpiresDays   int     `json:"expires_days"`
}

// HandleAdminCreateCoupon handles POST /admin/coupons. The code is stored
// upper-cased; the discount is a percent or a fixed amount, never both.
func HandleAdminCreateCoupon(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code, discount_type and discount_value are required"})
			return
		}
		if req.DiscountType != "percent" && req.DiscountType != "amount" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_type must be percent or amount"})
			return
		}

		expiresDays := req.ExpiresDays
		if expiresDays <= 0 {
			expiresDays = 30
		}
		expiresAt := time.Now().Add(time.Duration(expiresDays) * 24 * time.Hour)

		coupon := &domain.Coupon{
			ID:          uuid.New(),
			Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
			MinPurchase: req.MinPurchase,
			MaxUses:     req.MaxUses,
			ExpiresAt:   &expiresAt,
			Active:      true,
		}
		if req.DiscountType == "percent" {
			coupon.DiscountPercent = &req.DiscountValue
		} else {
			coupon.DiscountAmount = &req.DiscountValue
		}

		if err := d.Repos.Coupon.Create(c.Request.Context(), coupon); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"coupon_id": coupon.ID.String(), "code": coupon.Code})
	}
}

// HandleAdminListCoupons handles GET /admin/coupons
func HandleAdminListCoupons(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		coupons, err := d.Repos.Coupon.List(c.Request.Context())
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		type couponResponse struct {
			ID              string     `json:"id"`
			Code            string     `json:"code"`
			DiscountPercent *float64   `json:"discount_percent,omitempty"`
			DiscountAmount  *float64   `json:"discount_amount,omitempty"`
			MinPurchase     float64    `json:"min_purchase"`
			MaxUses         *int       `json:"max_uses,omitempty"`
			UsedCount       int        `json:"used_count"`
			ExpiresAt       *time.Time `json:"expires_at,omitempty"`
			Active          bool       `json:"active"`
		}
		list := make([]couponResponse, 0, len(coupons))
		for _, cp := range coupons {
			list = append(list, couponResponse{
				ID:              cp.ID.String(),
				Code:            cp.Code,
				DiscountPercent: cp.DiscountPercent,
				DiscountAmount:  cp.DiscountAmount,
				MinPurchase:     cp.MinPurchase,
				MaxUses:         cp.MaxUses,
				UsedCount:       cp.UsedCount,
				ExpiresAt:       cp.ExpiresAt,
				Active:          cp.Active,
			})
		}
		c.JSON(http.StatusOK, gin.H{"coupons": list})
	}
}

// HandleAdminToggleCoupon handles POST /admin/coupons/:id/toggle
func HandleAdminToggleCoupon(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		couponID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
			return
		}
		ctx := c.Request.Context()

		coupon, err := d.Repos.Coupon.GetByID(ctx, couponID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		if err := d.Repos.Coupon.SetActive(ctx, couponID, !coupon.Active); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"active": !coupon.Active})
	}
}

// HandleAdminListUsers handles GET /admin/users
func HandleAdminListUsers(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := d.Repos.User.List(c.Request.Context())
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		type userResponse struct {
			ID          string    `json:"id"`
			Name        string    `json:"name"`
			Email       string    `json:"email"`
			Phone       string    `json:"phone"`
			Points      int       `json:"points"`
			Tier        string    `json:"tier"`
			AdminRating int       `json:"admin_rating"`
			CreatedAt   time.Time `json:"created_at"`
		}
		list := make([]userResponse, 0, len(users))
		for _, u := range users {
			list = append(list, userResponse{
				ID:          u.ID.String(),
				Name:        u.Name,
				Email:       u.Email,
				Phone:       u.Phone,
				Points:      u.Points,
				Tier:        string(u.Tier),
				AdminRating: u.AdminRating,
				CreatedAt:   u.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"users": list})
	}
}

// HandleAdminLogs handles GET /admin/logs with optional level filter
func HandleAdminLogs(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		level := c.Query("level")

		c.JSON(http.StatusOK, gin.H{"logs": d.LogBuffer.Recent(limit, level)})
	}
}

// HandleAdminErrorLogs handles GET /admin/logs/errors
func HandleAdminErrorLogs(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		c.JSON(http.StatusOK, gin.H{"errors": d.LogBuffer.Errors(limit)})
	}
}

// HandleAdminClearLogs handles POST /admin/logs/clear
func HandleAdminClearLogs(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.LogBuffer.Clear()
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleAdminStats handles GET /admin/stats with process-level counters
func HandleAdminStats(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, d.LogBuffer.Stats())
	}
}
