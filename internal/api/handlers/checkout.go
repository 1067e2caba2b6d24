package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/api/middleware"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/service"
)

type checkoutRequest struct {
	Cart           []domain.CartItem `json:"cart"`
	CouponCode     string            `json:"coupon_code"`
	DiscountAmount float64           `json:"discount_amount"`
}

// HandleCheckout handles POST /checkout. The cart comes from the request
// body as priced by the client, falling back to the cart cookie.
func HandleCheckout(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		items := req.Cart
		if len(items) == 0 {
			items = readCart(c)
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		user, err := d.Repos.User.GetByID(c.Request.Context(), session.UserID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		result, err := d.Checkout.Checkout(c.Request.Context(), user, service.CheckoutInput{
			Items:          items,
			CouponCode:     req.CouponCode,
			DiscountAmount: req.DiscountAmount,
		})
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		// cart is consumed by checkout
		writeCart(c, nil)

		c.JSON(http.StatusOK, gin.H{
			"order_id":     result.Order.ID.String(),
			"whatsapp_url": result.WhatsAppURL,
			"total":        result.Quote.Total,
			"shipping_fee": result.Quote.ShippingFee,
			"tax":          result.Quote.Commission,
		})
	}
}

type validateCouponRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal"`
}

// HandleValidateCoupon handles POST /validate-coupon
func HandleValidateCoupon(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
			return
		}

		result, err := d.Checkout.ValidateCouponCode(c.Request.Context(), req.Code, req.Subtotal)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		if !result.Valid {
			c.JSON(http.StatusOK, gin.H{"valid": false, "message": result.Message})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"valid":    true,
			"discount": result.Discount,
			"code":     result.Code,
			"message":  result.Message,
		})
	}
}
