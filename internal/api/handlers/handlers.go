package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/api/middleware"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/auth"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/config"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/logbuf"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/payments"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/security"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/service"
	"github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

// Deps bundles everything handlers need. Built once in the router.
type Deps struct {
	Cfg         *config.Config
	Repos       *repository.Repositories
	Tokens      *auth.TokenManager
	Catalog     *service.CatalogService
	Checkout    *service.CheckoutService
	Orders      *service.OrderService
	WhatsApp    *service.WhatsAppService
	Mpesa       *payments.MpesaClient
	Flutterwave *payments.FlutterwaveClient
	Lockout     *security.LockoutTracker
	RegLimiter  *security.RateLimiter
	LoginLimit  *security.RateLimiter
	LogBuffer   *logbuf.Buffer
	Logger      *zap.Logger
}

// respondError maps typed service errors to HTTP responses
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
	case *errors.ErrValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case *errors.ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	case *errors.ErrImmutableOrder:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case *errors.ErrRateLimited:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": e.Error()})
	default:
		logger.Error("Internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// setSessionCookie writes the session token as an HTTP-only cookie
func setSessionCookie(c *gin.Context, d *Deps, token string) {
	secure := d.Cfg.Environment == "production"
	c.SetCookie(d.Cfg.Session.CookieName, token, int(72*time.Hour.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, d *Deps) {
	c.SetCookie(d.Cfg.Session.CookieName, "", -1, "/", "", false, true)
}

// displayCurrency resolves the currency prices are shown in: an explicit
// query override, then the signed-in user's stored currency, then KSh.
func displayCurrency(c *gin.Context, d *Deps) string {
	if cur := c.Query("currency"); cur != "" {
		return cur
	}
	if sess, ok := middleware.GetSession(c); ok && !sess.Admin {
		if user, err := d.Repos.User.GetByID(c.Request.Context(), sess.UserID); err == nil && user.Currency != "" {
			return user.Currency
		}
	}
	return "KSh"
}

// ProductResponse is the catalog JSON shape
type ProductResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Price          float64  `json:"price"`
	DisplayPrice   float64  `json:"display_price"`
	Currency       string   `json:"currency"`
	EffectivePrice float64  `json:"effective_price"`
	OnFlashSale    bool     `json:"on_flash_sale"`
	Description    string   `json:"description"`
	ImageURLs      []string `json:"image_urls"`
	VideoURLs      []string `json:"video_urls,omitempty"`
	Category       string   `json:"category"`
	Gender         string   `json:"gender"`
	Stock          int      `json:"stock"`
	Sizes          []string `json:"sizes,omitempty"`
	Colors         []string `json:"colors,omitempty"`
	IsTrending     bool     `json:"is_trending"`
}

func toProductResponse(p *domain.Product, now time.Time, currency string) ProductResponse {
	effective := service.EffectivePrice(p, now)
	return ProductResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Slug:           p.Slug,
		Price:          p.Price,
		DisplayPrice:   service.ConvertPrice(p.Price, currency),
		Currency:       currency,
		EffectivePrice: effective,
		OnFlashSale:    effective != p.Price,
		Description:    p.Description,
		ImageURLs:      p.ImageURLs,
		VideoURLs:      p.VideoURLs,
		Category:       p.Category,
		Gender:         p.Gender,
		Stock:          p.Stock,
		Sizes:          p.Sizes,
		Colors:         p.Colors,
		IsTrending:     p.IsTrending,
	}
}

func toProductResponses(products []*domain.Product, now time.Time, currency string) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p, now, currency))
	}
	return out
}

// OrderResponse is the order JSON shape
type OrderResponse struct {
	ID                 string            `json:"id"`
	Status             string            `json:"status"`
	Total              float64           `json:"total"`
	ShippingFee        float64           `json:"shipping_fee"`
	Tax                float64           `json:"tax"`
	DiscountAmount     float64           `json:"discount_amount,omitempty"`
	CouponCode         *string           `json:"coupon_code,omitempty"`
	PaymentMethod      string            `json:"payment_method"`
	Items              []domain.CartItem `json:"items"`
	CancellationReason *string           `json:"cancellation_reason,omitempty"`
	ExpectedDelivery   *time.Time        `json:"expected_delivery,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:                 o.ID.String(),
		Status:             string(o.Status),
		Total:              o.Total,
		ShippingFee:        o.ShippingFee,
		Tax:                o.Commission,
		DiscountAmount:     o.DiscountAmount,
		CouponCode:         o.CouponCode,
		PaymentMethod:      o.PaymentMethod,
		Items:              o.Items,
		CancellationReason: o.CancellationReason,
		ExpectedDelivery:   o.ExpectedDelivery,
		CreatedAt:          o.CreatedAt,
	}
}
