package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/api/middleware"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/payments"
	apperrors "github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

type payOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Phone   string `json:"phone"`
}

// HandlePayOrder handles POST /checkout/pay: picks the payment rail for the
// customer and starts an STK push or returns a hosted payment link. The
// provider reference is stored on the order for the callback to find.
func HandlePayOrder(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		var req payOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
			return
		}

		orderID, err := uuid.Parse(req.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}
		ctx := c.Request.Context()

		order, err := d.Repos.Order.GetByID(ctx, orderID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		if order.UserID != session.UserID {
			respondError(c, d.Logger, &apperrors.ErrUnauthorized{})
			return
		}

		user, err := d.Repos.User.GetByID(ctx, session.UserID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		phone := req.Phone
		if phone == "" {
			phone = user.Phone
		}

		country := strings.ToUpper(user.CountryCode)
		method := payments.DetectMethod(phone, country)
		switch method {
		case "mpesa":
			result, err := d.Mpesa.STKPush(phone, order.Total, order.ID.String())
			if err != nil {
				d.Logger.Warn("stk push failed", zap.String("order_id", order.ID.String()), zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
				return
			}
			if err := d.Repos.Order.UpdatePaymentReference(ctx, order.ID, "mpesa", result.CheckoutRequestID); err != nil {
				respondError(c, d.Logger, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"method":  "mpesa",
				"message": result.Message,
			})
		default:
			result, err := d.Flutterwave.InitiatePayment(user.Email, phone, order.Total, order.ID.String(), currencyForCountry(country))
			if err != nil {
				d.Logger.Warn("flutterwave init failed", zap.String("order_id", order.ID.String()), zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
				return
			}
			if err := d.Repos.Order.UpdatePaymentReference(ctx, order.ID, "flutterwave", result.TxRef); err != nil {
				respondError(c, d.Logger, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"success":      true,
				"method":       "flutterwave",
				"payment_link": result.PaymentLink,
			})
		}
	}
}

// currencyForCountry maps a stored country code to the charge currency
func currencyForCountry(countryCode string) string {
	switch countryCode {
	case "TZ":
		return "TZS"
	case "UG":
		return "UGX"
	case "NG":
		return "NGN"
	default:
		return "KES"
	}
}

// HandleMpesaCallback handles POST /mpesa/callback. Daraja expects a zero
// ResultCode acknowledgement regardless of what we did with the event.
func HandleMpesaCallback(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var callback payments.STKCallback
		if err := c.ShouldBindJSON(&callback); err == nil {
			stk := callback.Body.StkCallback
			if stk.CheckoutRequestID != "" {
				ctx := c.Request.Context()
				var err error
				if stk.ResultCode == 0 {
					err = d.Orders.MarkPaidByReference(ctx, stk.CheckoutRequestID)
				} else {
					err = d.Orders.MarkFailedByReference(ctx, stk.CheckoutRequestID)
				}
				if err != nil {
					d.Logger.Warn("mpesa callback not applied",
						zap.String("checkout_request_id", stk.CheckoutRequestID),
						zap.Int("result_code", stk.ResultCode),
						zap.Error(err))
				}
			}
		}
		c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Success"})
	}
}

// HandleFlutterwaveCallback handles GET /payment/callback. The status query
// param is advisory only; the transaction is verified with Flutterwave
// before the order is marked paid.
func HandleFlutterwaveCallback(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		txRef := c.Query("tx_ref")
		status := c.Query("status")

		if status == "successful" && txRef != "" {
			if _, err := d.Flutterwave.VerifyPayment(txRef); err == nil {
				if err := d.Orders.MarkPaidByReference(c.Request.Context(), txRef); err == nil {
					c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment confirmed"})
					return
				}
			} else {
				d.Logger.Warn("flutterwave verification failed", zap.String("tx_ref", txRef), zap.Error(err))
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Payment failed"})
	}
}
