package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/api/middleware"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/service"
	apperrors "github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

// HandleTrackOrder handles GET /track/:order_id. Tracking is public so the
// customer can share the link.
func HandleTrackOrder(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("order_id"))
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

		tracking, err := d.Repos.OrderTracking.ListByOrderID(ctx, orderID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		type trackingResponse struct {
			Location         string    `json:"location"`
			TransportCompany string    `json:"transport_company"`
			DriverName       string    `json:"driver_name"`
			Status           string    `json:"status"`
			UpdatedAt        time.Time `json:"updated_at"`
		}
		history := make([]trackingResponse, 0, len(tracking))
		for _, t := range tracking {
			history = append(history, trackingResponse{
				Location:         t.Location,
				TransportCompany: t.TransportCompany,
				DriverName:       t.DriverName,
				Status:           t.Status,
				UpdatedAt:        t.UpdatedAt,
			})
		}

		resp := gin.H{
			"order":    toOrderResponse(order),
			"tracking": history,
		}
		if confirmation, err := d.Repos.DeliveryConfirmation.GetByOrderID(ctx, orderID); err == nil {
			resp["confirmation"] = gin.H{
				"rating":             confirmation.Rating,
				"feedback":           confirmation.Feedback,
				"photo_url":          confirmation.PhotoURL,
				"confirmed_by_admin": confirmation.ConfirmedByAdmin,
				"created_at":         confirmation.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// HandleCancelOrder handles POST /orders/:id/cancel
func HandleCancelOrder(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req cancelOrderRequest
		_ = c.ShouldBindJSON(&req)

		if err := d.Orders.Cancel(c.Request.Context(), orderID, session.UserID, req.Reason); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type refundRequest struct {
	Reason string `json:"reason"`
}

// HandleRefundRequest handles POST /orders/:id/refund-request, returning a
// WhatsApp link carrying the refund message.
func HandleRefundRequest(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		orderID, err := uuid.Parse(c.Param("id"))
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

		var req refundRequest
		_ = c.ShouldBindJSON(&req)

		message := d.WhatsApp.RefundMessage(user, order, req.Reason)
		c.JSON(http.StatusOK, gin.H{"whatsapp_url": d.WhatsApp.Link(message)})
	}
}

type reportIssueRequest struct {
	IssueType string `json:"issue_type"`
	Message   string `json:"message"`
}

// HandleReportIssue handles POST /orders/:id/report-issue
func HandleReportIssue(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		orderID, err := uuid.Parse(c.Param("id"))
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

		var req reportIssueRequest
		_ = c.ShouldBindJSON(&req)

		message := d.WhatsApp.IssueMessage(user, order, req.IssueType, req.Message)
		c.JSON(http.StatusOK, gin.H{"whatsapp_url": d.WhatsApp.Link(message)})
	}
}

type confirmDeliveryRequest struct {
	Rating   int     `json:"rating" binding:"required"`
	Feedback string  `json:"feedback"`
	PhotoURL *string `json:"photo_url"`
}

// HandleConfirmDelivery handles POST /orders/:id/confirm-delivery
func HandleConfirmDelivery(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req confirmDeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating is required"})
			return
		}

		confirmation, err := d.Orders.ConfirmDelivery(c.Request.Context(), orderID, session.UserID, service.ConfirmDeliveryInput{
			PhotoURL: req.PhotoURL,
			Rating:   req.Rating,
			Feedback: req.Feedback,
		})
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"confirmation_id": confirmation.ID.String(),
			"rating":          confirmation.Rating,
		})
	}
}

// HandleListMyOrders handles GET /orders for the signed-in customer
func HandleListMyOrders(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		orders, err := d.Repos.Order.ListByUserID(c.Request.Context(), session.UserID)
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
