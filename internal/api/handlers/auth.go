package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/api/middleware"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/security"
	apperrors "github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

type registerRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	CountryCode     string `json:"country_code"`
	Currency        string `json:"currency"`
}

// HandleRegister handles POST /register
func HandleRegister(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !d.RegLimiter.Allow(ip) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many registration attempts. Try again later."})
			return
		}

		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email, password, confirm_password, name and phone are required"})
			return
		}

		if !security.ValidEmailFormat(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}
		if security.IsDisposableEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Disposable email addresses are not allowed"})
			return
		}
		if !security.ValidPasswordLength(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
			return
		}
		if req.Password != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}

		ctx := c.Request.Context()
		if _, err := d.Repos.User.GetByEmail(ctx, req.Email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "This email is already registered"})
			return
		}
		if _, err := d.Repos.User.GetByName(ctx, req.Name); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "This name is already taken. Please choose a different name"})
			return
		}
		if _, err := d.Repos.User.GetByPhone(ctx, req.Phone); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "This phone number is already registered"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		countryCode := req.CountryCode
		if countryCode == "" {
			countryCode = "ke"
		}
		currency := req.Currency
		if currency == "" {
			currency = "KSh"
		}

		user := &domain.User{
			ID:           uuid.New(),
			Email:        req.Email,
			PasswordHash: string(hash),
			Name:         req.Name,
			Phone:        req.Phone,
			CountryCode:  countryCode,
			Currency:     currency,
			IPAddress:    &ip,
			Tier:         domain.TierBronze,
		}
		if err := d.Repos.User.Create(ctx, user); err != nil {
			respondError(c, d.Logger, err)
			return
		}

		// only successful registrations count against the IP cap
		d.RegLimiter.Record(ip)

		token, err := d.Tokens.GenerateUserToken(user.ID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		setSessionCookie(c, d, token)
		c.JSON(http.StatusCreated, gin.H{"user_id": user.ID.String(), "name": user.Name})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleLogin handles POST /login
func HandleLogin(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		ip := c.ClientIP()

		if locked, attempts := d.Lockout.IsLocked(req.Email); locked {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Account locked due to %d failed attempts. Try again in 15 minutes.", attempts),
			})
			return
		}
		if !d.LoginLimit.Allow(ip) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts. Try again later."})
			return
		}

		user, err := d.Repos.User.GetByEmail(c.Request.Context(), req.Email)
		if err == nil && bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) == nil {
			d.Lockout.Clear(req.Email)
			token, err := d.Tokens.GenerateUserToken(user.ID)
			if err != nil {
				respondError(c, d.Logger, err)
				return
			}
			setSessionCookie(c, d, token)
			d.Logger.Info("User login", zap.String("email", req.Email), zap.String("ip", ip))
			c.JSON(http.StatusOK, gin.H{"user_id": user.ID.String(), "name": user.Name})
			return
		}

		d.Lockout.RecordFailure(req.Email)
		d.LoginLimit.Record(ip)
		d.Logger.Warn("Failed login", zap.String("email", req.Email), zap.String("ip", ip))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	}
}

// HandleLogout handles POST /logout
func HandleLogout(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSessionCookie(c, d)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type forgotPasswordRequest struct {
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// HandleForgotPassword handles POST /forgot-password. Identity is proven by
// matching name and phone together; the previous password cannot be reused.
func HandleForgotPassword(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req forgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, phone, new_password and confirm_password are required"})
			return
		}

		if req.NewPassword != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}
		if !security.ValidPasswordLength(req.NewPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
			return
		}

		user, err := d.Repos.User.GetByNameAndPhone(c.Request.Context(), req.Name, req.Phone)
		if err != nil {
			var notFound *apperrors.ErrNotFound
			if errors.As(err, &notFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name and phone number do not match our records. Make sure you registered with this phone number."})
				return
			}
			respondError(c, d.Logger, err)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.NewPassword)) == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot use your previous password. Please choose a different password."})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		if err := d.Repos.User.UpdatePassword(c.Request.Context(), user.ID, string(hash)); err != nil {
			respondError(c, d.Logger, err)
			return
		}

		token, err := d.Tokens.GenerateUserToken(user.ID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		setSessionCookie(c, d, token)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleDashboard handles GET /dashboard
func HandleDashboard(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)
		ctx := c.Request.Context()

		user, err := d.Repos.User.GetByID(ctx, session.UserID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		orders, err := d.Repos.Order.ListByUserID(ctx, session.UserID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		var totalSpent float64
		activeOrders := 0
		orderList := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			totalSpent += o.Total
			switch o.Status {
			case domain.OrderStatusPending, domain.OrderStatusProcessing, domain.OrderStatusShipped:
				activeOrders++
			}
			orderList = append(orderList, toOrderResponse(o))
		}

		c.JSON(http.StatusOK, gin.H{
			"user": gin.H{
				"name":         user.Name,
				"email":        user.Email,
				"phone":        user.Phone,
				"points":       user.Points,
				"tier":         user.Tier,
				"tier_badge":   user.Tier.Badge(),
				"admin_rating": user.AdminRating,
			},
			"orders":        orderList,
			"total_spent":   totalSpent,
			"active_orders": activeOrders,
		})
	}
}

// HandleGetProfile handles GET /profile
func HandleGetProfile(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		user, err := d.Repos.User.GetByID(c.Request.Context(), session.UserID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"name":         user.Name,
			"email":        user.Email,
			"phone":        user.Phone,
			"country_code": user.CountryCode,
			"currency":     user.Currency,
			"points":       user.Points,
			"tier":         user.Tier,
		})
	}
}

type updateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// HandleUpdateProfile handles PUT /profile
func HandleUpdateProfile(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and phone are required"})
			return
		}

		ctx := c.Request.Context()
		user, err := d.Repos.User.GetByID(ctx, session.UserID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		if other, err := d.Repos.User.GetByName(ctx, req.Name); err == nil && other.ID != user.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "Name already taken"})
			return
		}
		if other, err := d.Repos.User.GetByEmail(ctx, req.Email); err == nil && other.ID != user.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}

		user.Name = req.Name
		user.Email = req.Email
		user.Phone = req.Phone
		if err := d.Repos.User.Update(ctx, user); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	}
}

// HandleCheckName handles POST /check-name for live availability checks
func HandleCheckName(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		_, err := d.Repos.User.GetByName(c.Request.Context(), req.Name)
		c.JSON(http.StatusOK, gin.H{"available": err != nil})
	}
}

// HandleCheckEmail handles POST /check-email
func HandleCheckEmail(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}

		_, err := d.Repos.User.GetByEmail(c.Request.Context(), req.Email)
		c.JSON(http.StatusOK, gin.H{"available": err != nil})
	}
}
