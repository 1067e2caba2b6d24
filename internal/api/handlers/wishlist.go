package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/api/middleware"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	apperrors "github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

// HandleAddToWishlist handles POST /wishlist/:product_id. Adding an item
// that is already saved succeeds without change.
func HandleAddToWishlist(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		productID, err := uuid.Parse(c.Param("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		ctx := c.Request.Context()

		if _, err := d.Repos.Product.GetByID(ctx, productID); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		if err := d.Repos.Wishlist.Add(ctx, session.UserID, productID); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleRemoveFromWishlist handles DELETE /wishlist/:product_id
func HandleRemoveFromWishlist(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		productID, err := uuid.Parse(c.Param("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		if err := d.Repos.Wishlist.Remove(c.Request.Context(), session.UserID, productID); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HandleGetWishlist handles GET /wishlist
func HandleGetWishlist(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)
		ctx := c.Request.Context()

		ids, err := d.Repos.Wishlist.ListProductIDs(ctx, session.UserID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		products := make([]*domain.Product, 0, len(ids))
		for _, id := range ids {
			p, err := d.Repos.Product.GetByID(ctx, id)
			if err != nil {
				continue
			}
			products = append(products, p)
		}
		c.JSON(http.StatusOK, gin.H{"products": toProductResponses(products, time.Now(), displayCurrency(c, d))})
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// HandleCreateReview handles POST /products/:id/reviews, one per customer
// per product.
func HandleCreateReview(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Rating < 1 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}
		ctx := c.Request.Context()

		if _, err := d.Repos.Product.GetByID(ctx, productID); err != nil {
			respondError(c, d.Logger, err)
			return
		}

		if _, err := d.Repos.Review.GetByProductAndUser(ctx, productID, session.UserID); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product"})
			return
		} else {
			var notFound *apperrors.ErrNotFound
			if !errors.As(err, &notFound) {
				respondError(c, d.Logger, err)
				return
			}
		}

		review := &domain.Review{
			ID:        uuid.New(),
			ProductID: productID,
			UserID:    session.UserID,
			Rating:    req.Rating,
			Comment:   req.Comment,
			CreatedAt: time.Now(),
		}
		if err := d.Repos.Review.Create(ctx, review); err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"review_id": review.ID.String()})
	}
}
