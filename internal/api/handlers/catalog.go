package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/api/middleware"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
)

// HandleHome handles GET / with the trending storefront selection
func HandleHome(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		home, err := d.Catalog.TrendingForHome(c.Request.Context())
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		now := time.Now()
		currency := displayCurrency(c, d)
		type homeProduct struct {
			ProductResponse
			IsHot      bool `json:"is_hot"`
			OrderCount int  `json:"order_count"`
		}
		products := make([]homeProduct, 0, len(home))
		for _, hp := range home {
			products = append(products, homeProduct{
				ProductResponse: toProductResponse(hp.Product, now, currency),
				IsHot:           hp.IsHot,
				OrderCount:      hp.OrderCount,
			})
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "currency": currency})
	}
}

// HandleListProducts handles GET /products with optional filters
func HandleListProducts(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.ProductFilter{
			Category: c.Query("category"),
			Gender:   c.Query("gender"),
			Search:   c.Query("search"),
		}

		products, err := d.Repos.Product.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": toProductResponses(products, time.Now(), displayCurrency(c, d))})
	}
}

// HandleGetProduct handles GET /products/:id: detail, reviews, related
// products, wishlist flag. Records the view for signed-in customers.
func HandleGetProduct(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		product, err := d.Repos.Product.GetByID(c.Request.Context(), productID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		reviews, err := d.Repos.Review.ListByProductID(c.Request.Context(), productID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		var avgRating float64
		if len(reviews) > 0 {
			var sum int
			for _, r := range reviews {
				sum += r.Rating
			}
			avgRating = float64(sum) / float64(len(reviews))
		}

		related, err := d.Catalog.Related(c.Request.Context(), product)
		if err != nil {
			d.Logger.Warn("failed to load related products")
			related = nil
		}

		inWishlist := false
		if session, ok := middleware.GetSession(c); ok && !session.Admin {
			d.Catalog.RecordView(c.Request.Context(), session.UserID, productID)
			inWishlist, _ = d.Repos.Wishlist.Exists(c.Request.Context(), session.UserID, productID)
		}

		now := time.Now()
		currency := displayCurrency(c, d)
		type reviewResponse struct {
			Rating    int       `json:"rating"`
			Comment   string    `json:"comment"`
			CreatedAt time.Time `json:"created_at"`
		}
		reviewList := make([]reviewResponse, 0, len(reviews))
		for _, r := range reviews {
			reviewList = append(reviewList, reviewResponse{Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt})
		}

		c.JSON(http.StatusOK, gin.H{
			"product":        toProductResponse(product, now, currency),
			"reviews":        reviewList,
			"average_rating": avgRating,
			"related":        toProductResponses(related, now, currency),
			"in_wishlist":    inWishlist,
		})
	}
}

// HandleAutocomplete handles GET /search/autocomplete
func HandleAutocomplete(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := d.Catalog.Autocomplete(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		type suggestion struct {
			ID    string  `json:"id"`
			Name  string  `json:"name"`
			Price float64 `json:"price"`
		}
		suggestions := make([]suggestion, 0, len(products))
		for _, p := range products {
			suggestions = append(suggestions, suggestion{ID: p.ID.String(), Name: p.Name, Price: p.Price})
		}
		c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
	}
}

// HandleRecentlyViewed handles GET /recently-viewed for the signed-in customer
func HandleRecentlyViewed(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.GetSession(c)

		products, err := d.Catalog.RecentlyViewed(c.Request.Context(), session.UserID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": toProductResponses(products, time.Now(), displayCurrency(c, d))})
	}
}

// HandleGetProductAPI handles GET /api/product/:id, a bare product lookup
func HandleGetProductAPI(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		product, err := d.Repos.Product.GetByID(c.Request.Context(), productID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}
		c.JSON(http.StatusOK, toProductResponse(product, time.Now(), displayCurrency(c, d)))
	}
}
