package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/service"
)

const cartCookieName = "cart"
const cartCookieMaxAge = 7 * 24 * 60 * 60

// readCart decodes the cart cookie. A missing or malformed cookie is an
// empty cart.
func readCart(c *gin.Context) []domain.CartItem {
	cookie, err := c.Cookie(cartCookieName)
	if err != nil || cookie == "" {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(cookie)
	if err != nil {
		return nil
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

func writeCart(c *gin.Context, items []domain.CartItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.SetCookie(cartCookieName, base64.StdEncoding.EncodeToString(raw), cartCookieMaxAge, "/", "", false, false)
}

func cartTotal(items []domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// HandleGetCart handles GET /cart
func HandleGetCart(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := readCart(c)
		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"count": len(items),
			"total": cartTotal(items),
		})
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// HandleAddCartItem handles POST /cart/items. The server resolves name,
// price and image from the catalog; duplicate lines merge quantities.
func HandleAddCartItem(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		product, err := d.Repos.Product.GetByID(c.Request.Context(), productID)
		if err != nil {
			respondError(c, d.Logger, err)
			return
		}

		quantity := req.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		items := readCart(c)
		merged := false
		for i := range items {
			if items[i].ProductID == productID && items[i].Size == req.Size && items[i].Color == req.Color {
				items[i].Quantity += quantity
				merged = true
				break
			}
		}
		if !merged {
			imageURL := ""
			if len(product.ImageURLs) > 0 {
				imageURL = product.ImageURLs[0]
			}
			items = append(items, domain.CartItem{
				ProductID: productID,
				Name:      product.Name,
				Price:     service.EffectivePrice(product, time.Now()),
				Quantity:  quantity,
				Size:      req.Size,
				Color:     req.Color,
				ImageURL:  imageURL,
			})
		}

		writeCart(c, items)
		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"count": len(items),
			"total": cartTotal(items),
		})
	}
}

// HandleRemoveCartItem handles DELETE /cart/items/:product_id. Size and
// color query params narrow the line when a product appears in variants.
func HandleRemoveCartItem(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		size := c.Query("size")
		color := c.Query("color")

		items := readCart(c)
		kept := items[:0]
		for _, item := range items {
			if item.ProductID == productID &&
				(size == "" || item.Size == size) &&
				(color == "" || item.Color == color) {
				continue
			}
			kept = append(kept, item)
		}

		writeCart(c, kept)
		c.JSON(http.StatusOK, gin.H{
			"items": kept,
			"count": len(kept),
			"total": cartTotal(kept),
		})
	}
}
