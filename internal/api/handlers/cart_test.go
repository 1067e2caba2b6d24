package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
	apperrors "github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

type fakeProductRepo struct {
	repository.ProductRepository
	products map[uuid.UUID]*domain.Product
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	return p, nil
}

func newCartTestRouter(products ...*domain.Product) *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := &fakeProductRepo{products: make(map[uuid.UUID]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	d := &Deps{
		Repos:  &repository.Repositories{Product: repo},
		Logger: zap.NewNop(),
	}

	router := gin.New()
	router.GET("/cart", HandleGetCart(d))
	router.POST("/cart/items", HandleAddCartItem(d))
	router.DELETE("/cart/items/:product_id", HandleRemoveCartItem(d))
	return router
}

func cartCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == cartCookieName {
			return cookie
		}
	}
	t.Fatal("no cart cookie set")
	return nil
}

func decodeCartCookie(t *testing.T, cookie *http.Cookie) []domain.CartItem {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		t.Fatalf("cart cookie not base64: %v", err)
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("cart cookie not JSON: %v", err)
	}
	return items
}

func addToCart(t *testing.T, router *gin.Engine, cookie *http.Cookie, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/cart/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("add to cart: status %d, body %s", rec.Code, rec.Body.String())
	}
	return rec
}

func TestAddCartItemMergesDuplicateLines(t *testing.T) {
	product := &domain.Product{ID: uuid.New(), Name: "Elegant Dress", Price: 2500}
	router := newCartTestRouter(product)

	body := fmt.Sprintf(`{"product_id":%q,"quantity":1,"size":"M"}`, product.ID)
	rec := addToCart(t, router, nil, body)
	cookie := cartCookieFrom(t, rec)

	rec = addToCart(t, router, cookie, fmt.Sprintf(`{"product_id":%q,"quantity":2,"size":"M"}`, product.ID))
	items := decodeCartCookie(t, cartCookieFrom(t, rec))

	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", items[0].Quantity)
	}
	if items[0].Price != 2500 || items[0].Name != "Elegant Dress" {
		t.Errorf("expected server-resolved price and name, got %+v", items[0])
	}
}

func TestAddCartItemKeepsVariantsSeparate(t *testing.T) {
	product := &domain.Product{ID: uuid.New(), Name: "Elegant Dress", Price: 2500}
	router := newCartTestRouter(product)

	rec := addToCart(t, router, nil, fmt.Sprintf(`{"product_id":%q,"size":"M"}`, product.ID))
	cookie := cartCookieFrom(t, rec)

	rec = addToCart(t, router, cookie, fmt.Sprintf(`{"product_id":%q,"size":"L"}`, product.ID))
	items := decodeCartCookie(t, cartCookieFrom(t, rec))

	if len(items) != 2 {
		t.Fatalf("expected two variant lines, got %d", len(items))
	}
	for _, item := range items {
		if item.Quantity != 1 {
			t.Errorf("expected default quantity 1, got %d", item.Quantity)
		}
	}
}

func TestGetCartWithMalformedCookie(t *testing.T) {
	router := newCartTestRouter()

	req := httptest.NewRequest("GET", "/cart", nil)
	req.AddCookie(&http.Cookie{Name: cartCookieName, Value: "not-base64!!"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Count int     `json:"count"`
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Count != 0 || resp.Total != 0 {
		t.Errorf("expected empty cart, got count=%d total=%v", resp.Count, resp.Total)
	}
}

func TestRemoveCartItemNarrowsBySize(t *testing.T) {
	product := &domain.Product{ID: uuid.New(), Name: "Elegant Dress", Price: 2500}
	router := newCartTestRouter(product)

	rec := addToCart(t, router, nil, fmt.Sprintf(`{"product_id":%q,"size":"M"}`, product.ID))
	rec = addToCart(t, router, cartCookieFrom(t, rec), fmt.Sprintf(`{"product_id":%q,"size":"L"}`, product.ID))
	cookie := cartCookieFrom(t, rec)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/cart/items/%s?size=M", product.ID), nil)
	req.AddCookie(cookie)
	del := httptest.NewRecorder()
	router.ServeHTTP(del, req)

	items := decodeCartCookie(t, cartCookieFrom(t, del))
	if len(items) != 1 {
		t.Fatalf("expected one line after removal, got %d", len(items))
	}
	if items[0].Size != "L" {
		t.Errorf("expected the L variant to remain, got %q", items[0].Size)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	router := newCartTestRouter()

	req := httptest.NewRequest("POST", "/cart/items", bytes.NewBufferString(fmt.Sprintf(`{"product_id":%q}`, uuid.New())))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", rec.Code)
	}
}
