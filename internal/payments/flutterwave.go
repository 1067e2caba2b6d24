package payments

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/config"
)

// FlutterwaveClient talks to the Flutterwave v3 API for card and non-Kenyan
// mobile money payments.
type FlutterwaveClient struct {
	secretKey  string
	baseURL    string
	siteURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewFlutterwaveClient(cfg config.FlutterwaveConfig, siteURL string, logger *zap.Logger) *FlutterwaveClient {
	return &FlutterwaveClient{
		secretKey: cfg.SecretKey,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		siteURL:   strings.TrimSuffix(siteURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// NewTxRef builds a unique transaction reference for an order
func NewTxRef(orderID string) string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return fmt.Sprintf("turk_trendy_%s_%s", orderID, hex.EncodeToString(buf))
}

type paymentRequest struct {
	TxRef          string                 `json:"tx_ref"`
	Amount         string                 `json:"amount"`
	Currency       string                 `json:"currency"`
	RedirectURL    string                 `json:"redirect_url"`
	Customer       paymentCustomer        `json:"customer"`
	Customizations map[string]interface{} `json:"customizations"`
}

type paymentCustomer struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
	Name        string `json:"name"`
}

type paymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

// InitiatePaymentResult carries the hosted payment page link and the tx_ref
// stored on the order for later verification.
type InitiatePaymentResult struct {
	PaymentLink string
	TxRef       string
}

// InitiatePayment creates a hosted payment session for an order
func (c *FlutterwaveClient) InitiatePayment(email, phone string, amount float64, orderID, currency string) (*InitiatePaymentResult, error) {
	if currency == "" {
		currency = "KES"
	}
	txRef := NewTxRef(orderID)

	payload := paymentRequest{
		TxRef:       txRef,
		Amount:      fmt.Sprintf("%g", amount),
		Currency:    currency,
		RedirectURL: c.siteURL + "/payment/callback",
		Customer: paymentCustomer{
			Email:       email,
			PhoneNumber: phone,
			Name:        "Customer",
		},
		Customizations: map[string]interface{}{
			"title":       "Turk Trendy Shop",
			"description": fmt.Sprintf("Payment for Order #%s", orderID),
			"logo":        c.siteURL + "/static/logo.png",
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/v3/payments", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result paymentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	if result.Status != "success" {
		msg := result.Message
		if msg == "" {
			msg = "Payment initialization failed"
		}
		c.logger.Warn("flutterwave payment init rejected",
			zap.String("order_id", orderID),
			zap.String("message", msg))
		return nil, fmt.Errorf("flutterwave init failed: %s", msg)
	}

	return &InitiatePaymentResult{
		PaymentLink: result.Data.Link,
		TxRef:       txRef,
	}, nil
}

type verifyResponse struct {
	Status string `json:"status"`
	Data   struct {
		ID       int64   `json:"id"`
		Status   string  `json:"status"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"data"`
}

// VerifyPaymentResult is a settled transaction as reported by Flutterwave
type VerifyPaymentResult struct {
	TransactionID int64
	Amount        float64
	Currency      string
}

// VerifyPayment confirms a transaction by its tx_ref. Callbacks are not
// trusted on their own; the redirect handler calls this before marking an
// order paid.
func (c *FlutterwaveClient) VerifyPayment(txRef string) (*VerifyPaymentResult, error) {
	reqURL := fmt.Sprintf("%s/v3/transactions/verify_by_reference?tx_ref=%s", c.baseURL, url.QueryEscape(txRef))

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result verifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	if result.Status != "success" || result.Data.Status != "successful" {
		return nil, fmt.Errorf("payment verification failed for %s", txRef)
	}

	return &VerifyPaymentResult{
		TransactionID: result.Data.ID,
		Amount:        result.Data.Amount,
		Currency:      result.Data.Currency,
	}, nil
}
