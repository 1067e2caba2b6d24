package payments

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/config"
)

func TestDetectMethod(t *testing.T) {
	tests := []struct {
		phone   string
		country string
		want    string
	}{
		{"254712345678", "KE", "mpesa"},
		{"255712345678", "TZ", "mpesa"},
		{"256712345678", "UG", "mpesa"},
		{"254712345678", "NG", "flutterwave"},
		{"0712345678", "KE", "flutterwave"},
		{"2348012345678", "NG", "flutterwave"},
	}
	for _, tt := range tests {
		if got := DetectMethod(tt.phone, tt.country); got != tt.want {
			t.Errorf("DetectMethod(%s, %s) = %s, want %s", tt.phone, tt.country, got, tt.want)
		}
	}
}

func TestMpesaGetAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/v1/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		auth := r.Header.Get("Authorization")
		want := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
		if auth != want {
			t.Errorf("auth header = %q, want %q", auth, want)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok123", "expires_in": "3599"})
	}))
	defer server.Close()

	client := NewMpesaClient(config.MpesaConfig{
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		BaseURL:        server.URL,
	}, zap.NewNop())

	token, err := client.GetAccessToken()
	if err != nil {
		t.Fatalf("GetAccessToken: %v", err)
	}
	if token != "tok123" {
		t.Errorf("token = %q", token)
	}
}

func TestMpesaSTKPush(t *testing.T) {
	var gotPush stkPushRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/v1/generate":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok123"})
		case "/mpesa/stkpush/v1/processrequest":
			if r.Header.Get("Authorization") != "Bearer tok123" {
				t.Errorf("missing bearer token")
			}
			json.NewDecoder(r.Body).Decode(&gotPush)
			json.NewEncoder(w).Encode(map[string]string{
				"ResponseCode":      "0",
				"CheckoutRequestID": "ws_CO_1",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewMpesaClient(config.MpesaConfig{
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		Shortcode:      "174379",
		Passkey:        "passkey",
		CallbackURL:    "https://shop.example.com/mpesa/callback",
		BaseURL:        server.URL,
	}, zap.NewNop())
	client.now = func() time.Time { return time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC) }

	result, err := client.STKPush("254712345678", 1500.75, "abc123")
	if err != nil {
		t.Fatalf("STKPush: %v", err)
	}
	if result.CheckoutRequestID != "ws_CO_1" {
		t.Errorf("checkout request id = %q", result.CheckoutRequestID)
	}

	if gotPush.Amount != 1500 {
		t.Errorf("amount = %d, want truncated 1500", gotPush.Amount)
	}
	if gotPush.AccountReference != "Orderabc123" {
		t.Errorf("account reference = %q", gotPush.AccountReference)
	}
	if gotPush.Timestamp != "20240615103000" {
		t.Errorf("timestamp = %q", gotPush.Timestamp)
	}
	wantPassword := base64.StdEncoding.EncodeToString([]byte("174379passkey20240615103000"))
	if gotPush.Password != wantPassword {
		t.Errorf("password = %q, want %q", gotPush.Password, wantPassword)
	}
	if gotPush.CallBackURL != "https://shop.example.com/mpesa/callback" {
		t.Errorf("callback url = %q", gotPush.CallBackURL)
	}
}

func TestMpesaSTKPushRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/v1/generate" {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok123"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"ResponseCode": "1",
			"errorMessage": "Insufficient funds",
		})
	}))
	defer server.Close()

	client := NewMpesaClient(config.MpesaConfig{BaseURL: server.URL}, zap.NewNop())

	_, err := client.STKPush("254712345678", 100, "x")
	if err == nil || !strings.Contains(err.Error(), "Insufficient funds") {
		t.Fatalf("expected rejection error, got %v", err)
	}
}

func TestFlutterwaveInitiatePayment(t *testing.T) {
	var gotReq paymentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/payments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test" {
			t.Errorf("missing secret key")
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data":   map[string]string{"link": "https://checkout.flutterwave.com/pay/x"},
		})
	}))
	defer server.Close()

	client := NewFlutterwaveClient(config.FlutterwaveConfig{
		SecretKey: "sk_test",
		BaseURL:   server.URL,
	}, "https://shop.example.com", zap.NewNop())

	result, err := client.InitiatePayment("jane@example.com", "2348012345678", 2500, "ord1", "")
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	if result.PaymentLink != "https://checkout.flutterwave.com/pay/x" {
		t.Errorf("payment link = %q", result.PaymentLink)
	}
	if !strings.HasPrefix(result.TxRef, "turk_trendy_ord1_") {
		t.Errorf("tx ref = %q", result.TxRef)
	}

	if gotReq.Currency != "KES" {
		t.Errorf("currency = %q, want default KES", gotReq.Currency)
	}
	if gotReq.RedirectURL != "https://shop.example.com/payment/callback" {
		t.Errorf("redirect url = %q", gotReq.RedirectURL)
	}
	if gotReq.Customer.Email != "jane@example.com" {
		t.Errorf("customer email = %q", gotReq.Customer.Email)
	}
}

func TestFlutterwaveVerifyPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/transactions/verify_by_reference" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("tx_ref") != "turk_trendy_ord1_aa" {
			t.Errorf("tx_ref = %q", r.URL.Query().Get("tx_ref"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": map[string]interface{}{
				"id":       12345,
				"status":   "successful",
				"amount":   2500.0,
				"currency": "KES",
			},
		})
	}))
	defer server.Close()

	client := NewFlutterwaveClient(config.FlutterwaveConfig{SecretKey: "sk", BaseURL: server.URL}, "", zap.NewNop())

	result, err := client.VerifyPayment("turk_trendy_ord1_aa")
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if result.TransactionID != 12345 || result.Amount != 2500 {
		t.Errorf("result = %+v", result)
	}
}

func TestFlutterwaveVerifyPaymentFailedTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data":   map[string]interface{}{"status": "failed"},
		})
	}))
	defer server.Close()

	client := NewFlutterwaveClient(config.FlutterwaveConfig{BaseURL: server.URL}, "", zap.NewNop())

	if _, err := client.VerifyPayment("ref"); err == nil {
		t.Fatal("expected verification error")
	}
}
