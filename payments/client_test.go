package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetOutput(io.Discard)
}

func NewTestClient(baseURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		apiVersion:  "2023-08-01",
		appID:       "app-id",
		secretKey:   "secret",
		currency:    "INR",
		returnURL:   "https://oruva.app/return?order_id={order_id}",
		checkoutURL: "https://checkout.example/pay",
		http:        &http.Client{Timeout: time.Second},
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)
			assert.Equal(t, "app-id", r.Header.Get("x-client-id"))
			assert.Equal(t, "secret", r.Header.Get("x-client-secret"))
			assert.Equal(t, "2023-08-01", r.Header.Get("x-api-version"))

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "oinr_1", body["order_id"])
			assert.Equal(t, 500.5, body["order_amount"])
			assert.Equal(t, "INR", body["order_currency"])
			customer := body["customer_details"].(map[string]interface{})
			assert.Equal(t, "w_f39fd6e51aad88f6f4ce6ab8827279cfffb92266", customer["customer_id"])
			assert.Equal(t, "9999999999", customer["customer_phone"])
			meta := body["order_meta"].(map[string]interface{})
			assert.Equal(t, "https://oruva.app/return?order_id=oinr_1", meta["return_url"])

			w.Write([]byte(`{"order_id":"oinr_1","order_amount":500.5,"order_status":"ACTIVE","payment_session_id":"session_abc"}`))
		}))
		defer server.Close()

		x := NewTestClient(server.URL)
		session, err := x.CreateOrder(context.Background(), CreateOrderRequest{
			Reference:     "oinr_1",
			Amount:        decimal.RequireFromString("500.50"),
			WalletAddress: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			CustomerEmail: "a@b.c",
			CustomerPhone: "9999999999",
		})

		require.NoError(t, err)
		assert.Equal(t, "oinr_1", session.Reference)
		assert.Equal(t, "session_abc", session.SessionID)
		assert.Equal(t, "https://checkout.example/pay?payment_session_id=session_abc", session.CheckoutURL)
	})

	t.Run("Payment Link Preferred", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"order_id":"oinr_1","payment_session_id":"s","payment_link":"https://pay.link/1"}`))
		}))
		defer server.Close()

		session, err := NewTestClient(server.URL).CreateOrder(context.Background(), CreateOrderRequest{Reference: "oinr_1", Amount: decimal.NewFromInt(1)})

		require.NoError(t, err)
		assert.Equal(t, "https://pay.link/1", session.CheckoutURL)
	})

	t.Run("Rejected Request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":"order_amount_invalid","message":"order_amount : must be at least 1","type":"invalid_request_error"}`))
		}))
		defer server.Close()

		_, err := NewTestClient(server.URL).CreateOrder(context.Background(), CreateOrderRequest{Reference: "oinr_1", Amount: decimal.NewFromInt(0)})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "order_amount_invalid", apiErr.Code)
	})

	t.Run("Server Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewTestClient(server.URL).CreateOrder(context.Background(), CreateOrderRequest{Reference: "oinr_1", Amount: decimal.NewFromInt(1)})

		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})

	t.Run("Unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := NewTestClient(url).CreateOrder(context.Background(), CreateOrderRequest{Reference: "oinr_1", Amount: decimal.NewFromInt(1)})

		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("Paid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/orders/oinr_1", r.URL.Path)
			w.Write([]byte(`{"order_id":"oinr_1","order_amount":500,"order_status":"paid"}`))
		}))
		defer server.Close()

		status, err := NewTestClient(server.URL).GetOrder(context.Background(), "oinr_1")

		require.NoError(t, err)
		assert.True(t, status.IsPaid())
		assert.Equal(t, "500", status.Amount.String())
	})

	t.Run("Not Found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code":"order_not_found","message":"order not found"}`))
		}))
		defer server.Close()

		_, err := NewTestClient(server.URL).GetOrder(context.Background(), "oinr_1")

		var apiErr *APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}
