package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/app"
)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// order statuses reported by the gateway
const (
	StatusActive  = "ACTIVE"
	StatusPaid    = "PAID"
	StatusExpired = "EXPIRED"
)

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payment gateway error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

type CreateOrderRequest struct {
	Reference     string
	Amount        decimal.Decimal
	WalletAddress string
	CustomerEmail string
	CustomerPhone string
}

type CheckoutSession struct {
	Reference   string
	SessionID   string
	CheckoutURL string
}

type OrderStatus struct {
	Reference string
	Amount    decimal.Decimal
	Status    string
}

func (s OrderStatus) IsPaid() bool {
	return s.Status == StatusPaid
}

type Gateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (CheckoutSession, error)
	GetOrder(ctx context.Context, reference string) (OrderStatus, error)
}

type Client struct {
	baseURL     string
	apiVersion  string
	appID       string
	secretKey   string
	currency    string
	returnURL   string
	checkoutURL string
	http        *http.Client
}

var _ Gateway = &Client{}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

type orderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
}

type createOrderBody struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     json.Number     `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
	OrderMeta       orderMeta       `json:"order_meta"`
}

type orderResponse struct {
	OrderID          string          `json:"order_id"`
	OrderAmount      decimal.Decimal `json:"order_amount"`
	OrderStatus      string          `json:"order_status"`
	PaymentSessionID string          `json:"payment_session_id"`
	PaymentLink      string          `json:"payment_link"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (x *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, x.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-client-id", x.appID)
	req.Header.Set("x-client-secret", x.secretKey)
	req.Header.Set("x-api-version", x.apiVersion)

	resp, err := x.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 300 {
		var apiErr errorResponse
		_ = json.Unmarshal(data, &apiErr)
		return &APIError{StatusCode: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error decoding gateway response: %w", err)
	}
	return nil
}

// CreateOrder registers the order with the gateway using our reference as its order id.
func (x *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (CheckoutSession, error) {
	body := createOrderBody{
		OrderID:       req.Reference,
		OrderAmount:   json.Number(req.Amount.String()),
		OrderCurrency: x.currency,
		CustomerDetails: customerDetails{
			CustomerID:    customerID(req.WalletAddress),
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
		},
		OrderMeta: orderMeta{
			ReturnURL: strings.ReplaceAll(x.returnURL, "{order_id}", req.Reference),
		},
	}

	var resp orderResponse
	if err := x.do(ctx, http.MethodPost, "/orders", body, &resp); err != nil {
		return CheckoutSession{}, err
	}

	log.WithField("reference", req.Reference).Debug("[PAYMENTS] Gateway order created")
	return CheckoutSession{
		Reference:   resp.OrderID,
		SessionID:   resp.PaymentSessionID,
		CheckoutURL: x.checkoutLink(resp),
	}, nil
}

func (x *Client) GetOrder(ctx context.Context, reference string) (OrderStatus, error) {
	var resp orderResponse
	if err := x.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(reference), nil, &resp); err != nil {
		return OrderStatus{}, err
	}
	return OrderStatus{
		Reference: resp.OrderID,
		Amount:    resp.OrderAmount,
		Status:    strings.ToUpper(resp.OrderStatus),
	}, nil
}

func (x *Client) checkoutLink(resp orderResponse) string {
	if resp.PaymentLink != "" {
		return resp.PaymentLink
	}
	if x.checkoutURL == "" || resp.PaymentSessionID == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(x.checkoutURL, "?") {
		sep = "&"
	}
	return x.checkoutURL + sep + "payment_session_id=" + url.QueryEscape(resp.PaymentSessionID)
}

// customerID derives a gateway safe customer id from the wallet address.
func customerID(wallet string) string {
	id := strings.TrimPrefix(strings.ToLower(wallet), "0x")
	if id == "" {
		return "guest"
	}
	return "w_" + id
}

func NewClient() *Client {
	config := app.Config.PaymentGateway
	return &Client{
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		apiVersion:  config.APIVersion,
		appID:       config.AppID,
		secretKey:   config.SecretKey,
		currency:    config.Currency,
		returnURL:   config.ReturnURL,
		checkoutURL: config.CheckoutURL,
		http: &http.Client{
			Timeout: time.Duration(config.TimeoutMillis) * time.Millisecond,
		},
	}
}
