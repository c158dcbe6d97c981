package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/common"
	"github.com/anish-ck/oruva-settlement/eth"
	"github.com/anish-ck/oruva-settlement/models"
	"github.com/anish-ck/oruva-settlement/reconcile"
	"github.com/anish-ck/oruva-settlement/store"
	"github.com/anish-ck/oruva-settlement/vault"
	"github.com/anish-ck/oruva-settlement/webhook"
)

const maxBodyBytes = 1 << 20

type OrderCreator interface {
	CreateOrder(ctx context.Context, wallet string, amount decimal.Decimal, customer models.Customer) (*models.Order, error)
}

type WebhookHandler interface {
	Handle(ctx context.Context, raw []byte, headers http.Header) (webhook.Outcome, error)
}

type VaultInspector interface {
	Snapshot(ctx context.Context, address string) (models.VaultSnapshot, error)
	Preflight(ctx context.Context, address string, action models.VaultAction, amount string) (models.VaultSnapshot, error)
}

type HealthReporter interface {
	Snapshot() models.Health
}

type Handler struct {
	Orders     store.OrderStore
	Creator    OrderCreator
	Webhooks   WebhookHandler
	Reconciler reconcile.Reconciler
	Chain      eth.ChainGateway
	Vaults     VaultInspector
	Health     HealthReporter
}

type createOrderRequest struct {
	Amount        json.Number `json:"amount"`
	WalletAddress string      `json:"walletAddress"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone string      `json:"customerPhone"`
}

type createOrderResponse struct {
	OrderID          string `json:"orderId"`
	PaymentReference string `json:"paymentReference"`
	CheckoutURL      string `json:"checkoutUrl"`
}

type verifyRequest struct {
	OrderID string `json:"orderId"`
}

type balanceResponse struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

type preflightRequest struct {
	Action models.VaultAction `json:"action"`
	Amount json.Number        `json:"amount"`
}

type preflightResponse struct {
	Allowed  bool                 `json:"allowed"`
	Reason   string               `json:"reason,omitempty"`
	Snapshot models.VaultSnapshot `json:"snapshot"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid json body")
		return false
	}
	return true
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil || !amount.IsPositive() {
		writeError(w, http.StatusBadRequest, CodeInvalidAmount, "amount must be a positive number")
		return
	}

	order, err := h.Creator.CreateOrder(r.Context(), req.WalletAddress, amount, models.Customer{
		Email: strings.TrimSpace(req.CustomerEmail),
		Phone: strings.TrimSpace(req.CustomerPhone),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, createOrderResponse{
		OrderID:          order.OrderID,
		PaymentReference: order.PaymentReference,
		CheckoutURL:      order.CheckoutURL,
	})
}

// Webhook acknowledges every delivery except when a completed payment could not be queued,
// so the gateway redelivers it.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Warn("[API] Error reading webhook body: ", err)
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	outcome, err := h.Webhooks.Handle(r.Context(), raw, r.Header)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, CodeQueueUnavailable, "settlement queue unavailable")
		return
	}
	log.Debug("[API] Webhook outcome: ", outcome)
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *Handler) VerifyAndMint(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.OrderID) == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "orderId is required")
		return
	}

	order, err := h.Reconciler.Reconcile(r.Context(), strings.TrimSpace(req.OrderID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidAddress, "wallet query parameter is required")
		return
	}

	orders, err := h.Orders.ListByWallet(r.Context(), wallet)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	address, ok := common.NormalizeAddress(chi.URLParam(r, "address"))
	if !ok {
		writeError(w, http.StatusBadRequest, CodeInvalidAddress, "invalid wallet address")
		return
	}

	balance, err := h.Chain.GetBalance(r.Context(), address)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Address: address, Balance: balance})
}

func (h *Handler) Vault(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Vaults.Snapshot(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) VaultPreflight(w http.ResponseWriter, r *http.Request) {
	var req preflightRequest
	if !decodeBody(w, r, &req) {
		return
	}

	snapshot, err := h.Vaults.Preflight(r.Context(), chi.URLParam(r, "address"), req.Action, req.Amount.String())
	if err == nil {
		writeJSON(w, http.StatusOK, preflightResponse{Allowed: true, Snapshot: snapshot})
		return
	}
	if errors.Is(err, vault.ErrExceedsBorrowCapacity) {
		writeJSON(w, http.StatusOK, preflightResponse{Allowed: false, Reason: err.Error(), Snapshot: snapshot})
		return
	}
	writeServiceError(w, r, err)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.Health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	health := h.Health.Snapshot()
	status := http.StatusOK
	if !health.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}
