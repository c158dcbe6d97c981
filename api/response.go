package api

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/eth"
	"github.com/anish-ck/oruva-settlement/payments"
	"github.com/anish-ck/oruva-settlement/settlement"
	"github.com/anish-ck/oruva-settlement/store"
	"github.com/anish-ck/oruva-settlement/vault"
)

// error codes returned in the envelope
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidAmount        = "INVALID_AMOUNT"
	CodeInvalidAddress       = "INVALID_ADDRESS"
	CodeInvalidAction        = "INVALID_ACTION"
	CodeOrderNotFound        = "ORDER_NOT_FOUND"
	CodeDuplicateOrder       = "DUPLICATE_ORDER"
	CodeSettlementInProgress = "SETTLEMENT_IN_PROGRESS"
	CodeExceedsCapacity      = "EXCEEDS_BORROW_CAPACITY"
	CodePaymentGateway       = "PAYMENT_GATEWAY_ERROR"
	CodeChainUnavailable     = "CHAIN_UNAVAILABLE"
	CodeChainReverted        = "CHAIN_CALL_REVERTED"
	CodePriceUnavailable     = "PRICE_UNAVAILABLE"
	CodeQueueUnavailable     = "QUEUE_UNAVAILABLE"
	CodeInternal             = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn("[API] Error writing response: ", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, code string, message string) {
	writeJSON(w, statusCode, ErrorResponse{Code: code, Message: message})
}

// writeServiceError maps domain errors onto HTTP statuses. Unknown errors are logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *payments.APIError
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, settlement.ErrUnknownOrder):
		writeError(w, http.StatusNotFound, CodeOrderNotFound, "order not found")
	case errors.Is(err, store.ErrInvalidAmount), errors.Is(err, vault.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, CodeInvalidAmount, "amount must be a positive number")
	case errors.Is(err, store.ErrInvalidAddress):
		writeError(w, http.StatusBadRequest, CodeInvalidAddress, "invalid wallet address")
	case errors.Is(err, vault.ErrUnknownAction):
		writeError(w, http.StatusBadRequest, CodeInvalidAction, "action must be borrow or buy")
	case errors.Is(err, store.ErrDuplicateOrder):
		writeError(w, http.StatusConflict, CodeDuplicateOrder, "duplicate payment reference")
	case errors.Is(err, settlement.ErrSettlementInProgress):
		writeError(w, http.StatusConflict, CodeSettlementInProgress, "settlement already in progress")
	case errors.Is(err, vault.ErrExceedsBorrowCapacity):
		writeError(w, http.StatusUnprocessableEntity, CodeExceedsCapacity, err.Error())
	case errors.Is(err, payments.ErrGatewayUnavailable), errors.As(err, &apiErr):
		writeError(w, http.StatusBadGateway, CodePaymentGateway, "payment gateway request failed")
	case errors.Is(err, eth.ErrChainCallReverted):
		writeError(w, http.StatusBadGateway, CodeChainReverted, err.Error())
	case errors.Is(err, eth.ErrChainUnavailable):
		writeError(w, http.StatusServiceUnavailable, CodeChainUnavailable, "chain unavailable")
	case errors.Is(err, vault.ErrPriceUnavailable):
		writeError(w, http.StatusServiceUnavailable, CodePriceUnavailable, "collateral price unavailable")
	default:
		log.WithField("path", r.URL.Path).Error("[API] Unhandled error: ", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
