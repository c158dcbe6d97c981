package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CollectionOrders = "orders"
)

type OrderStatus string

// types of order status
const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusMintFailed OrderStatus = "MINT_FAILED"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusMintFailed
}

type FailureKind string

// A retryable failure never reached a definitive on-chain outcome; a permanent
// one was rejected by the contract. Both are terminal for the order.
const (
	FailureKindRetryable FailureKind = "retryable"
	FailureKindPermanent FailureKind = "permanent"
)

type MintResult struct {
	TransactionHash string          `bson:"transaction_hash" json:"transactionHash"`
	BlockNumber     uint64          `bson:"block_number" json:"blockNumber"`
	AmountMinted    decimal.Decimal `bson:"amount_minted" json:"amountMinted"`
	NewBalance      decimal.Decimal `bson:"new_balance" json:"newBalance"`
}

type Customer struct {
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type Order struct {
	OrderID          string          `bson:"order_id" json:"orderId"`
	WalletAddress    string          `bson:"wallet_address" json:"walletAddress"`
	RequestedAmount  decimal.Decimal `bson:"requested_amount" json:"requestedAmount"`
	Status           OrderStatus     `bson:"status" json:"status"`
	PaymentReference string          `bson:"payment_reference" json:"paymentReference"`
	Customer         Customer        `bson:"customer" json:"customer"`
	CheckoutURL      string          `bson:"checkout_url,omitempty" json:"checkoutUrl,omitempty"`
	SubmittedTxHash  string          `bson:"submitted_tx_hash,omitempty" json:"submittedTxHash,omitempty"`
	MintResult       *MintResult     `bson:"mint_result,omitempty" json:"mintResult,omitempty"`
	FailureReason    string          `bson:"failure_reason,omitempty" json:"failureReason,omitempty"`
	FailureKind      FailureKind     `bson:"failure_kind,omitempty" json:"failureKind,omitempty"`
	CreatedAt        time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `bson:"updated_at" json:"updatedAt"`
	CompletedAt      *time.Time      `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	FailedAt         *time.Time      `bson:"failed_at,omitempty" json:"failedAt,omitempty"`
	LastReconciledAt *time.Time      `bson:"last_reconciled_at,omitempty" json:"lastReconciledAt,omitempty"`
}
