package eth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	ErrChainCallReverted = errors.New("chain call reverted")
	ErrChainUnavailable  = errors.New("chain unavailable")
	ErrTxNotFound        = errors.New("transaction not found")
)

// ChainCallRevertedError is a definitive rejection by the contract, e.g. a missing mint authority.
type ChainCallRevertedError struct {
	Reason string
	TxHash string
}

func (e *ChainCallRevertedError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("chain call reverted: %s (tx %s)", e.Reason, e.TxHash)
	}
	return "chain call reverted: " + e.Reason
}

func (e *ChainCallRevertedError) Is(target error) bool {
	return target == ErrChainCallReverted
}

// ChainUnavailableError covers RPC, network and timeout failures. The call may still have landed on chain.
type ChainUnavailableError struct {
	Err    error
	TxHash string
}

func (e *ChainUnavailableError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("chain unavailable: %v (tx %s)", e.Err, e.TxHash)
	}
	return fmt.Sprintf("chain unavailable: %v", e.Err)
}

func (e *ChainUnavailableError) Unwrap() error {
	return e.Err
}

func (e *ChainUnavailableError) Is(target error) bool {
	return target == ErrChainUnavailable
}

// TxHashOf returns the transaction hash carried by a gateway error, if any.
func TxHashOf(err error) string {
	var reverted *ChainCallRevertedError
	if errors.As(err, &reverted) {
		return reverted.TxHash
	}
	var unavailable *ChainUnavailableError
	if errors.As(err, &unavailable) {
		return unavailable.TxHash
	}
	return ""
}

const revertMarker = "execution reverted"

func revertReason(err error) (string, bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decodeErr := hexutil.Decode(data); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return reason, true
				}
			}
		}
	}

	msg := err.Error()
	idx := strings.Index(msg, revertMarker)
	if idx < 0 {
		return "", false
	}
	reason := strings.TrimSpace(strings.TrimPrefix(msg[idx+len(revertMarker):], ":"))
	if reason == "" {
		reason = revertMarker
	}
	return reason, true
}

// classifyCallError maps an RPC error onto the gateway error types.
func classifyCallError(err error, txHash string) error {
	if err == nil {
		return nil
	}
	if reason, ok := revertReason(err); ok {
		return &ChainCallRevertedError{Reason: reason, TxHash: txHash}
	}
	return &ChainUnavailableError{Err: err, TxHash: txHash}
}
