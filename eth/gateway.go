package eth

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/app"
	"github.com/anish-ck/oruva-settlement/common"
	"github.com/anish-ck/oruva-settlement/eth/client"
	"github.com/anish-ck/oruva-settlement/models"
)

// MintReceipt is what a confirmed mint reports back.
type MintReceipt struct {
	TransactionHash string
	BlockNumber     uint64
	NewBalance      decimal.Decimal
}

// SignedHook runs after the mint transaction is signed and before it is broadcast.
// Returning an error aborts the mint with nothing sent.
type SignedHook func(txHash string) error

type ChainGateway interface {
	Mint(ctx context.Context, wallet string, amount decimal.Decimal, onSigned SignedHook) (MintReceipt, error)
	ConfirmMint(ctx context.Context, txHash string, wallet string) (MintReceipt, error)
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)
	GetVaultInfo(ctx context.Context, address string) (models.VaultInfo, error)
	MinterAddress() string
}

type Gateway struct {
	client   client.EthereumClient
	token    client.TokenContract
	vault    client.VaultContract
	signer   common.Signer
	chainID  *big.Int
	decimals int32

	rpcTimeout          time.Duration
	confirmTimeout      time.Duration
	confirmPoll         time.Duration
	confirmPollInterval time.Duration

	maxAttempts    int
	backoffInitial time.Duration
	backoffMax     time.Duration

	// one signed-but-unsent mint per process so two settlements never race for the same nonce
	sendMu sync.Mutex
}

var _ ChainGateway = &Gateway{}

func (x *Gateway) MinterAddress() string {
	return strings.ToLower(x.signer.EthAddress().Hex())
}

func (x *Gateway) signerFn() bind.SignerFn {
	txSigner := types.LatestSignerForChainID(x.chainID)
	return func(from ethCommon.Address, tx *types.Transaction) (*types.Transaction, error) {
		if from != x.signer.EthAddress() {
			return nil, bind.ErrNotAuthorized
		}
		sig, err := x.signer.EthSign(txSigner.Hash(tx).Bytes())
		if err != nil {
			return nil, err
		}
		rsv := make([]byte, len(sig))
		copy(rsv, sig)
		rsv[64] -= 27
		return tx.WithSignature(txSigner, rsv)
	}
}

func (x *Gateway) parseAddress(address string) (ethCommon.Address, error) {
	if !common.IsValidAddress(address) {
		return ethCommon.Address{}, fmt.Errorf("invalid address %q", address)
	}
	return ethCommon.HexToAddress(address), nil
}

func (x *Gateway) Mint(ctx context.Context, wallet string, amount decimal.Decimal, onSigned SignedHook) (MintReceipt, error) {
	to, err := x.parseAddress(wallet)
	if err != nil {
		return MintReceipt{}, err
	}
	units, err := common.ToBaseUnits(amount, x.decimals)
	if err != nil {
		return MintReceipt{}, err
	}

	logger := log.WithField("wallet", wallet).WithField("amount", amount.String())

	tx, err := x.signAndBroadcast(ctx, to, units, onSigned, logger)
	if err != nil {
		return MintReceipt{}, err
	}

	// the hash is recorded, so the outcome is observed even if the caller is gone
	ctx = context.WithoutCancel(ctx)
	receipt, err := x.waitMined(ctx, tx)
	if err != nil {
		return MintReceipt{}, err
	}

	return x.mintReceipt(ctx, receipt, to, logger)
}

func (x *Gateway) signAndBroadcast(ctx context.Context, to ethCommon.Address, units *big.Int, onSigned SignedHook, logger *log.Entry) (*types.Transaction, error) {
	x.sendMu.Lock()
	defer x.sendMu.Unlock()

	signCtx, cancel := context.WithTimeout(ctx, x.rpcTimeout)
	defer cancel()

	opts := &bind.TransactOpts{
		From:    x.signer.EthAddress(),
		Signer:  x.signerFn(),
		Context: signCtx,
		NoSend:  true,
	}

	logger.Debug("[GATEWAY] Signing mint transaction")
	tx, err := x.token.Mint(opts, to, units)
	if err != nil {
		logger.WithError(err).Warn("[GATEWAY] Error preparing mint transaction")
		return nil, classifyCallError(err, "")
	}

	txHash := tx.Hash().Hex()
	logger = logger.WithField("tx_hash", txHash)

	if onSigned != nil {
		if err := onSigned(txHash); err != nil {
			return nil, &ChainUnavailableError{Err: fmt.Errorf("recording submission: %w", err)}
		}
	}

	delay := x.backoffInitial
	for attempt := 1; ; attempt++ {
		err = x.client.SendTransaction(tx)
		if err == nil || isAlreadySubmitted(err) {
			logger.WithField("attempt", attempt).Info("[GATEWAY] Mint transaction broadcast")
			return tx, nil
		}
		if isNonceUsed(err) {
			// either an earlier broadcast of this tx was mined or another tx took the nonce
			logger.WithError(err).WithField("attempt", attempt).
				Warn("[GATEWAY] Nonce already used, waiting for the recorded transaction")
			return tx, nil
		}
		if reason, ok := revertReason(err); ok {
			return nil, &ChainCallRevertedError{Reason: reason, TxHash: txHash}
		}

		logger.WithError(err).WithField("attempt", attempt).Warn("[GATEWAY] Error broadcasting mint transaction")
		if attempt >= x.maxAttempts {
			return nil, &ChainUnavailableError{Err: err, TxHash: txHash}
		}

		time.Sleep(delay)
		delay *= 2
		if delay > x.backoffMax {
			delay = x.backoffMax
		}
	}
}

// isAlreadySubmitted reports node errors meaning this exact transaction already reached the network.
func isAlreadySubmitted(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already known") ||
		strings.Contains(msg, "known transaction")
}

func isNonceUsed(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "nonce too low")
}

// waitMined waits confirmTimeout for the first confirmation, then keeps polling confirmPoll longer
// since a slow block is not a failed mint.
func (x *Gateway) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	txHash := tx.Hash()

	waitCtx, cancel := context.WithTimeout(ctx, x.confirmTimeout)
	receipt, err := bind.WaitMined(waitCtx, x.client, tx)
	cancel()
	if err == nil {
		return receipt, nil
	}

	log.WithField("tx_hash", txHash.Hex()).Warn("[GATEWAY] Mint not confirmed in time, polling for receipt")

	receipt, err = x.pollReceipt(ctx, txHash)
	if err != nil {
		return nil, &ChainUnavailableError{Err: err, TxHash: txHash.Hex()}
	}
	return receipt, nil
}

func (x *Gateway) pollReceipt(ctx context.Context, txHash ethCommon.Hash) (*types.Receipt, error) {
	deadline := time.Now().Add(x.confirmPoll)
	lastErr := ErrTxNotFound
	for {
		receipt, err := x.client.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			lastErr = err
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("no receipt after %v: %w", x.confirmTimeout+x.confirmPoll, lastErr)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(x.confirmPollInterval):
		}
	}
}

func (x *Gateway) mintReceipt(ctx context.Context, receipt *types.Receipt, to ethCommon.Address, logger *log.Entry) (MintReceipt, error) {
	txHash := receipt.TxHash.Hex()
	if receipt.Status != types.ReceiptStatusSuccessful {
		return MintReceipt{}, &ChainCallRevertedError{Reason: "transaction reverted on chain", TxHash: txHash}
	}

	result := MintReceipt{
		TransactionHash: txHash,
		NewBalance:      decimal.Zero,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}

	balance, err := x.balanceOf(ctx, to)
	if err != nil {
		// the mint landed; a failed balance read must not turn it into a failure
		logger.WithError(err).Warn("[GATEWAY] Error reading balance after mint")
	} else {
		result.NewBalance = balance
	}

	logger.WithField("block_number", result.BlockNumber).Info("[GATEWAY] Mint confirmed")
	return result, nil
}

// ConfirmMint looks up the receipt of a previously submitted mint.
func (x *Gateway) ConfirmMint(ctx context.Context, txHash string, wallet string) (MintReceipt, error) {
	to, err := x.parseAddress(wallet)
	if err != nil {
		return MintReceipt{}, err
	}

	receipt, err := x.pollReceipt(ctx, ethCommon.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ErrTxNotFound) {
			return MintReceipt{}, ErrTxNotFound
		}
		return MintReceipt{}, &ChainUnavailableError{Err: err, TxHash: txHash}
	}

	return x.mintReceipt(ctx, receipt, to, log.WithField("wallet", wallet).WithField("tx_hash", txHash))
}

func (x *Gateway) balanceOf(ctx context.Context, address ethCommon.Address) (decimal.Decimal, error) {
	callCtx, cancel := context.WithTimeout(ctx, x.rpcTimeout)
	defer cancel()

	balance, err := x.token.BalanceOf(&bind.CallOpts{Context: callCtx}, address)
	if err != nil {
		return decimal.Zero, classifyCallError(err, "")
	}
	return common.FromBaseUnits(balance, x.decimals), nil
}

func (x *Gateway) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	account, err := x.parseAddress(address)
	if err != nil {
		return decimal.Zero, err
	}
	return x.balanceOf(ctx, account)
}

func (x *Gateway) GetVaultInfo(ctx context.Context, address string) (models.VaultInfo, error) {
	if x.vault == nil {
		return models.VaultInfo{}, &ChainUnavailableError{Err: errors.New("vault contract not configured")}
	}
	account, err := x.parseAddress(address)
	if err != nil {
		return models.VaultInfo{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, x.rpcTimeout)
	defer cancel()

	info, err := x.vault.GetVaultInfo(&bind.CallOpts{Context: callCtx}, account)
	if err != nil {
		return models.VaultInfo{}, classifyCallError(err, "")
	}
	return info, nil
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// NewGateway dials the configured chain and binds the token and vault contracts.
func NewGateway(signer common.Signer) *Gateway {
	log.Debug("[GATEWAY] Initializing chain gateway")

	ethClient, err := client.NewClient()
	if err != nil {
		log.Fatal("[GATEWAY] Error initializing ethereum client: ", err)
	}
	ethClient.ValidateNetwork()

	chainID, ok := new(big.Int).SetString(app.Config.Ethereum.ChainID, 10)
	if !ok {
		log.Fatal("[GATEWAY] Invalid chain id: ", app.Config.Ethereum.ChainID)
	}

	token, err := client.NewTokenContract(ethCommon.HexToAddress(app.Config.Ethereum.TokenAddress), ethClient.GetClient())
	if err != nil {
		log.Fatal("[GATEWAY] Error binding token contract: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), millis(app.Config.Ethereum.RPCTimeoutMillis))
	defer cancel()
	if onChainDecimals, err := token.Decimals(&bind.CallOpts{Context: ctx}); err != nil {
		log.Warn("[GATEWAY] Could not read token decimals: ", err)
	} else if int32(onChainDecimals) != app.Config.Ethereum.TokenDecimals {
		log.Fatalf("[GATEWAY] Token decimals mismatch: configured %d, on chain %d", app.Config.Ethereum.TokenDecimals, onChainDecimals)
	}

	var vault client.VaultContract
	if app.Config.Ethereum.VaultAddress != "" {
		vault, err = client.NewVaultContract(ethCommon.HexToAddress(app.Config.Ethereum.VaultAddress), ethClient.GetClient())
		if err != nil {
			log.Fatal("[GATEWAY] Error binding vault contract: ", err)
		}
	} else {
		log.Warn("[GATEWAY] Vault address not configured, vault reads are disabled")
	}

	x := &Gateway{
		client:              ethClient,
		token:               token,
		vault:               vault,
		signer:              signer,
		chainID:             chainID,
		decimals:            app.Config.Ethereum.TokenDecimals,
		rpcTimeout:          millis(app.Config.Ethereum.RPCTimeoutMillis),
		confirmTimeout:      millis(app.Config.Ethereum.ConfirmTimeoutMillis),
		confirmPoll:         millis(app.Config.Ethereum.ConfirmPollMillis),
		confirmPollInterval: millis(app.Config.Ethereum.ConfirmPollIntervalMillis),
		maxAttempts:         app.Config.Settlement.MaxAttempts,
		backoffInitial:      millis(app.Config.Settlement.BackoffInitialMs),
		backoffMax:          millis(app.Config.Settlement.BackoffMaxMs),
	}

	log.WithField("minter", x.MinterAddress()).Info("[GATEWAY] Initialized chain gateway")
	return x
}
