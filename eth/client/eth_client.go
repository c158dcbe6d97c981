package client

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/app"
)

type EthereumClient interface {
	ValidateNetwork()
	GetBlockNumber() (uint64, error)
	GetChainID() (*big.Int, error)
	GetClient() *ethclient.Client
	SendTransaction(tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

type ethereumClient struct {
	client *ethclient.Client
}

func rpcTimeout() time.Duration {
	return time.Duration(app.Config.Ethereum.RPCTimeoutMillis) * time.Millisecond
}

func (c *ethereumClient) GetClient() *ethclient.Client {
	return c.client
}

func (c *ethereumClient) GetBlockNumber() (uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout())
	defer cancel()

	return c.client.BlockNumber(ctx)
}

func (c *ethereumClient) GetChainID() (*big.Int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout())
	defer cancel()

	return c.client.ChainID(ctx)
}

func (c *ethereumClient) ValidateNetwork() {
	log.Debugln("[ETH]", "Validating network")

	chainID, err := c.GetChainID()
	if err != nil {
		log.Fatalln("[ETH]", "Failed to get chain ID:", err)
	}
	blockNumber, err := c.GetBlockNumber()
	if err != nil {
		log.Fatalln("[ETH]", "Failed to get block number:", err)
	}

	log.Debugln("[ETH]", "chainID", chainID.String())

	if chainID.String() != app.Config.Ethereum.ChainID {
		log.Fatalln("[ETH]", "Chain ID Mismatch", "expected", app.Config.Ethereum.ChainID, "got", chainID.String())
	}

	log.Debugln("[ETH]", "blockNumber", blockNumber)
	log.Infoln("[ETH]", "Validated network")
}

func (c *ethereumClient) SendTransaction(tx *types.Transaction) error {
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout())
	defer cancel()

	return c.client.SendTransaction(ctx, tx)
}

// TransactionReceipt and CodeAt let the client serve as a bind.DeployBackend.
func (c *ethereumClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout())
	defer cancel()

	return c.client.TransactionReceipt(ctx, txHash)
}

func (c *ethereumClient) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout())
	defer cancel()

	return c.client.CodeAt(ctx, account, blockNumber)
}

func NewClient() (EthereumClient, error) {
	log.Debugln("[ETH]", "uri", app.Config.Ethereum.RPCURL)
	client, err := ethclient.Dial(app.Config.Ethereum.RPCURL)
	if err != nil {
		return nil, err
	}
	return &ethereumClient{
		client: client,
	}, nil
}
