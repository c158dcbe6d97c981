package client

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/anish-ck/oruva-settlement/models"
)

const tokenABI = `[
	{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`

const vaultABI = `[
	{"type":"function","name":"getVaultInfo","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[
		{"name":"collateral","type":"uint256"},
		{"name":"debt","type":"uint256"},
		{"name":"collateralValueInFiat","type":"uint256"},
		{"name":"ratio","type":"uint256"},
		{"name":"isHealthy","type":"bool"}
	]}
]`

type TokenContract interface {
	Address() common.Address
	Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error)
	BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error)
	Decimals(opts *bind.CallOpts) (uint8, error)
}

type VaultContract interface {
	Address() common.Address
	GetVaultInfo(opts *bind.CallOpts, user common.Address) (models.VaultInfo, error)
}

type tokenContract struct {
	address  common.Address
	contract *bind.BoundContract
}

func (x *tokenContract) Address() common.Address {
	return x.address
}

func (x *tokenContract) Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return x.contract.Transact(opts, "mint", to, amount)
}

func (x *tokenContract) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []interface{}
	err := x.contract.Call(opts, &out, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (x *tokenContract) Decimals(opts *bind.CallOpts) (uint8, error) {
	var out []interface{}
	err := x.contract.Call(opts, &out, "decimals")
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}

type vaultContract struct {
	address  common.Address
	contract *bind.BoundContract
}

func (x *vaultContract) Address() common.Address {
	return x.address
}

func (x *vaultContract) GetVaultInfo(opts *bind.CallOpts, user common.Address) (models.VaultInfo, error) {
	var out []interface{}
	err := x.contract.Call(opts, &out, "getVaultInfo", user)
	if err != nil {
		return models.VaultInfo{}, err
	}
	if len(out) != 5 {
		return models.VaultInfo{}, fmt.Errorf("getVaultInfo returned %d values", len(out))
	}

	return models.VaultInfo{
		Collateral:          *abi.ConvertType(out[0], new(*big.Int)).(**big.Int),
		Debt:                *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		CollateralValueFiat: *abi.ConvertType(out[2], new(*big.Int)).(**big.Int),
		RatioBps:            *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
		IsHealthy:           *abi.ConvertType(out[4], new(bool)).(*bool),
	}, nil
}

func bindContract(definition string, address common.Address, backend bind.ContractBackend) (*bind.BoundContract, error) {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		return nil, err
	}
	return bind.NewBoundContract(address, parsed, backend, backend, backend), nil
}

func NewTokenContract(address common.Address, backend bind.ContractBackend) (TokenContract, error) {
	contract, err := bindContract(tokenABI, address, backend)
	if err != nil {
		return nil, fmt.Errorf("error parsing token abi: %w", err)
	}
	return &tokenContract{address: address, contract: contract}, nil
}

func NewVaultContract(address common.Address, backend bind.ContractBackend) (VaultContract, error) {
	contract, err := bindContract(vaultABI, address, backend)
	if err != nil {
		return nil, fmt.Errorf("error parsing vault abi: %w", err)
	}
	return &vaultContract{address: address, contract: contract}, nil
}
