package common

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/cosmos/go-bip39"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
)

const (
	DefaultBIP39Passphrase = ""
	DefaultETHHDPath       = "m/44'/60'/0'/0/0"
)

type MnemonicSigner struct {
	*PrivateKeySigner
}

var _ Signer = &MnemonicSigner{}

func NewMnemonicSigner(mnemonic string) (*MnemonicSigner, error) {
	ethPrivKey, err := EthereumPrivateKeyFromMnemonic(mnemonic, DefaultETHHDPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create ethereum private key: %w", err)
	}

	return &MnemonicSigner{
		PrivateKeySigner: newKeySigner(ethPrivKey),
	}, nil
}

// EthereumPrivateKeyFromMnemonic derives the secp256k1 key at path from a BIP-39 mnemonic.
func EthereumPrivateKeyFromMnemonic(mnemonic string, path string) (*ecdsa.PrivateKey, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, DefaultBIP39Passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to create seed: %w", err)
	}

	wallet, err := hdwallet.NewFromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	derivationPath, err := hdwallet.ParseDerivationPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse derivation path: %w", err)
	}

	account, err := wallet.Derive(derivationPath, false)
	if err != nil {
		return nil, fmt.Errorf("failed to derive account: %w", err)
	}

	return wallet.PrivateKey(account)
}
