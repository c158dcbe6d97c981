package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/anish-ck/oruva-settlement/common"
)

// CreateEthereumSigner builds the minter key from config, preferring a raw key, then a mnemonic, then GCP KMS.
func CreateEthereumSigner() (common.Signer, error) {
	config := Config.Ethereum

	var signer common.Signer
	var err error
	switch {
	case config.PrivateKey != "":
		signer, err = common.NewPrivateKeySigner(config.PrivateKey)
	case config.Mnemonic != "":
		signer, err = common.NewMnemonicSigner(config.Mnemonic)
	case config.GcpKmsKeyName != "":
		signer, err = common.NewGcpKmsSigner(config.GcpKmsKeyName)
	default:
		return nil, fmt.Errorf("PrivateKey, Mnemonic and GcpKmsKeyName are all empty")
	}
	if err != nil {
		return nil, fmt.Errorf("error initializing ethereum signer: %w", err)
	}

	log.Debugf("[SIGNER] Minter address: %s", signer.EthAddress().Hex())
	return signer, nil
}
