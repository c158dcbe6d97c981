package common

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer produces 65 byte [R || S || V] ethereum signatures with V in {27, 28}.
type Signer interface {
	EthSign(data []byte) ([]byte, error)
	EthAddress() common.Address
	Destroy()
}

type PrivateKeySigner struct {
	ethAddress common.Address
	ethPrivKey *ecdsa.PrivateKey
}

var _ Signer = &PrivateKeySigner{}

func NewPrivateKeySigner(privateKeyHex string) (*PrivateKeySigner, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return newKeySigner(privateKey), nil
}

func newKeySigner(privateKey *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{
		ethPrivKey: privateKey,
		ethAddress: crypto.PubkeyToAddress(privateKey.PublicKey),
	}
}

func (s *PrivateKeySigner) Destroy() {
	// nothing to do
}

func (s *PrivateKeySigner) EthSign(data []byte) ([]byte, error) {
	return signWithKey(data, s.ethPrivKey)
}

func (s *PrivateKeySigner) EthAddress() common.Address {
	return s.ethAddress
}

func signWithKey(data []byte, key *ecdsa.PrivateKey) ([]byte, error) {
	digest := data
	if len(digest) != 32 {
		digest = crypto.Keccak256(data)
	}
	hash := common.BytesToHash(digest)
	signature, err := crypto.Sign(hash[:], key)
	if err != nil {
		return nil, err
	}

	if signature[64] == 0 || signature[64] == 1 {
		signature[64] += 27
	}

	return signature, nil
}
