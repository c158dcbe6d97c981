package common

import (
	"context"
	"encoding/asn1"
	"errors"
	"math/big"
	"os"
	"testing"

	"cloud.google.com/go/kms/apiv1/kmspb"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	gax "github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockGCPKeyManagementClient is a mock implementation of GCPKeyManagementClient
type MockGCPKeyManagementClient struct {
	mock.Mock
}

func (m *MockGCPKeyManagementClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockGCPKeyManagementClient) GetPublicKey(ctx context.Context, req *kmspb.GetPublicKeyRequest, opts ...gax.CallOption) (*kmspb.PublicKey, error) {
	args := m.Called(ctx, req, opts)
	return args.Get(0).(*kmspb.PublicKey), args.Error(1)
}

func (m *MockGCPKeyManagementClient) AsymmetricSign(ctx context.Context, req *kmspb.AsymmetricSignRequest, opts ...gax.CallOption) (*kmspb.AsymmetricSignResponse, error) {
	args := m.Called(ctx, req, opts)
	return args.Get(0).(*kmspb.AsymmetricSignResponse), args.Error(1)
}

func (m *MockGCPKeyManagementClient) GetCryptoKeyVersion(ctx context.Context, req *kmspb.GetCryptoKeyVersionRequest, opts ...gax.CallOption) (*kmspb.CryptoKeyVersion, error) {
	args := m.Called(ctx, req, opts)
	return args.Get(0).(*kmspb.CryptoKeyVersion), args.Error(1)
}

func mockEthASN1Signature() []byte {
	r, _ := new(big.Int).SetString("81318ab2232fbc4fd547d968ff554e9bd791543a1785fe075338693d946cb6ec", 16)
	s, _ := new(big.Int).SetString("3c7829539dc8fd5e3b6e4dc9b3d6c5c9628bcb72d2639df18e6078af0273cf98", 16)
	return asn1Bytes(r, s)
}

func asn1Bytes(r, s *big.Int) []byte {
	signature, _ := asn1.Marshal(struct {
		R, S *big.Int
	}{R: r, S: s})
	return signature
}

// kmsStyleSignature signs hash locally and returns it DER encoded the way KMS does, optionally with a high S.
func kmsStyleSignature(t *testing.T, hash []byte, highS bool) ([]byte, common.Address) {
	key, err := crypto.GenerateKey()
	assert.NoError(t, err)

	sig, err := crypto.Sign(hash, key)
	assert.NoError(t, err)

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if highS {
		s = new(big.Int).Sub(crypto.S256().Params().N, s)
	}
	return asn1Bytes(r, s), crypto.PubkeyToAddress(key.PublicKey)
}

func TestNewGcpKmsSigner(t *testing.T) {
	t.Run("Valid Key", func(t *testing.T) {
		mockClient := new(MockGCPKeyManagementClient)
		NewGCPKeyManagementClient = func(ctx context.Context) (GCPKeyManagementClient, error) {
			return mockClient, nil
		}

		keyName := "test-key"
		expectedKeyVersion := &kmspb.CryptoKeyVersion{
			Algorithm: kmspb.CryptoKeyVersion_EC_SIGN_SECP256K1_SHA256,
		}
		mockClient.On("GetCryptoKeyVersion", mock.Anything, &kmspb.GetCryptoKeyVersionRequest{Name: keyName}, mock.Anything).Return(expectedKeyVersion, nil)

		expectedPublicKey := &kmspb.PublicKey{
			Pem: "-----BEGIN PUBLIC KEY-----\nMFYwEAYHKoZIzj0CAQYFK4EEAAoDQgAEWf5LaoaCQYy4bfVxwKNrBvGzfmdgmFAJ\nWZwx14PGzKxssHukWefUlJ0SsXj4RogC6/fZMgB+RrAvx6K/kHYf1g==\n-----END PUBLIC KEY-----",
		}
		mockClient.On("GetPublicKey", mock.Anything, &kmspb.GetPublicKeyRequest{Name: keyName}, mock.Anything).Return(expectedPublicKey, nil)

		signer, err := NewGcpKmsSigner(keyName)
		assert.NoError(t, err)
		assert.NotNil(t, signer)

		mockClient.AssertExpectations(t)
	})

	t.Run("Wrong Algorithm", func(t *testing.T) {
		mockClient := new(MockGCPKeyManagementClient)
		NewGCPKeyManagementClient = func(ctx context.Context) (GCPKeyManagementClient, error) {
			return mockClient, nil
		}

		keyName := "test-key"
		mockClient.On("GetCryptoKeyVersion", mock.Anything, mock.Anything, mock.Anything).Return(&kmspb.CryptoKeyVersion{
			Algorithm: kmspb.CryptoKeyVersion_EC_SIGN_P256_SHA256,
		}, nil)

		signer, err := NewGcpKmsSigner(keyName)
		assert.Error(t, err)
		assert.Nil(t, signer)
	})

	t.Run("Client Error", func(t *testing.T) {
		NewGCPKeyManagementClient = func(ctx context.Context) (GCPKeyManagementClient, error) {
			return nil, errors.New("no credentials")
		}

		signer, err := NewGcpKmsSigner("test-key")
		assert.Error(t, err)
		assert.Nil(t, signer)
	})
}

func TestGcpKmsSigner_EthSign(t *testing.T) {
	t.Run("Known Signature", func(t *testing.T) {
		mockClient := new(MockGCPKeyManagementClient)
		signer := &GcpKmsSigner{
			client:     mockClient,
			keyName:    "test-key",
			ethAddress: common.HexToAddress("0x14BFf3BDb55E171Dc5af4B0F6F779752bC146C6E"),
		}

		mockClient.On("AsymmetricSign", mock.Anything, mock.Anything, mock.Anything).Return(&kmspb.AsymmetricSignResponse{
			Signature: mockEthASN1Signature(),
		}, nil)

		sig, err := signer.EthSign([]byte("example transaction data"))
		assert.NoError(t, err)
		assert.Len(t, sig, 65)

		mockClient.AssertExpectations(t)
	})

	for _, highS := range []bool{false, true} {
		name := "Low S"
		if highS {
			name = "High S Normalized"
		}
		t.Run(name, func(t *testing.T) {
			data := []byte("mint 100 tokens")
			hash := crypto.Keccak256(data)
			der, address := kmsStyleSignature(t, hash, highS)

			mockClient := new(MockGCPKeyManagementClient)
			signer := &GcpKmsSigner{client: mockClient, keyName: "test-key", ethAddress: address}
			mockClient.On("AsymmetricSign", mock.Anything, mock.Anything, mock.Anything).Return(&kmspb.AsymmetricSignResponse{Signature: der}, nil)

			sig, err := signer.EthSign(data)
			assert.NoError(t, err)
			assert.True(t, sig[64] == 27 || sig[64] == 28)

			halfN := new(big.Int).Rsh(crypto.S256().Params().N, 1)
			assert.True(t, new(big.Int).SetBytes(sig[32:64]).Cmp(halfN) <= 0)

			sig[64] -= 27
			pubKey, err := crypto.SigToPub(hash, sig)
			assert.NoError(t, err)
			assert.Equal(t, address, crypto.PubkeyToAddress(*pubKey))
		})
	}

	t.Run("Address Mismatch", func(t *testing.T) {
		data := []byte("mint 100 tokens")
		der, _ := kmsStyleSignature(t, crypto.Keccak256(data), false)

		mockClient := new(MockGCPKeyManagementClient)
		signer := &GcpKmsSigner{client: mockClient, keyName: "test-key", ethAddress: common.HexToAddress(ZeroAddress)}
		mockClient.On("AsymmetricSign", mock.Anything, mock.Anything, mock.Anything).Return(&kmspb.AsymmetricSignResponse{Signature: der}, nil)

		sig, err := signer.EthSign(data)
		assert.Error(t, err)
		assert.Nil(t, sig)
	})

	t.Run("KMS Error", func(t *testing.T) {
		mockClient := new(MockGCPKeyManagementClient)
		signer := &GcpKmsSigner{client: mockClient, keyName: "test-key"}
		mockClient.On("AsymmetricSign", mock.Anything, mock.Anything, mock.Anything).Return((*kmspb.AsymmetricSignResponse)(nil), errors.New("unavailable"))

		sig, err := signer.EthSign([]byte("data"))
		assert.Error(t, err)
		assert.Nil(t, sig)
	})
}

func TestGcpKmsSigner_Destroy(t *testing.T) {
	mockClient := new(MockGCPKeyManagementClient)
	signer := &GcpKmsSigner{
		client:  mockClient,
		keyName: "test-key",
	}

	mockClient.On("Close").Return(nil)

	signer.Destroy()
	mockClient.AssertExpectations(t)
}

func TestGcpKmsSigner_WithGCPKMS(t *testing.T) {
	keyName := os.Getenv("GCP_KMS_KEY_NAME")
	if keyName == "" {
		t.Skip("GCP KMS key name not set")
	}
	credentials := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentials == "" {
		t.Skip("GCP credentials not set")
	}

	signer, err := NewGcpKmsSigner(keyName)
	assert.NoError(t, err)

	sig, err := signer.EthSign([]byte("example transaction data"))
	assert.NoError(t, err)
	assert.NotNil(t, sig)
}
