package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anish-ck/oruva-settlement/models"
)

func TestCreateEthereumSigner(t *testing.T) {
	const expected = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

	t.Run("Private Key", func(t *testing.T) {
		Config = models.Config{}
		Config.Ethereum.PrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

		signer, err := CreateEthereumSigner()

		assert.NoError(t, err)
		assert.Equal(t, expected, signer.EthAddress().Hex())
	})

	t.Run("Mnemonic", func(t *testing.T) {
		Config = models.Config{}
		Config.Ethereum.Mnemonic = "test test test test test test test test test test test junk"

		signer, err := CreateEthereumSigner()

		assert.NoError(t, err)
		assert.Equal(t, expected, signer.EthAddress().Hex())
	})

	t.Run("Invalid Private Key", func(t *testing.T) {
		Config = models.Config{}
		Config.Ethereum.PrivateKey = "not-a-key"

		signer, err := CreateEthereumSigner()

		assert.Error(t, err)
		assert.Nil(t, signer)
	})

	t.Run("Nothing Configured", func(t *testing.T) {
		Config = models.Config{}

		signer, err := CreateEthereumSigner()

		assert.Error(t, err)
		assert.Nil(t, signer)
	})
}
