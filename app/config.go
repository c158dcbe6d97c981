package app

import (
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/anish-ck/oruva-settlement/models"
)

const (
	OrderStoreMongo    = "mongodb"
	OrderStorePostgres = "postgres"
)

var (
	Config models.Config
)

func InitConfig(configFile string, envFile string) {
	log.Debug("[CONFIG] Initializing config")
	readConfigFromConfigFile(configFile)
	readConfigFromENV(envFile)
	readKeysFromGSM()
	applyDefaults()
	validateConfig()
	log.Info("[CONFIG] Config initialized")
}

func readConfigFromConfigFile(configFile string) bool {
	if configFile == "" {
		log.Debug("[CONFIG] No config file provided")
		return false
	}

	yamlFile, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("[CONFIG] Error reading config file %q: %s\n", configFile, err.Error())
	}

	err = yaml.Unmarshal(yamlFile, &Config)
	if err != nil {
		log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s\n", configFile, err.Error())
	}

	log.Debug("[CONFIG] Config loaded from file: ", configFile)
	return true
}

func applyDefaults() {
	if Config.Logger.Level == "" {
		Config.Logger.Level = "info"
	}
	if Config.API.Addr == "" {
		Config.API.Addr = ":3000"
	}
	if Config.API.ShutdownTimeoutSecs == 0 {
		Config.API.ShutdownTimeoutSecs = 5
	}
	if Config.MongoDB.TimeoutMillis == 0 {
		Config.MongoDB.TimeoutMillis = 5000
	}
	if Config.OrderStore.Driver == "" {
		Config.OrderStore.Driver = OrderStoreMongo
	}

	if Config.Ethereum.RPCTimeoutMillis == 0 {
		Config.Ethereum.RPCTimeoutMillis = 30000
	}
	if Config.Ethereum.ConfirmTimeoutMillis == 0 {
		Config.Ethereum.ConfirmTimeoutMillis = 30000
	}
	if Config.Ethereum.ConfirmPollMillis == 0 {
		Config.Ethereum.ConfirmPollMillis = 15000
	}
	if Config.Ethereum.ConfirmPollIntervalMillis == 0 {
		Config.Ethereum.ConfirmPollIntervalMillis = 2000
	}
	if Config.Ethereum.TokenDecimals == 0 {
		Config.Ethereum.TokenDecimals = 18
	}
	if Config.Ethereum.CollateralDecimals == 0 {
		Config.Ethereum.CollateralDecimals = 18
	}

	if Config.PaymentGateway.APIVersion == "" {
		Config.PaymentGateway.APIVersion = "2023-08-01"
	}
	if Config.PaymentGateway.Currency == "" {
		Config.PaymentGateway.Currency = "INR"
	}
	if Config.PaymentGateway.TimeoutMillis == 0 {
		Config.PaymentGateway.TimeoutMillis = 10000
	}

	if Config.Vault.MinimumRatioBps == 0 {
		Config.Vault.MinimumRatioBps = 15000
	}
	if Config.Vault.PriceCacheSecs == 0 {
		Config.Vault.PriceCacheSecs = 60
	}

	if Config.Settlement.MaxAttempts == 0 {
		Config.Settlement.MaxAttempts = 3
	}
	if Config.Settlement.BackoffInitialMs == 0 {
		Config.Settlement.BackoffInitialMs = 1000
	}
	if Config.Settlement.BackoffMaxMs == 0 {
		Config.Settlement.BackoffMaxMs = 8000
	}
	if Config.Settlement.JobMaxAttempts == 0 {
		Config.Settlement.JobMaxAttempts = 5
	}
	if Config.Settlement.JobBatchSize == 0 {
		Config.Settlement.JobBatchSize = 50
	}

	if Config.SettlementWorker.IntervalMillis == 0 {
		Config.SettlementWorker.IntervalMillis = 2000
	}
	if Config.Reconciler.IntervalMillis == 0 {
		Config.Reconciler.IntervalMillis = 60000
	}
	if Config.Reconciler.StaleAfterSecs == 0 {
		Config.Reconciler.StaleAfterSecs = 300
	}
	if Config.HealthCheck.IntervalMillis == 0 {
		Config.HealthCheck.IntervalMillis = 10000
	}
}

func validateConfig() {
	log.Debug("[CONFIG] Validating config")

	// mongodb
	if Config.MongoDB.URI == "" {
		log.Fatal("[CONFIG] MongoDB.URI is required")
	}
	if Config.MongoDB.Database == "" {
		log.Fatal("[CONFIG] MongoDB.Database is required")
	}
	if Config.MongoDB.TimeoutMillis <= 0 {
		log.Fatal("[CONFIG] MongoDB.TimeoutMillis is invalid")
	}

	// order store
	switch Config.OrderStore.Driver {
	case OrderStoreMongo:
	case OrderStorePostgres:
		if Config.Postgres.DSN == "" {
			log.Fatal("[CONFIG] Postgres.DSN is required when OrderStore.Driver is postgres")
		}
	default:
		log.Fatal("[CONFIG] OrderStore.Driver is invalid: ", Config.OrderStore.Driver)
	}

	// ethereum
	if Config.Ethereum.RPCURL == "" {
		log.Fatal("[CONFIG] Ethereum.RPCURL is required")
	}
	if Config.Ethereum.ChainID == "" {
		log.Fatal("[CONFIG] Ethereum.ChainID is required")
	}
	if Config.Ethereum.PrivateKey == "" && Config.Ethereum.Mnemonic == "" && Config.Ethereum.GcpKmsKeyName == "" {
		log.Fatal("[CONFIG] Ethereum.PrivateKey, Ethereum.Mnemonic or Ethereum.GcpKmsKeyName is required")
	}
	if !common.IsHexAddress(Config.Ethereum.TokenAddress) {
		log.Fatal("[CONFIG] Ethereum.TokenAddress is invalid")
	}
	if Config.Ethereum.VaultAddress != "" && !common.IsHexAddress(Config.Ethereum.VaultAddress) {
		log.Fatal("[CONFIG] Ethereum.VaultAddress is invalid")
	}
	if Config.Ethereum.TokenDecimals < 0 || Config.Ethereum.TokenDecimals > 36 {
		log.Fatal("[CONFIG] Ethereum.TokenDecimals is invalid")
	}

	// payment gateway
	if Config.PaymentGateway.BaseURL == "" {
		log.Fatal("[CONFIG] PaymentGateway.BaseURL is required")
	}
	if Config.PaymentGateway.AppID == "" {
		log.Fatal("[CONFIG] PaymentGateway.AppID is required")
	}
	if Config.PaymentGateway.SecretKey == "" {
		log.Fatal("[CONFIG] PaymentGateway.SecretKey is required")
	}
	if Config.PaymentGateway.WebhookSecret == "" {
		log.Fatal("[CONFIG] PaymentGateway.WebhookSecret is required")
	}

	// vault
	if Config.Vault.MinimumRatioBps <= 0 {
		log.Fatal("[CONFIG] Vault.MinimumRatioBps must be positive")
	}
	if Config.Vault.CollateralPriceFiat != "" {
		price, err := decimal.NewFromString(Config.Vault.CollateralPriceFiat)
		if err != nil || !price.IsPositive() {
			log.Fatal("[CONFIG] Vault.CollateralPriceFiat is invalid")
		}
	}
	if Config.Vault.CollateralPriceFiat == "" && Config.Vault.PriceFeedURL == "" {
		log.Warn("[CONFIG] Vault price source is not configured, vault snapshots will be unavailable")
	}

	// settlement
	if Config.Settlement.MaxAttempts < 1 {
		log.Fatal("[CONFIG] Settlement.MaxAttempts must be at least 1")
	}
	if Config.Settlement.JobMaxAttempts < 1 {
		log.Fatal("[CONFIG] Settlement.JobMaxAttempts must be at least 1")
	}

	log.Debug("[CONFIG] Config validated")
}
