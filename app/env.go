package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func readConfigFromENV(envFile string) bool {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			log.Warn("[ENV] Error loading .env file: ", err.Error())
		}
	}

	log.Debug("[ENV] Reading config from env")

	// logger
	if os.Getenv("LOG_LEVEL") != "" {
		Config.Logger.Level = os.Getenv("LOG_LEVEL")
	}

	// api
	if os.Getenv("API_ADDR") != "" {
		Config.API.Addr = os.Getenv("API_ADDR")
	}
	if os.Getenv("API_SHUTDOWN_TIMEOUT_SECS") != "" {
		timeoutSecs, err := strconv.ParseInt(os.Getenv("API_SHUTDOWN_TIMEOUT_SECS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing API_SHUTDOWN_TIMEOUT_SECS: ", err.Error())
		} else {
			Config.API.ShutdownTimeoutSecs = timeoutSecs
		}
	}

	// mongodb
	if os.Getenv("MONGODB_URI") != "" {
		Config.MongoDB.URI = os.Getenv("MONGODB_URI")
	}
	if os.Getenv("MONGODB_DATABASE") != "" {
		Config.MongoDB.Database = os.Getenv("MONGODB_DATABASE")
	}
	if os.Getenv("MONGODB_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("MONGODB_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing MONGODB_TIMEOUT_MS: ", err.Error())
		} else {
			Config.MongoDB.TimeoutMillis = timeoutMillis
		}
	}

	// order store
	if os.Getenv("ORDER_STORE_DRIVER") != "" {
		Config.OrderStore.Driver = strings.ToLower(os.Getenv("ORDER_STORE_DRIVER"))
	}
	if os.Getenv("POSTGRES_DSN") != "" {
		Config.Postgres.DSN = os.Getenv("POSTGRES_DSN")
	}

	// redis
	if os.Getenv("REDIS_ADDR") != "" {
		Config.Redis.Addr = os.Getenv("REDIS_ADDR")
	}
	if os.Getenv("REDIS_PASSWORD") != "" {
		Config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	}
	if os.Getenv("REDIS_DB") != "" {
		db, err := strconv.Atoi(os.Getenv("REDIS_DB"))
		if err != nil {
			log.Warn("[ENV] Error parsing REDIS_DB: ", err.Error())
		} else {
			Config.Redis.DB = db
		}
	}

	// ethereum
	if os.Getenv("ETH_RPC_URL") != "" {
		Config.Ethereum.RPCURL = os.Getenv("ETH_RPC_URL")
	}
	if os.Getenv("ETH_RPC_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("ETH_RPC_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing ETH_RPC_TIMEOUT_MS: ", err.Error())
		} else {
			Config.Ethereum.RPCTimeoutMillis = timeoutMillis
		}
	}
	if os.Getenv("ETH_CHAIN_ID") != "" {
		Config.Ethereum.ChainID = os.Getenv("ETH_CHAIN_ID")
	}
	if os.Getenv("ETH_PRIVATE_KEY") != "" {
		Config.Ethereum.PrivateKey = os.Getenv("ETH_PRIVATE_KEY")
	}
	if os.Getenv("ETH_MNEMONIC") != "" {
		Config.Ethereum.Mnemonic = os.Getenv("ETH_MNEMONIC")
	}
	if os.Getenv("ETH_GCP_KMS_KEY_NAME") != "" {
		Config.Ethereum.GcpKmsKeyName = os.Getenv("ETH_GCP_KMS_KEY_NAME")
	}
	if os.Getenv("ETH_TOKEN_ADDRESS") != "" {
		Config.Ethereum.TokenAddress = os.Getenv("ETH_TOKEN_ADDRESS")
	}
	if os.Getenv("ETH_VAULT_ADDRESS") != "" {
		Config.Ethereum.VaultAddress = os.Getenv("ETH_VAULT_ADDRESS")
	}
	if os.Getenv("ETH_TOKEN_DECIMALS") != "" {
		decimals, err := strconv.ParseInt(os.Getenv("ETH_TOKEN_DECIMALS"), 10, 32)
		if err != nil {
			log.Warn("[ENV] Error parsing ETH_TOKEN_DECIMALS: ", err.Error())
		} else {
			Config.Ethereum.TokenDecimals = int32(decimals)
		}
	}
	if os.Getenv("ETH_CONFIRM_TIMEOUT_MS") != "" {
		timeoutMillis, err := strconv.ParseInt(os.Getenv("ETH_CONFIRM_TIMEOUT_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing ETH_CONFIRM_TIMEOUT_MS: ", err.Error())
		} else {
			Config.Ethereum.ConfirmTimeoutMillis = timeoutMillis
		}
	}

	// payment gateway
	if os.Getenv("PAYMENT_GATEWAY_BASE_URL") != "" {
		Config.PaymentGateway.BaseURL = os.Getenv("PAYMENT_GATEWAY_BASE_URL")
	}
	if os.Getenv("PAYMENT_GATEWAY_APP_ID") != "" {
		Config.PaymentGateway.AppID = os.Getenv("PAYMENT_GATEWAY_APP_ID")
	}
	if os.Getenv("PAYMENT_GATEWAY_SECRET_KEY") != "" {
		Config.PaymentGateway.SecretKey = os.Getenv("PAYMENT_GATEWAY_SECRET_KEY")
	}
	if os.Getenv("PAYMENT_GATEWAY_WEBHOOK_SECRET") != "" {
		Config.PaymentGateway.WebhookSecret = os.Getenv("PAYMENT_GATEWAY_WEBHOOK_SECRET")
	}
	if os.Getenv("PAYMENT_GATEWAY_RETURN_URL") != "" {
		Config.PaymentGateway.ReturnURL = os.Getenv("PAYMENT_GATEWAY_RETURN_URL")
	}
	if os.Getenv("PAYMENT_GATEWAY_CHECKOUT_URL") != "" {
		Config.PaymentGateway.CheckoutURL = os.Getenv("PAYMENT_GATEWAY_CHECKOUT_URL")
	}

	// vault
	if os.Getenv("VAULT_MINIMUM_RATIO_BPS") != "" {
		bps, err := strconv.ParseInt(os.Getenv("VAULT_MINIMUM_RATIO_BPS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing VAULT_MINIMUM_RATIO_BPS: ", err.Error())
		} else {
			Config.Vault.MinimumRatioBps = bps
		}
	}
	if os.Getenv("VAULT_COLLATERAL_PRICE_FIAT") != "" {
		Config.Vault.CollateralPriceFiat = os.Getenv("VAULT_COLLATERAL_PRICE_FIAT")
	}
	if os.Getenv("VAULT_PRICE_FEED_URL") != "" {
		Config.Vault.PriceFeedURL = os.Getenv("VAULT_PRICE_FEED_URL")
	}

	// settlement
	if os.Getenv("SETTLEMENT_MAX_ATTEMPTS") != "" {
		attempts, err := strconv.Atoi(os.Getenv("SETTLEMENT_MAX_ATTEMPTS"))
		if err != nil {
			log.Warn("[ENV] Error parsing SETTLEMENT_MAX_ATTEMPTS: ", err.Error())
		} else {
			Config.Settlement.MaxAttempts = attempts
		}
	}
	if os.Getenv("SETTLEMENT_WORKER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("SETTLEMENT_WORKER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing SETTLEMENT_WORKER_ENABLED: ", err.Error())
		} else {
			Config.SettlementWorker.Enabled = enabled
		}
	}
	if os.Getenv("RECONCILER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("RECONCILER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing RECONCILER_ENABLED: ", err.Error())
		} else {
			Config.Reconciler.Enabled = enabled
		}
	}

	// google secret manager
	if os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing GOOGLE_SECRET_MANAGER_ENABLED: ", err.Error())
		} else {
			Config.GoogleSecretManager.Enabled = enabled
		}
	}
	if os.Getenv("GOOGLE_PROJECT_ID") != "" {
		Config.GoogleSecretManager.ProjectId = os.Getenv("GOOGLE_PROJECT_ID")
	}

	log.Debug("[ENV] Config read from env")
	return true
}
