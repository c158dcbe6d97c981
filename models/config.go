package models

type Config struct {
	GoogleSecretManager GoogleSecretManagerConfig `yaml:"google_secret_manager" json:"google_secret_manager"`
	HealthCheck         HealthCheckConfig         `yaml:"health_check" json:"health_check"`
	Logger              LoggerConfig              `yaml:"logger" json:"logger"`
	API                 APIConfig                 `yaml:"api" json:"api"`
	MongoDB             MongoConfig               `yaml:"mongodb" json:"mongo_db"`
	Postgres            PostgresConfig            `yaml:"postgres" json:"postgres"`
	OrderStore          OrderStoreConfig          `yaml:"order_store" json:"order_store"`
	Redis               RedisConfig               `yaml:"redis" json:"redis"`
	Ethereum            EthereumConfig            `yaml:"ethereum" json:"ethereum"`
	PaymentGateway      PaymentGatewayConfig      `yaml:"payment_gateway" json:"payment_gateway"`
	Vault               VaultConfig               `yaml:"vault" json:"vault"`
	Settlement          SettlementConfig          `yaml:"settlement" json:"settlement"`
	SettlementWorker    ServiceConfig             `yaml:"settlement_worker" json:"settlement_worker"`
	Reconciler          ReconcilerConfig          `yaml:"reconciler" json:"reconciler"`
}

type GoogleSecretManagerConfig struct {
	Enabled           bool   `yaml:"enabled" json:"enabled"`
	ProjectId         string `yaml:"project_id" json:"project_id"`
	MongoSecretName   string `yaml:"mongo_secret_name" json:"mongo_secret_name"`
	EthSecretName     string `yaml:"eth_secret_name" json:"eth_secret_name"`
	GatewaySecretName string `yaml:"gateway_secret_name" json:"gateway_secret_name"`
	WebhookSecretName string `yaml:"webhook_secret_name" json:"webhook_secret_name"`
}

type HealthCheckConfig struct {
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
	ReadLastHealth bool  `yaml:"read_last_health" json:"read_last_health"`
}

type LoggerConfig struct {
	Level string `yaml:"level" json:"level"`
}

type APIConfig struct {
	Addr                string `yaml:"addr" json:"addr"`
	ShutdownTimeoutSecs int64  `yaml:"shutdown_timeout_secs" json:"shutdown_timeout_secs"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn" json:"dsn"`
}

type OrderStoreConfig struct {
	// Driver selects the order backend: "mongodb" (default) or "postgres".
	Driver string `yaml:"driver" json:"driver"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
}

type EthereumConfig struct {
	RPCURL                    string `yaml:"rpc_url" json:"rpcurl"`
	RPCTimeoutMillis          int64  `yaml:"rpc_timeout_ms" json:"rpc_timeout_ms"`
	ChainID                   string `yaml:"chain_id" json:"chain_id"`
	PrivateKey                string `yaml:"private_key" json:"private_key"`
	Mnemonic                  string `yaml:"mnemonic" json:"mnemonic"`
	GcpKmsKeyName             string `yaml:"gcp_kms_key_name" json:"gcp_kms_key_name"`
	TokenAddress              string `yaml:"token_address" json:"token_address"`
	VaultAddress              string `yaml:"vault_address" json:"vault_address"`
	TokenDecimals             int32  `yaml:"token_decimals" json:"token_decimals"`
	CollateralDecimals        int32  `yaml:"collateral_decimals" json:"collateral_decimals"`
	ConfirmTimeoutMillis      int64  `yaml:"confirm_timeout_ms" json:"confirm_timeout_ms"`
	ConfirmPollMillis         int64  `yaml:"confirm_poll_ms" json:"confirm_poll_ms"`
	ConfirmPollIntervalMillis int64  `yaml:"confirm_poll_interval_ms" json:"confirm_poll_interval_ms"`
}

type PaymentGatewayConfig struct {
	BaseURL       string `yaml:"base_url" json:"base_url"`
	APIVersion    string `yaml:"api_version" json:"api_version"`
	AppID         string `yaml:"app_id" json:"app_id"`
	SecretKey     string `yaml:"secret_key" json:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret" json:"webhook_secret"`
	ReturnURL     string `yaml:"return_url" json:"return_url"`
	CheckoutURL   string `yaml:"checkout_url" json:"checkout_url"`
	Currency      string `yaml:"currency" json:"currency"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type VaultConfig struct {
	MinimumRatioBps     int64  `yaml:"minimum_ratio_bps" json:"minimum_ratio_bps"`
	CollateralPriceFiat string `yaml:"collateral_price_fiat" json:"collateral_price_fiat"`
	PriceFeedURL        string `yaml:"price_feed_url" json:"price_feed_url"`
	PriceCacheSecs      int64  `yaml:"price_cache_secs" json:"price_cache_secs"`
}

type SettlementConfig struct {
	MaxAttempts      int   `yaml:"max_attempts" json:"max_attempts"`
	BackoffInitialMs int64 `yaml:"backoff_initial_ms" json:"backoff_initial_ms"`
	BackoffMaxMs     int64 `yaml:"backoff_max_ms" json:"backoff_max_ms"`
	JobMaxAttempts   int   `yaml:"job_max_attempts" json:"job_max_attempts"`
	JobBatchSize     int64 `yaml:"job_batch_size" json:"job_batch_size"`
}

type ServiceConfig struct {
	Enabled        bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}

type ReconcilerConfig struct {
	Enabled        bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
	StaleAfterSecs int64 `yaml:"stale_after_secs" json:"stale_after_secs"`
}
