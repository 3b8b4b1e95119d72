package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AccountDefaults holds the routing of one built-in account role seeded at
// install time.
type AccountDefaults struct {
	Bank      string
	Branch    string
	Account   string
	Digit     string
	Name      string
	TaxNumber string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Banking gateway settings. User/Password empty means the gateway is
	// unconfigured and balance synchronization is skipped.
	FitBankAPIURL         string
	FitBankUser           string
	FitBankPassword       string
	FitBankPartnerID      string
	FitBankBusinessUnitID string
	FitBankTaxNumber      string
	FitBankTimeout        time.Duration

	// Built-in account roles used by the seed command.
	TransactionalAccount AccountDefaults
	FeeAccount           AccountDefaults

	// Balance synchronizer schedule.
	BalanceSyncInterval time.Duration
	BalanceSyncWarmup   time.Duration
	BalanceSyncPause    time.Duration

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "pix-admin-backend")

	viper.SetDefault("FITBANK_API_URL", "https://apiv2.fitbank.com.br/main/execute")
	viper.SetDefault("FITBANK_USER", "")
	viper.SetDefault("FITBANK_PASSWORD", "")
	viper.SetDefault("FITBANK_PARTNER_ID", "1001940")
	viper.SetDefault("FITBANK_BUSINESS_UNIT_ID", "1001823")
	viper.SetDefault("FITBANK_TAX_NUMBER", "53302781000135")
	viper.SetDefault("FITBANK_TIMEOUT", "30s")

	viper.SetDefault("FITBANK_FROM_BANK", "450")
	viper.SetDefault("FITBANK_FROM_BRANCH", "0001")
	viper.SetDefault("FITBANK_FROM_ACCOUNT", "9342213115")
	viper.SetDefault("FITBANK_FROM_ACCOUNT_DIGIT", "2")
	viper.SetDefault("FITBANK_FROM_NAME", "TRIBOPAY")
	viper.SetDefault("FEE_BANK", "208")
	viper.SetDefault("FEE_BRANCH", "0050")
	viper.SetDefault("FEE_ACCOUNT", "528218")
	viper.SetDefault("FEE_ACCOUNT_DIGIT", "0")
	viper.SetDefault("FEE_NAME", "TriboPay")
	viper.SetDefault("FEE_TAX_NUMBER", "53302781000135")

	viper.SetDefault("BALANCE_SYNC_INTERVAL", "30m")
	viper.SetDefault("BALANCE_SYNC_WARMUP", "30s")
	viper.SetDefault("BALANCE_SYNC_PAUSE", "1s")

	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.FitBankAPIURL = viper.GetString("FITBANK_API_URL")
	cfg.FitBankUser = viper.GetString("FITBANK_USER")
	cfg.FitBankPassword = viper.GetString("FITBANK_PASSWORD")
	cfg.FitBankPartnerID = viper.GetString("FITBANK_PARTNER_ID")
	cfg.FitBankBusinessUnitID = viper.GetString("FITBANK_BUSINESS_UNIT_ID")
	cfg.FitBankTaxNumber = viper.GetString("FITBANK_TAX_NUMBER")
	cfg.FitBankTimeout = durationOrDefault("FITBANK_TIMEOUT", 30*time.Second)
	if cfg.FitBankUser == "" || cfg.FitBankPassword == "" {
		log.Println("Warning: FitBank credentials not configured. Set FITBANK_USER and FITBANK_PASSWORD; balance sync will be skipped.")
	}

	cfg.TransactionalAccount = AccountDefaults{
		Bank:    viper.GetString("FITBANK_FROM_BANK"),
		Branch:  viper.GetString("FITBANK_FROM_BRANCH"),
		Account: viper.GetString("FITBANK_FROM_ACCOUNT"),
		Digit:   viper.GetString("FITBANK_FROM_ACCOUNT_DIGIT"),
		Name:    viper.GetString("FITBANK_FROM_NAME"),
	}
	cfg.FeeAccount = AccountDefaults{
		Bank:      viper.GetString("FEE_BANK"),
		Branch:    viper.GetString("FEE_BRANCH"),
		Account:   viper.GetString("FEE_ACCOUNT"),
		Digit:     viper.GetString("FEE_ACCOUNT_DIGIT"),
		Name:      viper.GetString("FEE_NAME"),
		TaxNumber: viper.GetString("FEE_TAX_NUMBER"),
	}

	cfg.BalanceSyncInterval = durationOrDefault("BALANCE_SYNC_INTERVAL", 30*time.Minute)
	cfg.BalanceSyncWarmup = durationOrDefault("BALANCE_SYNC_WARMUP", 30*time.Second)
	cfg.BalanceSyncPause = durationOrDefault("BALANCE_SYNC_PAUSE", time.Second)

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

// GatewayConfigured reports whether the banking gateway credentials are set.
func (c *Config) GatewayConfigured() bool {
	return c.FitBankUser != "" && c.FitBankPassword != ""
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
