package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/constants"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	RunAddr         string        `env:"RUN_ADDRESS"`
	DatabaseURI     string        `env:"DATABASE_URI"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH"`
	JWTSecret       string        `env:"JWT_SECRET"`
	AllowOrigins    string        `env:"ALLOW_ORIGINS"`
	LogLevel        string        `env:"LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	VIPSweepEvery   time.Duration `env:"VIP_SWEEP_INTERVAL"`

	AdminLogin        string `env:"ADMIN_LOGIN"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	AdminID           int64  `env:"ADMIN_ID"`

	Ledger LedgerConfig
}

// LedgerConfig holds the money rules shared by the request ledgers and the
// referral accounting.
type LedgerConfig struct {
	ReferralRate             decimal.Decimal `env:"REFERRAL_RATE"`
	MinWithdrawal            decimal.Decimal `env:"MIN_WITHDRAWAL"`
	VIPDuration              time.Duration   `env:"VIP_DURATION"`
	StrictWithdrawalApproval bool            `env:"STRICT_WITHDRAWAL_APPROVAL"`
}

func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		ReferralRate:             decimal.RequireFromString(constants.DefaultReferralRate),
		MinWithdrawal:            decimal.RequireFromString(constants.DefaultMinWithdrawal),
		VIPDuration:              constants.DefaultVIPDuration,
		StrictWithdrawalApproval: true,
	}
}

func NewConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load resolves configuration from defaults, an optional .env file, command
// line flags and the environment. Environment variables win over flags.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		RunAddr:         ":8080",
		MigrationsPath:  constants.DefaultMigrationsPath,
		AllowOrigins:    "*",
		LogLevel:        "info",
		ShutdownTimeout: constants.DefaultShutdownTimeout,
		VIPSweepEvery:   constants.DefaultVIPSweepInterval,
		AdminLogin:      "admin",
		AdminID:         1,
		Ledger:          DefaultLedgerConfig(),
	}

	fs := flag.NewFlagSet("gamehub", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddr, "a", cfg.RunAddr, "server address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "database URI")
	fs.StringVar(&cfg.JWTSecret, "j", cfg.JWTSecret, "JWT secret")
	fs.StringVar(&cfg.MigrationsPath, "m", cfg.MigrationsPath, "migrations source URL")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.Func("rate", "referral payout per registration", func(s string) error {
		rate, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		cfg.Ledger.ReferralRate = rate
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	cfg.DatabaseURI = strings.TrimSpace(cfg.DatabaseURI)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURI == "" {
		return errors.New("DATABASE_URI is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTSecret == constants.InsecureJWTSecret {
		return errors.New("JWT_SECRET must not be the published default")
	}
	if c.Ledger.ReferralRate.IsNegative() {
		return errors.New("REFERRAL_RATE must not be negative")
	}
	if !c.Ledger.MinWithdrawal.IsPositive() {
		return errors.New("MIN_WITHDRAWAL must be positive")
	}
	if c.Ledger.VIPDuration <= 0 {
		return errors.New("VIP_DURATION must be positive")
	}
	if c.VIPSweepEvery <= 0 {
		return errors.New("VIP_SWEEP_INTERVAL must be positive")
	}
	return nil
}
