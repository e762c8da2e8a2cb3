package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("значения по умолчанию и флаги", func(t *testing.T) {
		t.Setenv("DATABASE_URI", "")
		t.Setenv("JWT_SECRET", "")
		cfg, err := Load([]string{"-d", "postgres://localhost/gamehub", "-a", ":9090", "-j", "flag-secret"})
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.RunAddr)
		assert.Equal(t, "postgres://localhost/gamehub", cfg.DatabaseURI)
		assert.Equal(t, "flag-secret", cfg.JWTSecret)
		assert.True(t, cfg.Ledger.ReferralRate.Equal(decimal.RequireFromString("0.5")))
		assert.True(t, cfg.Ledger.MinWithdrawal.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, 30*24*time.Hour, cfg.Ledger.VIPDuration)
		assert.True(t, cfg.Ledger.StrictWithdrawalApproval)
	})

	t.Run("окружение важнее флагов", func(t *testing.T) {
		t.Setenv("DATABASE_URI", "postgres://env/gamehub")
		t.Setenv("JWT_SECRET", "env-secret")
		t.Setenv("RUN_ADDRESS", ":7070")
		t.Setenv("REFERRAL_RATE", "0.75")
		t.Setenv("STRICT_WITHDRAWAL_APPROVAL", "false")
		t.Setenv("VIP_DURATION", "48h")

		cfg, err := Load([]string{"-d", "postgres://flag/gamehub", "-a", ":9090"})
		require.NoError(t, err)

		assert.Equal(t, "postgres://env/gamehub", cfg.DatabaseURI)
		assert.Equal(t, ":7070", cfg.RunAddr)
		assert.True(t, cfg.Ledger.ReferralRate.Equal(decimal.RequireFromString("0.75")))
		assert.False(t, cfg.Ledger.StrictWithdrawalApproval)
		assert.Equal(t, 48*time.Hour, cfg.Ledger.VIPDuration)
	})

	t.Run("без DATABASE_URI", func(t *testing.T) {
		t.Setenv("DATABASE_URI", "")
		_, err := Load(nil)
		assert.EqualError(t, err, "DATABASE_URI is required")
	})

	t.Run("отрицательная ставка", func(t *testing.T) {
		t.Setenv("DATABASE_URI", "postgres://env/gamehub")
		t.Setenv("JWT_SECRET", "env-secret")
		_, err := Load([]string{"-rate", "-1"})
		assert.EqualError(t, err, "REFERRAL_RATE must not be negative")
	})

	secretTests := []struct {
		name        string
		secret      string
		expectedErr string
	}{
		{name: "без JWT_SECRET", secret: "", expectedErr: "JWT_SECRET is required"},
		{name: "опубликованный ключ по умолчанию", secret: "supersecretkey", expectedErr: "JWT_SECRET must not be the published default"},
	}
	for _, tt := range secretTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URI", "postgres://env/gamehub")
			t.Setenv("JWT_SECRET", tt.secret)
			_, err := Load(nil)
			assert.EqualError(t, err, tt.expectedErr)
		})
	}
}
