package constants

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

const (
	KindVIP                = "vip"
	KindReferralWithdrawal = "referral_withdrawal"
	KindWithdrawal         = "withdrawal"
)

const (
	DefaultMinWithdrawal    = "10"
	DefaultReferralRate     = "0.5"
	DefaultVIPDuration      = 30 * 24 * time.Hour
	DefaultVIPSweepInterval = time.Minute
	DefaultTokenTTL         = 24 * time.Hour
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultMigrationsPath   = "file://migrations"
)

// InsecureJWTSecret is a signing key published with the original deployment.
// Config refuses to start with it.
const InsecureJWTSecret = "supersecretkey"
