package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be > 0 (got %d)", c.Server.RateLimit)
	}

	if err := c.Wallet.validate(); err != nil {
		return fmt.Errorf("wallet: %w", err)
	}

	return nil
}

func (w *WalletConfig) validate() error {
	if w.LockTTL <= 0 {
		return fmt.Errorf("lock_ttl must be > 0 (got %s)", w.LockTTL)
	}
	if w.LockWait < 0 {
		return fmt.Errorf("lock_wait must be >= 0 (got %s)", w.LockWait)
	}
	if w.SideEffectTimeout <= 0 {
		return fmt.Errorf("side_effect_timeout must be > 0 (got %s)", w.SideEffectTimeout)
	}
	if w.ProofTimeout <= 0 {
		return fmt.Errorf("proof_timeout must be > 0 (got %s)", w.ProofTimeout)
	}
	if w.ReconcileWorkers <= 0 {
		return fmt.Errorf("reconcile_workers must be > 0 (got %d)", w.ReconcileWorkers)
	}

	limit, err := decimal.NewFromString(w.MaxRequestAmount)
	if err != nil {
		return fmt.Errorf("max_request_amount: %w", err)
	}
	if !limit.IsPositive() {
		return fmt.Errorf("max_request_amount must be > 0 (got %s)", limit)
	}
	w.MaxAmount = limit

	return nil
}
