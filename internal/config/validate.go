package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
//
// Both storage backends are optional: with neither configured the service
// still boots, stores nothing, and rate-limits nothing. That is a legal
// (if mostly useless) deployment, so no rule here requires a backend.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate_limit.max_requests must be > 0 (got %d)", c.RateLimit.MaxRequests)
	}
	if c.RateLimit.Window < time.Second {
		return fmt.Errorf("rate_limit.window must be at least 1s (got %v)", c.RateLimit.Window)
	}

	if c.Notify.Enabled() && c.Notify.From == "" {
		return fmt.Errorf("notify.from is required when notify.to is set")
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	return nil
}
