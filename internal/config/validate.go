package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.FamilyPassword) == "" {
		return fmt.Errorf("auth.family_password must not be empty")
	}
	if len(c.Auth.FamilyToken) < 16 {
		return fmt.Errorf("auth.family_token must be at least 16 characters (got %d)", len(c.Auth.FamilyToken))
	}
	if c.Auth.FamilyToken == c.Auth.FamilyPassword {
		return fmt.Errorf("auth.family_token must differ from auth.family_password")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if strings.TrimSpace(c.Storage.Bucket) == "" {
		return fmt.Errorf("storage.bucket must not be empty")
	}

	if c.RateLimit.LoginPerMinute <= 0 {
		return fmt.Errorf("rate_limit.login_per_minute must be > 0 (got %d)", c.RateLimit.LoginPerMinute)
	}

	return nil
}
