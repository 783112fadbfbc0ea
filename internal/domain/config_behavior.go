package domain

import "time"

// GetSafetyLevel returns the configured safety level, falling back to
// medium when the field is missing or unparseable.
func (c *Config) GetSafetyLevel() SafetyLevel {
	if c.SafetyLevel.Rank() == 0 {
		return SafetyMedium
	}
	return c.SafetyLevel
}

// GetMaxHistory returns the history entry cap with default fallback.
func (c *Config) GetMaxHistory() int {
	if c.MaxHistory <= 0 {
		return DefaultMaxHistory
	}
	return c.MaxHistory
}

// GetTemperature returns the sampling temperature with default fallback.
func (c *Config) GetTemperature() float64 {
	if c.Temperature <= 0 {
		return DefaultTemperature
	}
	return c.Temperature
}

// GetGenerateTimeout returns the model request timeout.
func (c *Config) GetGenerateTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultGenerateTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetURL returns the backend base URL with default fallback.
func (c *Config) GetURL() string {
	if c.URL == "" {
		return DefaultBackendURL
	}
	return c.URL
}

// GetModel returns the configured model identifier with default fallback.
func (c *Config) GetModel() string {
	if c.Model == "" {
		return DefaultModel
	}
	return c.Model
}

// GetShell returns the shell used to execute commands.
func (c *Config) GetShell() string {
	if c.Shell == "" {
		return "/bin/sh"
	}
	return c.Shell
}
