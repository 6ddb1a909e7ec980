package simpay

import "time"

// Config represents the configuration for the simulated payment processor
type Config struct {
	// MerchantID is stamped on every transaction
	MerchantID string

	// Latency is how long an approval takes
	Latency time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MerchantID == "" {
		return ErrInvalidRequest
	}
	if c.Latency < 0 {
		return ErrInvalidRequest
	}
	return nil
}
