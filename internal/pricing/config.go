package pricing

import (
	"fmt"

	"github.com/tradehub/marketplace-backend/pkg/config"
)

const maxDecimalPrecision = 8

// Config controls how prices are displayed in explanation lines.
type Config struct {
	CurrencySymbol   string
	DecimalPrecision int32
}

// DefaultConfig renders dollars with two decimal places.
func DefaultConfig() Config {
	return Config{CurrencySymbol: "$", DecimalPrecision: 2}
}

// ConfigFrom maps the loaded application settings onto the engine config.
func ConfigFrom(cfg config.PricingConfig) Config {
	return Config{CurrencySymbol: cfg.CurrencySymbol, DecimalPrecision: cfg.DecimalPrecision}
}

func (c Config) Validate() error {
	if c.CurrencySymbol == "" {
		return fmt.Errorf("currency symbol required")
	}
	if c.DecimalPrecision < 0 || c.DecimalPrecision > maxDecimalPrecision {
		return fmt.Errorf("decimal precision must be between 0 and %d, got %d", maxDecimalPrecision, c.DecimalPrecision)
	}
	return nil
}
