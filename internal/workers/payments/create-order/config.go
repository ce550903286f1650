// internal/workers/payments/create-order/config.go
package createorder

import (
	"fruitcenter-events/internal/common/config"
)

type Config struct {
	KeyID     string
	KeySecret string
	Currency  string
}

func LoadConfig(rzp config.RazorpayConfig) *Config {
	return &Config{
		KeyID:     rzp.KeyID,
		KeySecret: rzp.KeySecret,
		Currency:  "INR",
	}
}
