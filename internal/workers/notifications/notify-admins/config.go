// internal/workers/notifications/notify-admins/config.go
package notifyadmins

import "time"

type Config struct {
	// SettleDelay is how long to wait before re-reading the order, giving the
	// client time to finish writing the address fields.
	SettleDelay time.Duration
	AdminTopic  string
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		SettleDelay: 10 * time.Second,
		AdminTopic:  "admin_orders",
		Timeout:     30 * time.Second,
	}
}
