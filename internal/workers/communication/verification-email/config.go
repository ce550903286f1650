// internal/workers/communication/verification-email/config.go
package verificationemail

import (
	"time"

	"fruitcenter-events/internal/common/config"
)

type Config struct {
	AWSRegion string
	FromEmail string
	Timeout   time.Duration
}

func LoadConfig(aws config.AWSConfig) *Config {
	return &Config{
		AWSRegion: aws.Region,
		FromEmail: aws.SES.FromEmail,
		Timeout:   30 * time.Second,
	}
}
