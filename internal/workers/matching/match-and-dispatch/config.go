// internal/workers/matching/match-and-dispatch/config.go
package matchanddispatch

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
