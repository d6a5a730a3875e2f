package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// CHATHUB_ADDR is the TCP address of a running chathub; the suites skip when empty
	ChatAddr   string `envconfig:"CHATHUB_ADDR"`
	HealthAddr string `envconfig:"CHATHUB_HEALTH_ADDR"`
	// E2E_DEBUG_JSON allows dumping full gRPC request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
