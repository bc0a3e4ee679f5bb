package commands

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/Treedy2020/FinalCheck/internal/config"
	"github.com/Treedy2020/FinalCheck/pkg/compliance"
)

// newClient builds a compliance client from the config file and environment.
func newClient() (*compliance.Client, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Observability.LogLevel = "debug"
		cfg.Observability.LogFormat = "console"
	}

	return compliance.NewClientWithConfig(cfg)
}
