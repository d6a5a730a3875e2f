package main

import (
	"chat-hub/errors"
	"chat-hub/internal"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// loadConfig reads an optional .env file then the environment.
func loadConfig() (internal.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return internal.Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return config, fmt.Errorf("config error: %w", err)
	}
	return config, config.Validate()
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: %q, expected a number between 1 and 65535", errors.ErrInvalidPort, raw)
	}
	return port, nil
}
