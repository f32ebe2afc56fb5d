package config

import (
	"os"
	"strconv"
	"strings"
)

type APIConfig struct {
	Addr string
	// SeedOverride pins the random seed for every hosted game. Zero means
	// each game gets a time-derived seed.
	SeedOverride int64
}

type CLIConfig struct {
	APIBaseURL string
}

type SimConfig struct {
	Games        int
	SeedOverride int64
}

func LoadAPIFromEnv() APIConfig {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("SUGOROKU_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:         addr,
		SeedOverride: envInt64Default("SUGOROKU_SEED", 0),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("SGR_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func LoadSimFromEnv() SimConfig {
	return SimConfig{
		Games:        envIntDefault("SUGOROKU_SIM_GAMES", 100),
		SeedOverride: envInt64Default("SUGOROKU_SEED", 0),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
