package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port        string
	STTProvider string
	OpenAIKey   string
	FPTApiKey   string
	FPTSTTURL   string
	DatabaseURL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		STTProvider: getEnv("STT_PROVIDER", "whisper"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		FPTApiKey:   os.Getenv("FPT_AI_API_KEY"),
		FPTSTTURL:   getEnv("FPT_AI_STT_URL", "https://api.fpt.ai/hmi/asr/v1"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	// The mock provider needs no credentials; anything else does
	switch cfg.STTProvider {
	case "whisper":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when STT_PROVIDER=whisper")
		}
	case "fpt":
		if cfg.FPTApiKey == "" {
			return nil, fmt.Errorf("FPT_AI_API_KEY is required when STT_PROVIDER=fpt")
		}
	}

	// OpenAI key is otherwise optional: without it extraction falls back
	// to the rule engine.

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
