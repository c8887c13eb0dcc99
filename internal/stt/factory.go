package stt

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// CreateProvider creates an STT provider based on environment configuration
func CreateProvider() (Provider, error) {
	providerName := strings.ToLower(os.Getenv("STT_PROVIDER"))

	// Default to Whisper if not specified
	if providerName == "" {
		providerName = "whisper"
		log.Printf("[STT Factory] STT_PROVIDER not set, defaulting to 'whisper'")
	}

	switch providerName {
	case "whisper":
		return createWhisperProvider()
	case "fpt":
		return createFPTProvider()
	case "mock":
		log.Printf("[STT Factory] Creating mock STT provider")
		return &MockProvider{Text: os.Getenv("STT_MOCK_TEXT"), Confidence: 0.9}, nil
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: whisper, fpt, mock", providerName)
	}
}

func createWhisperProvider() (Provider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	log.Printf("[STT Factory] Creating Whisper STT provider")
	return NewWhisperProvider(apiKey), nil
}

func createFPTProvider() (Provider, error) {
	apiKey := os.Getenv("FPT_AI_API_KEY")
	url := os.Getenv("FPT_AI_STT_URL")

	if apiKey == "" {
		return nil, fmt.Errorf("FPT_AI_API_KEY environment variable is not set")
	}

	if url == "" {
		url = "https://api.fpt.ai/hmi/asr/v1"
		log.Printf("[STT Factory] FPT_AI_STT_URL not set, using default: %s", url)
	}

	log.Printf("[STT Factory] Creating FPT STT provider")
	return NewFPTProvider(apiKey, url), nil
}
