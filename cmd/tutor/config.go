package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// GeminiAPIKey authenticates the live websocket connection.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" required:"true"`

	Model string `envconfig:"TUTOR_MODEL" default:"models/gemini-2.5-flash-native-audio-preview-09-2025"`
	Voice string `envconfig:"TUTOR_VOICE" default:"Fenrir"`

	// InputBackend selects the microphone client: miniaudio or portaudio.
	InputBackend string `envconfig:"TUTOR_INPUT" default:"miniaudio"`
}

func LoadConfig() (Config, error) {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process configuration: %w", err)
	}
	return cfg, nil
}
