// Package config loads service configuration from the environment.
// Settings are read once at startup and stay immutable for the process
// lifetime.
package config

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Settings holds everything main needs to wire the service together.
type Settings struct {
	Port string

	// Base64-encoded service account JSON, as stored in the deploy env.
	FirebaseCredentials        []byte
	NaturalLanguageCredentials []byte
	VisionCredentials          []byte

	MapsAPIKey    string
	OpenAIAPIKey  string
	ClassifierURL string

	JWTSecret string

	// Path to the ward boundary GeoJSON. Optional; ward lookup degrades to
	// the default label when missing.
	WardDataPath string
}

// Load reads .env (if present) and the process environment.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine in deployed environments.
		fmt.Println("No .env file found, using process environment")
	}

	s := &Settings{
		Port:          getEnv("PORT", "8080"),
		MapsAPIKey:    os.Getenv("MAPS_CREDENTIALS"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		ClassifierURL: getEnv("CLASSIFIER_URL", "https://civicsense-classifier-165032778338.us-central1.run.app/classify/"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		WardDataPath:  getEnv("WARD_DATA_PATH", "data/mumbai_wards.json"),
	}

	var err error
	if s.FirebaseCredentials, err = decodeCreds("FIREBASE_CREDENTIALS"); err != nil {
		return nil, err
	}
	if s.NaturalLanguageCredentials, err = decodeCreds("NATURAL_LANGUAGE_CREDENTIALS"); err != nil {
		return nil, err
	}
	if s.VisionCredentials, err = decodeCreds("VISION_CREDENTIALS"); err != nil {
		return nil, err
	}

	if len(s.FirebaseCredentials) == 0 {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS environment variable not set")
	}
	if s.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if s.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return s, nil
}

// decodeCreds decodes a base64 service-account blob from the named env var.
// An unset var decodes to nil; callers decide whether that is fatal.
func decodeCreds(key string) ([]byte, error) {
	encoded := os.Getenv(key)
	if encoded == "" {
		return nil, nil
	}
	creds, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return creds, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
