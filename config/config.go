package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a local .env file when present. Missing files are fine; in
// deployed environments the variables come from the process environment.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		Log.Info("Loaded environment from .env file")
	}
}

// Port returns the HTTP listen port.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}

// RenderAPIKey returns the render API credential. Empty means unconfigured;
// the render client reports that as a configuration error at submission time.
func RenderAPIKey() string {
	return os.Getenv("SHOTSTACK_API_KEY")
}

// RenderAPIURL returns the render API base URL.
func RenderAPIURL() string {
	if u := os.Getenv("SHOTSTACK_API_URL"); u != "" {
		return u
	}
	return "https://api.shotstack.io/stage"
}

// MarketplaceToken returns the marketplace credential. Empty means
// unconfigured; search reports that distinctly from a failed request.
func MarketplaceToken() string {
	return os.Getenv("ENVATO_TOKEN")
}

// MarketplaceURL returns the marketplace API base URL.
func MarketplaceURL() string {
	if u := os.Getenv("ENVATO_API_URL"); u != "" {
		return u
	}
	return "https://api.envato.com"
}

// CohereAPIKey returns the generative AI credential.
func CohereAPIKey() string {
	return os.Getenv("COHERE_API_KEY")
}

// CohereModel returns the chat model override, if any.
func CohereModel() string {
	return os.Getenv("COHERE_MODEL")
}
