package llm

import (
	"fmt"
	"strings"

	"github.com/osa911/portfolio-backend/internal/config"
)

// Provider describes an OpenAI-compatible chat-completion endpoint
type Provider struct {
	Name         string
	BaseURL      string
	DefaultModel string
	// Preferred models for discovery, most preferred first
	Preferred []string
}

var providers = map[string]Provider{
	config.ProviderGroq: {
		Name:         config.ProviderGroq,
		BaseURL:      "https://api.groq.com/openai/v1",
		DefaultModel: "llama-3.3-70b-versatile",
		Preferred:    []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"},
	},
	config.ProviderOpenAI: {
		Name:         config.ProviderOpenAI,
		BaseURL:      "https://api.openai.com/v1",
		DefaultModel: "gpt-4o-mini",
		Preferred:    []string{"gpt-4o-mini", "gpt-4o", "gpt-3.5-turbo"},
	},
	config.ProviderGemini: {
		Name:         config.ProviderGemini,
		BaseURL:      "https://generativelanguage.googleapis.com/v1beta/openai",
		DefaultModel: "gemini-2.0-flash",
		Preferred:    []string{"models/gemini-2.0-flash", "models/gemini-1.5-flash"},
	},
}

// LookupProvider returns the preset for a provider name
func LookupProvider(name string) (Provider, error) {
	p, ok := providers[strings.ToLower(name)]
	if !ok {
		return Provider{}, fmt.Errorf("unknown llm provider: %s", name)
	}
	return p, nil
}
