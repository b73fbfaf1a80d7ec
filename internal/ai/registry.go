package ai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownProvider    = errors.New("unknown ai provider")
	ErrMissingCredentials = errors.New("api key is required")
	ErrEmptyReply         = errors.New("empty response")
)

type ProviderFactory func(ctx context.Context, model string) (Provider, error)

type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

func (r *Registry) Register(name string, f ProviderFactory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

func (r *Registry) Get(ctx context.Context, name string, model string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return f(ctx, model)
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for n := range r.factories {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Settings holds provider endpoints and credentials.
type Settings struct {
	OpenAIBaseURL     string
	OpenAIAPIKey      string
	OpenRouterBaseURL string
	OpenRouterAPIKey  string
	OpenRouterSiteURL string
	OpenRouterAppName string
	OllamaBaseURL     string
	GeminiAPIKey      string
}

// NewDefaultRegistry registers every built-in provider. Missing credentials
// surface when a provider is used, not here.
func NewDefaultRegistry(s Settings) *Registry {
	reg := NewRegistry()
	reg.Register("openai", func(ctx context.Context, model string) (Provider, error) {
		return NewOpenAIProvider(s.OpenAIBaseURL, s.OpenAIAPIKey, model), nil
	})
	reg.Register("openrouter", func(ctx context.Context, model string) (Provider, error) {
		return NewOpenRouterProvider(s.OpenRouterBaseURL, s.OpenRouterAPIKey, model, s.OpenRouterSiteURL, s.OpenRouterAppName), nil
	})
	reg.Register("ollama", func(ctx context.Context, model string) (Provider, error) {
		return NewOllamaProvider(s.OllamaBaseURL, model), nil
	})
	reg.Register("gemini", func(ctx context.Context, model string) (Provider, error) {
		return NewGeminiProvider(ctx, s.GeminiAPIKey, model)
	})
	return reg
}
