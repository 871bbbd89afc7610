package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/osa911/portfolio-backend/internal/config"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("github.com/osa911/portfolio-backend/internal/llm")

// Options configures an OpenAIClient
type Options struct {
	Provider    string
	APIKey      string
	BaseURL     string // overrides the provider preset
	Model       string // empty for the provider default, config.ModelAuto to discover
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	MaxRPS      float64 // outbound pacing, 0 disables
	Burst       int
	HTTPClient  *http.Client
}

// OpenAIClient talks to any OpenAI-compatible chat-completion API
type OpenAIClient struct {
	client      *openai.Client
	provider    Provider
	apiKey      string
	model       *ModelResolver
	temperature float32
	maxTokens   int
	limiter     *rate.Limiter
}

// NewOpenAIFromConfig builds the client for the configured provider
func NewOpenAIFromConfig(cfg *config.Config) (*OpenAIClient, error) {
	return NewOpenAI(Options{
		Provider:    cfg.LLMProvider,
		APIKey:      cfg.LLMAPIKey(),
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
		Timeout:     cfg.LLMTimeout,
		MaxRPS:      cfg.LLMMaxRPS,
		Burst:       cfg.LLMBurst,
	})
}

// NewOpenAI creates a new client. A missing API key is not an error: the
// client reports Configured() == false and refuses to call out.
func NewOpenAI(opts Options) (*OpenAIClient, error) {
	provider, err := LookupProvider(opts.Provider)
	if err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(opts.APIKey)
	clientConfig.BaseURL = provider.BaseURL
	if opts.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	}
	if opts.HTTPClient != nil {
		clientConfig.HTTPClient = opts.HTTPClient
	} else {
		clientConfig.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	c := &OpenAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		provider:    provider,
		apiKey:      opts.APIKey,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
	}

	switch opts.Model {
	case "":
		c.model = NewFixedModel(provider.DefaultModel)
	case config.ModelAuto:
		c.model = NewDiscoveredModel(c, provider.Preferred)
	default:
		c.model = NewFixedModel(opts.Model)
	}

	if opts.MaxRPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.MaxRPS), burst)
	}

	return c, nil
}

// Configured reports whether a credential is present
func (c *OpenAIClient) Configured() bool {
	return c.apiKey != ""
}

// Provider returns the provider preset in use
func (c *OpenAIClient) Provider() Provider {
	return c.provider
}

// GenerateReply sends the system prompt and the user message and returns the
// first choice's text, or FallbackReply when the provider returns none.
func (c *OpenAIClient) GenerateReply(ctx context.Context, userMessage, systemPrompt string) (reply string, err error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	ctx, span := tracer.Start(ctx, "llm.GenerateReply", trace.WithAttributes(
		attribute.String("llm.provider", c.provider.Name),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "generate reply failed")
		}
		span.End()
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: waiting for outbound slot: %w", ErrRateLimited, err)
		}
	}

	model, err := c.model.Resolve(ctx)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("llm.model", model))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return FallbackReply, nil
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return FallbackReply, nil
	}
	return content, nil
}

// ListModelIDs implements ModelLister
func (c *OpenAIClient) ListModelIDs(ctx context.Context) ([]string, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, classify(err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// classify maps a go-openai error onto one of the package failure classes
func classify(err error) error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	var class error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		class = ErrUnauthorized
	case status == http.StatusTooManyRequests:
		class = ErrRateLimited
	case status >= 400:
		class = ErrProviderFault
	default:
		class = ErrUnavailable
	}

	if status != 0 {
		return fmt.Errorf("%w (status %d): %w", class, status, err)
	}
	return fmt.Errorf("%w: %w", class, err)
}
