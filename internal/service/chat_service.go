package service

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/osa911/portfolio-backend/internal/llm"
)

//go:embed prompts/system_prompt.txt
var defaultSystemPrompt string

// ChatService answers chat messages with the configured LLM provider
type ChatService struct {
	client       llm.Client
	configured   bool
	systemPrompt string
}

// NewChatService creates a chat service. configured reports whether the
// provider credential is present; when false no call is ever made.
func NewChatService(client llm.Client, configured bool, systemPrompt string) *ChatService {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}
	return &ChatService{
		client:       client,
		configured:   configured && client != nil,
		systemPrompt: systemPrompt,
	}
}

// LoadSystemPrompt reads the prompt at path, or returns the built-in persona when path is empty
func LoadSystemPrompt(path string) (string, error) {
	if path == "" {
		return defaultSystemPrompt, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt: %w", err)
	}
	return string(data), nil
}

// Configured reports whether the LLM provider can be called
func (s *ChatService) Configured() bool {
	return s.configured
}

// SystemPrompt returns the prompt sent with every message
func (s *ChatService) SystemPrompt() string {
	return s.systemPrompt
}

// Reply generates the assistant reply to a single, already validated message
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if !s.configured {
		return "", fmt.Errorf("%w: %w", ErrNotConfigured, llm.ErrNotConfigured)
	}

	reply, err := s.client.GenerateReply(ctx, message, s.systemPrompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}
	return reply, nil
}
