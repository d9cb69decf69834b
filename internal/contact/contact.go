// Package contact handles contact form submissions through a pluggable
// delivery provider.
package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/techskillsthatpay/content-server/internal/config"
)

// Message is one contact form submission
type Message struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"message" binding:"required"`
}

// Provider delivers a contact message to its destination
type Provider interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// MockProvider logs messages instead of delivering them. It is the
// default until a real email provider is configured.
type MockProvider struct {
	log zerolog.Logger
}

// NewMockProvider creates a log-only provider
func NewMockProvider(log zerolog.Logger) *MockProvider {
	return &MockProvider{log: log.With().Str("component", "contact").Logger()}
}

// Name identifies the provider in logs
func (p *MockProvider) Name() string { return "mock" }

// Send logs the message and succeeds
func (p *MockProvider) Send(ctx context.Context, msg Message) error {
	p.log.Info().
		Str("from", msg.Email).
		Str("name", msg.Name).
		Str("subject", msg.Subject).
		Int("body_len", len(msg.Body)).
		Msg("Contact message received (mock provider, not delivered)")
	return nil
}

// NewProvider selects a provider from configuration
func NewProvider(cfg config.ContactConfig, log zerolog.Logger) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "mock":
		return NewMockProvider(log), nil
	default:
		return nil, fmt.Errorf("unknown contact provider: %s", cfg.Provider)
	}
}
