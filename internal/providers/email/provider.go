package email

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("email delivery is not configured")

// Draft is the generated message for a quotation follow-up.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Provider interface {
	// Compose drafts a follow-up email for a quotation.
	Compose(ctx context.Context, customerName, reference, total string) (Draft, error)

	// Send delivers a drafted message. No transport is wired yet, so
	// this always reports ErrNotConfigured.
	Send(ctx context.Context, to string, draft Draft) error
}

type TemplateProvider struct{}

func New() Provider {
	return &TemplateProvider{}
}

func (p *TemplateProvider) Compose(ctx context.Context, customerName, reference, total string) (Draft, error) {
	if customerName == "" {
		customerName = "Customer"
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nPlease find attached our quotation %s for your project. The total is $%s.\n\nWe would be happy to answer any questions and look forward to working with you.\n\nSincerely,\nRadix Tech",
		customerName, reference, total,
	)
	return Draft{
		Subject: fmt.Sprintf("Quotation %s from Radix Tech", reference),
		Body:    body,
	}, nil
}

func (p *TemplateProvider) Send(ctx context.Context, to string, draft Draft) error {
	return ErrNotConfigured
}
