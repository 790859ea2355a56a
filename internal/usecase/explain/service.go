// Package explain produces a one-sentence LLM justification for a
// (deal, buyer) pairing. It is presentation sugar on top of matching;
// scores never depend on it.
package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/dealbridge/matchmaker/internal/domain"
)

// Completer produces a chat completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// DealReader resolves deal records.
type DealReader interface {
	Get(ctx context.Context, id string) (domain.Deal, error)
}

// ContactReader resolves contact records.
type ContactReader interface {
	Get(ctx context.Context, id string) (domain.Contact, error)
}

// Service explains why a buyer fits a deal.
type Service struct {
	completer Completer
	deals     DealReader
	contacts  ContactReader
}

// New creates an explanation service.
func New(completer Completer, deals DealReader, contacts ContactReader) *Service {
	return &Service{completer: completer, deals: deals, contacts: contacts}
}

// Explain returns a one-sentence rationale for the pairing. Both records
// must exist; provider failures surface as ErrExplainProviderError.
func (s *Service) Explain(ctx context.Context, dealID, contactID string) (string, error) {
	deal, err := s.deals.Get(ctx, dealID)
	if err != nil {
		return "", fmt.Errorf("get deal: %w", err)
	}
	contact, err := s.contacts.Get(ctx, contactID)
	if err != nil {
		return "", fmt.Errorf("get contact: %w", err)
	}

	explanation, err := s.completer.Complete(ctx, buildPrompt(deal, contact))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrExplainProviderError, err)
	}
	return strings.TrimSpace(explanation), nil
}

func buildPrompt(deal domain.Deal, contact domain.Contact) string {
	return fmt.Sprintf(
		"Context: M&A deal matchmaking.\n"+
			"Target deal: %s (amount: %d, stage: %s)\n"+
			"Potential acquirer: %s (company: %s, role: %s, tags: %s)\n\n"+
			"Task: explain in ONE concise sentence why this acquirer is relevant for this deal.",
		deal.Title, deal.Amount, deal.Stage,
		contact.FullName, contact.CompanyName, contact.Role, strings.Join(contact.Tags, ", "),
	)
}
