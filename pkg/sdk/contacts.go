package matchmaker

import (
	"context"
	"fmt"
	"time"

	"github.com/dealbridge/matchmaker/internal/domain"
)

// ContactService manages contacts, their criteria and buyer-side matching.
type ContactService struct {
	c *Client
}

// Upsert creates or replaces a contact.
func (s *ContactService) Upsert(ctx context.Context, c Contact) (err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("contact.upsert", start, err) }()

	if err := s.c.contacts.Upsert(ctx, toInternalContact(c)); err != nil {
		return fmt.Errorf("upsert contact: %w", err)
	}
	return nil
}

// Get fetches a contact by id.
func (s *ContactService) Get(ctx context.Context, id string) (_ Contact, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("contact.get", start, err) }()

	contact, err := s.c.contacts.Get(ctx, id)
	if err != nil {
		return Contact{}, fmt.Errorf("get contact: %w", err)
	}
	return fromInternalContact(contact), nil
}

// Delete removes a contact, its criteria and its embedding.
func (s *ContactService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("contact.delete", start, err) }()

	if err := s.c.contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if err := s.c.generator.DeleteTarget(ctx, id, domain.KindBuyer); err != nil {
		return fmt.Errorf("delete contact embedding: %w", err)
	}
	return nil
}

// SetCriteria creates or replaces a contact's acquisition criteria.
// The contact must exist.
func (s *ContactService) SetCriteria(ctx context.Context, contactID string, cr Criteria) (err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("contact.set_criteria", start, err) }()

	if err := s.c.contacts.UpsertCriteria(ctx, toInternalCriteria(contactID, cr)); err != nil {
		return fmt.Errorf("set criteria: %w", err)
	}
	return nil
}

// Criteria fetches a contact's acquisition criteria.
func (s *ContactService) Criteria(ctx context.Context, contactID string) (_ Criteria, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("contact.get_criteria", start, err) }()

	bc, err := s.c.contacts.GetCriteria(ctx, contactID)
	if err != nil {
		return Criteria{}, fmt.Errorf("get criteria: %w", err)
	}
	return fromInternalCriteria(bc), nil
}

// DeleteCriteria removes a contact's acquisition criteria.
func (s *ContactService) DeleteCriteria(ctx context.Context, contactID string) (err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("contact.delete_criteria", start, err) }()

	if err := s.c.contacts.DeleteCriteria(ctx, contactID); err != nil {
		return fmt.Errorf("delete criteria: %w", err)
	}
	return nil
}

// Embed generates (or refreshes) the contact's buyer-profile embedding.
func (s *ContactService) Embed(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("contact.embed", start, err) }()

	if err := s.c.generator.GenerateBuyer(ctx, id); err != nil {
		return fmt.Errorf("embed contact: %w", err)
	}
	return nil
}

// MatchDeals returns deal candidates for a buyer in similarity order.
// An unembedded contact yields an empty list, not an error.
func (s *ContactService) MatchDeals(ctx context.Context, id string) (_ []DealMatch, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("contact.match", start, err) }()

	internal, err := s.c.matcher.FindMatchingDeals(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("match deals: %w", err)
	}
	matches := make([]DealMatch, 0, len(internal))
	for _, m := range internal {
		matches = append(matches, fromInternalDealMatch(m))
	}
	return matches, nil
}
