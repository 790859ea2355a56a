// Package contact persists contacts and their buyer criteria as JSON
// documents. Criteria live under their own key, 1:1 with the contact id,
// so a contact without criteria stays a plain contact.
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dealbridge/matchmaker/internal/db"
	"github.com/dealbridge/matchmaker/internal/domain"
)

const (
	contactPrefix  = domain.KeyPrefix + "contact:"
	criteriaPrefix = domain.KeyPrefix + "criteria:"
)

type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

type Repo struct {
	store store
}

func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert writes the contact document, replacing any previous version.
func (r *Repo) Upsert(ctx context.Context, c domain.Contact) error {
	if c.ID == "" {
		return fmt.Errorf("contact id is empty: %w", domain.ErrInvalidRecord)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal contact %s: %w", c.ID, err)
	}
	if err := r.store.JSONSet(ctx, contactKey(c.ID), "$", data); err != nil {
		return fmt.Errorf("set contact %s: %w", c.ID, err)
	}
	return nil
}

// Get returns the contact by id, or domain.ErrContactNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domain.Contact, error) {
	data, err := r.store.JSONGet(ctx, contactKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Contact{}, domain.ErrContactNotFound
		}
		return domain.Contact{}, fmt.Errorf("get contact %s: %w", id, err)
	}

	var c domain.Contact
	if err := json.Unmarshal(data, &c); err != nil {
		return domain.Contact{}, fmt.Errorf("unmarshal contact %s: %w", id, err)
	}
	return c, nil
}

// Delete removes the contact and its criteria. Missing keys are a no-op.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, contactKey(id)); err != nil {
		return fmt.Errorf("delete contact %s: %w", id, err)
	}
	if err := r.store.Del(ctx, criteriaKey(id)); err != nil {
		return fmt.Errorf("delete criteria %s: %w", id, err)
	}
	return nil
}

// List returns all stored contacts. Order is not defined.
func (r *Repo) List(ctx context.Context) ([]domain.Contact, error) {
	keys, err := r.store.Scan(ctx, contactPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan contacts: %w", err)
	}

	contacts := make([]domain.Contact, 0, len(keys))
	for _, k := range keys {
		c, err := r.Get(ctx, strings.TrimPrefix(k, contactPrefix))
		if err != nil {
			if errors.Is(err, domain.ErrContactNotFound) {
				continue
			}
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// ListBuyers returns every contact that has criteria on record, joined
// with those criteria. Contacts deleted out from under their criteria are
// skipped.
func (r *Repo) ListBuyers(ctx context.Context) ([]domain.Buyer, error) {
	keys, err := r.store.Scan(ctx, criteriaPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan criteria: %w", err)
	}

	buyers := make([]domain.Buyer, 0, len(keys))
	for _, k := range keys {
		contactID := strings.TrimPrefix(k, criteriaPrefix)

		bc, err := r.GetCriteria(ctx, contactID)
		if err != nil {
			if errors.Is(err, domain.ErrCriteriaNotFound) {
				continue
			}
			return nil, err
		}
		c, err := r.Get(ctx, contactID)
		if err != nil {
			if errors.Is(err, domain.ErrContactNotFound) {
				continue
			}
			return nil, err
		}
		buyers = append(buyers, domain.Buyer{Contact: c, Criteria: bc})
	}
	return buyers, nil
}

// GetCriteria returns the buyer criteria for a contact, or
// domain.ErrCriteriaNotFound when none were recorded.
func (r *Repo) GetCriteria(ctx context.Context, contactID string) (domain.BuyerCriteria, error) {
	data, err := r.store.JSONGet(ctx, criteriaKey(contactID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.BuyerCriteria{}, domain.ErrCriteriaNotFound
		}
		return domain.BuyerCriteria{}, fmt.Errorf("get criteria %s: %w", contactID, err)
	}

	var bc domain.BuyerCriteria
	if err := json.Unmarshal(data, &bc); err != nil {
		return domain.BuyerCriteria{}, fmt.Errorf("unmarshal criteria %s: %w", contactID, err)
	}
	return bc, nil
}

// UpsertCriteria writes the buyer criteria for a contact. The contact
// itself must already exist.
func (r *Repo) UpsertCriteria(ctx context.Context, bc domain.BuyerCriteria) error {
	if bc.ContactID == "" {
		return fmt.Errorf("criteria contact id is empty: %w", domain.ErrInvalidRecord)
	}
	if _, err := r.Get(ctx, bc.ContactID); err != nil {
		return err
	}

	data, err := json.Marshal(bc)
	if err != nil {
		return fmt.Errorf("marshal criteria %s: %w", bc.ContactID, err)
	}
	if err := r.store.JSONSet(ctx, criteriaKey(bc.ContactID), "$", data); err != nil {
		return fmt.Errorf("set criteria %s: %w", bc.ContactID, err)
	}
	return nil
}

// DeleteCriteria removes the criteria document. A no-op when absent.
func (r *Repo) DeleteCriteria(ctx context.Context, contactID string) error {
	if err := r.store.Del(ctx, criteriaKey(contactID)); err != nil {
		return fmt.Errorf("delete criteria %s: %w", contactID, err)
	}
	return nil
}

func contactKey(id string) string {
	return contactPrefix + id
}

func criteriaKey(contactID string) string {
	return criteriaPrefix + contactID
}
