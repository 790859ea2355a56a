// Package deal persists deal records as JSON documents.
package deal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dealbridge/matchmaker/internal/db"
	"github.com/dealbridge/matchmaker/internal/domain"
)

const keyPrefix = domain.KeyPrefix + "deal:"

type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores deals at mm:deal:<id>.
type Repo struct {
	store store
}

func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert writes the deal document, replacing any previous version.
func (r *Repo) Upsert(ctx context.Context, d domain.Deal) error {
	if d.ID == "" {
		return fmt.Errorf("deal id is empty: %w", domain.ErrInvalidRecord)
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal deal %s: %w", d.ID, err)
	}
	if err := r.store.JSONSet(ctx, key(d.ID), "$", data); err != nil {
		return fmt.Errorf("set deal %s: %w", d.ID, err)
	}
	return nil
}

// Get returns the deal by id, or domain.ErrDealNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domain.Deal, error) {
	data, err := r.store.JSONGet(ctx, key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Deal{}, domain.ErrDealNotFound
		}
		return domain.Deal{}, fmt.Errorf("get deal %s: %w", id, err)
	}

	var d domain.Deal
	if err := json.Unmarshal(data, &d); err != nil {
		return domain.Deal{}, fmt.Errorf("unmarshal deal %s: %w", id, err)
	}
	return d, nil
}

// Delete removes the deal document. Deleting a missing deal is a no-op.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, key(id)); err != nil {
		return fmt.Errorf("delete deal %s: %w", id, err)
	}
	return nil
}

// List returns all stored deals. Order is not defined.
func (r *Repo) List(ctx context.Context) ([]domain.Deal, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan deals: %w", err)
	}

	deals := make([]domain.Deal, 0, len(keys))
	for _, k := range keys {
		d, err := r.Get(ctx, strings.TrimPrefix(k, keyPrefix))
		if err != nil {
			if errors.Is(err, domain.ErrDealNotFound) {
				continue // deleted between scan and get
			}
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, nil
}

func key(id string) string {
	return keyPrefix + id
}
