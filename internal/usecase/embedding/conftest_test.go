package embedding

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/dealbridge/matchmaker/internal/domain"
)

type mockStore struct {
	upsertFn func(ctx context.Context, targetID string, kind domain.Kind, vector []float32) error
	deleteFn func(ctx context.Context, targetID string, kind domain.Kind) error
}

func (m *mockStore) Upsert(ctx context.Context, targetID string, kind domain.Kind, vector []float32) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, targetID, kind, vector)
	}
	return nil
}

func (m *mockStore) DeleteByTarget(ctx context.Context, targetID string, kind domain.Kind) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, targetID, kind)
	}
	return nil
}

type mockDeals struct {
	getFn func(ctx context.Context, id string) (domain.Deal, error)
}

func (m *mockDeals) Get(ctx context.Context, id string) (domain.Deal, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Deal{}, domain.ErrDealNotFound
}

type mockContacts struct {
	getFn         func(ctx context.Context, id string) (domain.Contact, error)
	getCriteriaFn func(ctx context.Context, contactID string) (domain.BuyerCriteria, error)
}

func (m *mockContacts) Get(ctx context.Context, id string) (domain.Contact, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Contact{}, domain.ErrContactNotFound
}

func (m *mockContacts) GetCriteria(ctx context.Context, contactID string) (domain.BuyerCriteria, error) {
	if m.getCriteriaFn != nil {
		return m.getCriteriaFn(ctx, contactID)
	}
	return domain.BuyerCriteria{}, domain.ErrCriteriaNotFound
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0}}, nil
}

func newTestService(t *testing.T) (*Service, *mockStore, *mockDeals, *mockContacts, *mockEmbedder) {
	t.Helper()
	ms := &mockStore{}
	md := &mockDeals{}
	mc := &mockContacts{}
	me := &mockEmbedder{}
	return New(ms, md, mc, me, zap.NewNop()), ms, md, mc, me
}
