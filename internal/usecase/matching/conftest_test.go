package matching

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/dealbridge/matchmaker/internal/domain"
)

type mockEmbeddings struct {
	getByTargetFn   func(ctx context.Context, targetID string, kind domain.Kind) (domain.Embedding, error)
	getByIDFn       func(ctx context.Context, id string) (domain.Embedding, error)
	searchNearestFn func(ctx context.Context, vector []float32, kind domain.Kind, k int) ([]domain.Neighbor, error)
}

func (m *mockEmbeddings) GetByTarget(ctx context.Context, targetID string, kind domain.Kind) (domain.Embedding, error) {
	if m.getByTargetFn != nil {
		return m.getByTargetFn(ctx, targetID, kind)
	}
	return domain.Embedding{}, domain.ErrEmbeddingNotFound
}

func (m *mockEmbeddings) GetByID(ctx context.Context, id string) (domain.Embedding, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return domain.Embedding{}, domain.ErrEmbeddingNotFound
}

func (m *mockEmbeddings) SearchNearest(ctx context.Context, vector []float32, kind domain.Kind, k int) ([]domain.Neighbor, error) {
	if m.searchNearestFn != nil {
		return m.searchNearestFn(ctx, vector, kind, k)
	}
	return nil, nil
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

func newTestService(t *testing.T) (*Service, *mockEmbeddings, *mockDeals, *mockContacts) {
	t.Helper()
	me := &mockEmbeddings{}
	md := &mockDeals{}
	mc := &mockContacts{}
	return New(me, md, mc, 10, zap.NewNop()), me, md, mc
}
