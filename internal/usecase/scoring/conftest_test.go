package scoring

import (
	"context"
	"testing"

	"github.com/dealbridge/matchmaker/internal/domain"
)

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

func newTestService(t *testing.T) (*Service, *mockDeals, *mockContacts) {
	t.Helper()
	md := &mockDeals{}
	mc := &mockContacts{}
	return New(md, mc), md, mc
}
