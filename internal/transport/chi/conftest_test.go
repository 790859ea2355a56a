package chi

import (
	"context"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/dealbridge/matchmaker/internal/domain"
	healthuc "github.com/dealbridge/matchmaker/internal/usecase/health"
)

type mockDeals struct {
	upsertFn func(ctx context.Context, d domain.Deal) error
	getFn    func(ctx context.Context, id string) (domain.Deal, error)
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context) ([]domain.Deal, error)
}

func (m *mockDeals) Upsert(ctx context.Context, d domain.Deal) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, d)
	}
	return nil
}

func (m *mockDeals) Get(ctx context.Context, id string) (domain.Deal, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Deal{}, domain.ErrDealNotFound
}

func (m *mockDeals) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockDeals) List(ctx context.Context) ([]domain.Deal, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockContacts struct {
	upsertFn         func(ctx context.Context, c domain.Contact) error
	getFn            func(ctx context.Context, id string) (domain.Contact, error)
	deleteFn         func(ctx context.Context, id string) error
	listBuyersFn     func(ctx context.Context) ([]domain.Buyer, error)
	getCriteriaFn    func(ctx context.Context, contactID string) (domain.BuyerCriteria, error)
	upsertCriteriaFn func(ctx context.Context, bc domain.BuyerCriteria) error
	deleteCriteriaFn func(ctx context.Context, contactID string) error
}

func (m *mockContacts) Upsert(ctx context.Context, c domain.Contact) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, c)
	}
	return nil
}

func (m *mockContacts) Get(ctx context.Context, id string) (domain.Contact, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Contact{}, domain.ErrContactNotFound
}

func (m *mockContacts) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockContacts) ListBuyers(ctx context.Context) ([]domain.Buyer, error) {
	if m.listBuyersFn != nil {
		return m.listBuyersFn(ctx)
	}
	return nil, nil
}

func (m *mockContacts) GetCriteria(ctx context.Context, contactID string) (domain.BuyerCriteria, error) {
	if m.getCriteriaFn != nil {
		return m.getCriteriaFn(ctx, contactID)
	}
	return domain.BuyerCriteria{}, domain.ErrCriteriaNotFound
}

func (m *mockContacts) UpsertCriteria(ctx context.Context, bc domain.BuyerCriteria) error {
	if m.upsertCriteriaFn != nil {
		return m.upsertCriteriaFn(ctx, bc)
	}
	return nil
}

func (m *mockContacts) DeleteCriteria(ctx context.Context, contactID string) error {
	if m.deleteCriteriaFn != nil {
		return m.deleteCriteriaFn(ctx, contactID)
	}
	return nil
}

type mockGenerator struct {
	generateDealFn  func(ctx context.Context, dealID string) error
	generateBuyerFn func(ctx context.Context, contactID string) error
	deleteTargetFn  func(ctx context.Context, targetID string, kind domain.Kind) error
}

func (m *mockGenerator) GenerateDeal(ctx context.Context, dealID string) error {
	if m.generateDealFn != nil {
		return m.generateDealFn(ctx, dealID)
	}
	return nil
}

func (m *mockGenerator) GenerateBuyer(ctx context.Context, contactID string) error {
	if m.generateBuyerFn != nil {
		return m.generateBuyerFn(ctx, contactID)
	}
	return nil
}

func (m *mockGenerator) DeleteTarget(ctx context.Context, targetID string, kind domain.Kind) error {
	if m.deleteTargetFn != nil {
		return m.deleteTargetFn(ctx, targetID, kind)
	}
	return nil
}

type mockMatcher struct {
	findBuyersFn       func(ctx context.Context, dealID string) ([]domain.BuyerMatch, error)
	findBuyersScoredFn func(ctx context.Context, dealID string) ([]domain.BuyerMatch, error)
	findDealsFn        func(ctx context.Context, contactID string) ([]domain.DealMatch, error)
}

func (m *mockMatcher) FindMatchingBuyers(ctx context.Context, dealID string) ([]domain.BuyerMatch, error) {
	if m.findBuyersFn != nil {
		return m.findBuyersFn(ctx, dealID)
	}
	return nil, nil
}

func (m *mockMatcher) FindMatchingBuyersScored(ctx context.Context, dealID string) ([]domain.BuyerMatch, error) {
	if m.findBuyersScoredFn != nil {
		return m.findBuyersScoredFn(ctx, dealID)
	}
	return nil, nil
}

func (m *mockMatcher) FindMatchingDeals(ctx context.Context, contactID string) ([]domain.DealMatch, error) {
	if m.findDealsFn != nil {
		return m.findDealsFn(ctx, contactID)
	}
	return nil, nil
}

type mockScorer struct {
	scoreFn func(ctx context.Context, dealID, contactID string) (domain.ScoreReport, error)
}

func (m *mockScorer) CalculateMatchScore(ctx context.Context, dealID, contactID string) (domain.ScoreReport, error) {
	if m.scoreFn != nil {
		return m.scoreFn(ctx, dealID, contactID)
	}
	return domain.ScoreReport{}, nil
}

type mockExplainer struct {
	explainFn func(ctx context.Context, dealID, contactID string) (string, error)
}

func (m *mockExplainer) Explain(ctx context.Context, dealID, contactID string) (string, error) {
	if m.explainFn != nil {
		return m.explainFn(ctx, dealID, contactID)
	}
	return "", nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	if m.report.Status == "" {
		return healthuc.Report{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{}}
	}
	return m.report
}

type testServer struct {
	srv      *Server
	deals    *mockDeals
	contacts *mockContacts
	gen      *mockGenerator
	matcher  *mockMatcher
	scorer   *mockScorer
	explain  *mockExplainer
	health   *mockHealth
}

func newTestServer(t *testing.T) (*testServer, http.Handler) {
	t.Helper()
	ts := &testServer{
		deals:    &mockDeals{},
		contacts: &mockContacts{},
		gen:      &mockGenerator{},
		matcher:  &mockMatcher{},
		scorer:   &mockScorer{},
		explain:  &mockExplainer{},
		health:   &mockHealth{},
	}
	ts.srv = NewServer(ts.deals, ts.contacts, ts.gen, ts.matcher, ts.scorer, ts.explain, ts.health, zap.NewNop())
	return ts, ts.srv.Router(nil)
}
