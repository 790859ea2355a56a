package matchmaker

import (
	"context"

	"github.com/dealbridge/matchmaker/internal/domain"
	healthuc "github.com/dealbridge/matchmaker/internal/usecase/health"
)

// --- dealStore mock ---

type mockDealStore struct {
	upsertFn func(ctx context.Context, d domain.Deal) error
	getFn    func(ctx context.Context, id string) (domain.Deal, error)
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context) ([]domain.Deal, error)
}

func (m *mockDealStore) Upsert(ctx context.Context, d domain.Deal) error {
	return m.upsertFn(ctx, d)
}

func (m *mockDealStore) Get(ctx context.Context, id string) (domain.Deal, error) {
	return m.getFn(ctx, id)
}

func (m *mockDealStore) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockDealStore) List(ctx context.Context) ([]domain.Deal, error) {
	return m.listFn(ctx)
}

// --- contactStore mock ---

type mockContactStore struct {
	upsertFn         func(ctx context.Context, c domain.Contact) error
	getFn            func(ctx context.Context, id string) (domain.Contact, error)
	deleteFn         func(ctx context.Context, id string) error
	listBuyersFn     func(ctx context.Context) ([]domain.Buyer, error)
	getCriteriaFn    func(ctx context.Context, contactID string) (domain.BuyerCriteria, error)
	upsertCriteriaFn func(ctx context.Context, bc domain.BuyerCriteria) error
	deleteCriteriaFn func(ctx context.Context, contactID string) error
}

func (m *mockContactStore) Upsert(ctx context.Context, c domain.Contact) error {
	return m.upsertFn(ctx, c)
}

func (m *mockContactStore) Get(ctx context.Context, id string) (domain.Contact, error) {
	return m.getFn(ctx, id)
}

func (m *mockContactStore) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockContactStore) ListBuyers(ctx context.Context) ([]domain.Buyer, error) {
	return m.listBuyersFn(ctx)
}

func (m *mockContactStore) GetCriteria(ctx context.Context, contactID string) (domain.BuyerCriteria, error) {
	return m.getCriteriaFn(ctx, contactID)
}

func (m *mockContactStore) UpsertCriteria(ctx context.Context, bc domain.BuyerCriteria) error {
	return m.upsertCriteriaFn(ctx, bc)
}

func (m *mockContactStore) DeleteCriteria(ctx context.Context, contactID string) error {
	return m.deleteCriteriaFn(ctx, contactID)
}

// --- generatorUseCase mock ---

type mockGeneratorUC struct {
	generateDealFn  func(ctx context.Context, dealID string) error
	generateBuyerFn func(ctx context.Context, contactID string) error
	deleteTargetFn  func(ctx context.Context, targetID string, kind domain.Kind) error
}

func (m *mockGeneratorUC) GenerateDeal(ctx context.Context, dealID string) error {
	return m.generateDealFn(ctx, dealID)
}

func (m *mockGeneratorUC) GenerateBuyer(ctx context.Context, contactID string) error {
	return m.generateBuyerFn(ctx, contactID)
}

func (m *mockGeneratorUC) DeleteTarget(ctx context.Context, targetID string, kind domain.Kind) error {
	return m.deleteTargetFn(ctx, targetID, kind)
}

// --- matcherUseCase mock ---

type mockMatcherUC struct {
	findBuyersFn       func(ctx context.Context, dealID string) ([]domain.BuyerMatch, error)
	findBuyersScoredFn func(ctx context.Context, dealID string) ([]domain.BuyerMatch, error)
	findDealsFn        func(ctx context.Context, contactID string) ([]domain.DealMatch, error)
}

func (m *mockMatcherUC) FindMatchingBuyers(ctx context.Context, dealID string) ([]domain.BuyerMatch, error) {
	return m.findBuyersFn(ctx, dealID)
}

func (m *mockMatcherUC) FindMatchingBuyersScored(ctx context.Context, dealID string) ([]domain.BuyerMatch, error) {
	return m.findBuyersScoredFn(ctx, dealID)
}

func (m *mockMatcherUC) FindMatchingDeals(ctx context.Context, contactID string) ([]domain.DealMatch, error) {
	return m.findDealsFn(ctx, contactID)
}

// --- scorerUseCase mock ---

type mockScorerUC struct {
	scoreFn func(ctx context.Context, dealID, contactID string) (domain.ScoreReport, error)
}

func (m *mockScorerUC) CalculateMatchScore(ctx context.Context, dealID, contactID string) (domain.ScoreReport, error) {
	return m.scoreFn(ctx, dealID, contactID)
}

// --- explainerUseCase mock ---

type mockExplainerUC struct {
	explainFn func(ctx context.Context, dealID, contactID string) (string, error)
}

func (m *mockExplainerUC) Explain(ctx context.Context, dealID, contactID string) (string, error) {
	return m.explainFn(ctx, dealID, contactID)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
