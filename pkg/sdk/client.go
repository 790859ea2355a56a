package matchmaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dealbridge/matchmaker/internal/db"
	dbRedis "github.com/dealbridge/matchmaker/internal/db/redis"
	"github.com/dealbridge/matchmaker/internal/domain"
	"github.com/dealbridge/matchmaker/internal/metrics"
	contactrepo "github.com/dealbridge/matchmaker/internal/repository/contact"
	dealrepo "github.com/dealbridge/matchmaker/internal/repository/deal"
	"github.com/dealbridge/matchmaker/internal/repository/embcache"
	embeddingrepo "github.com/dealbridge/matchmaker/internal/repository/embedding"
	openaiProvider "github.com/dealbridge/matchmaker/internal/transport/openai"
	embeddinguc "github.com/dealbridge/matchmaker/internal/usecase/embedding"
	explainuc "github.com/dealbridge/matchmaker/internal/usecase/explain"
	healthuc "github.com/dealbridge/matchmaker/internal/usecase/health"
	matchinguc "github.com/dealbridge/matchmaker/internal/usecase/matching"
	scoringuc "github.com/dealbridge/matchmaker/internal/usecase/scoring"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for test substitution.
type dealStore interface {
	Upsert(ctx context.Context, d domain.Deal) error
	Get(ctx context.Context, id string) (domain.Deal, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Deal, error)
}

type contactStore interface {
	Upsert(ctx context.Context, c domain.Contact) error
	Get(ctx context.Context, id string) (domain.Contact, error)
	Delete(ctx context.Context, id string) error
	ListBuyers(ctx context.Context) ([]domain.Buyer, error)
	GetCriteria(ctx context.Context, contactID string) (domain.BuyerCriteria, error)
	UpsertCriteria(ctx context.Context, bc domain.BuyerCriteria) error
	DeleteCriteria(ctx context.Context, contactID string) error
}

type generatorUseCase interface {
	GenerateDeal(ctx context.Context, dealID string) error
	GenerateBuyer(ctx context.Context, contactID string) error
	DeleteTarget(ctx context.Context, targetID string, kind domain.Kind) error
}

type matcherUseCase interface {
	FindMatchingBuyers(ctx context.Context, dealID string) ([]domain.BuyerMatch, error)
	FindMatchingBuyersScored(ctx context.Context, dealID string) ([]domain.BuyerMatch, error)
	FindMatchingDeals(ctx context.Context, contactID string) ([]domain.DealMatch, error)
}

type scorerUseCase interface {
	CalculateMatchScore(ctx context.Context, dealID, contactID string) (domain.ScoreReport, error)
}

type explainerUseCase interface {
	Explain(ctx context.Context, dealID, contactID string) (string, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the matchmaker SDK entry point.
type Client struct {
	store     db.Store
	deals     dealStore
	contacts  contactStore
	generator generatorUseCase
	matcher   matcherUseCase
	scorer    scorerUseCase
	explainer explainerUseCase // nil unless WithExplain was given
	healthSvc healthUseCase
	obs       *observer
}

// New creates a matchmaker Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		model:           "text-embedding-3-small",
		dimensions:      1536,
		topK:            matchinguc.DefaultTopK,
		hnswM:           32,
		hnswEFConstruct: 400,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("matchmaker: database address required (use WithRedis)")
	}
	if cfg.embedder == nil && cfg.apiKey == "" {
		return nil, errors.New("matchmaker: embedding provider required (use WithOpenAI or WithEmbedder)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("matchmaker: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("matchmaker: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	return wireClient(ctx, store, cfg, obs)
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	embRepo := embeddingrepo.New(store, cfg.dimensions).
		WithHNSW(embeddingrepo.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		})
	if err := embRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("matchmaker: ensure vector index: %w", err)
	}
	dealRepo := dealrepo.New(store)
	contactRepo := contactrepo.New(store)

	var base domain.Embedder
	var healthEmbedder healthuc.EmbeddingChecker
	if cfg.embedder != nil {
		base = embedderAdapter{inner: cfg.embedder}
	} else {
		oai := openaiProvider.NewEmbedder(&openaiProvider.Config{
			APIKey:     cfg.apiKey,
			BaseURL:    cfg.baseURL,
			Model:      cfg.model,
			Dimensions: cfg.dimensions,
			Provider:   "openai",
			Logger:     logger,
		})
		base = oai
		healthEmbedder = oai
	}
	embedder := embcache.New(base, store, cfg.cacheTTL, metrics.EmbeddingCacheTotal, logger)

	c := &Client{
		store:     store,
		deals:     dealRepo,
		contacts:  contactRepo,
		generator: embeddinguc.New(embRepo, dealRepo, contactRepo, embedder, logger),
		matcher:   matchinguc.New(embRepo, dealRepo, contactRepo, cfg.topK, logger),
		scorer:    scoringuc.New(dealRepo, contactRepo),
		healthSvc: healthuc.New(store, store, embRepo.IndexName(), healthEmbedder),
		obs:       obs,
	}

	if cfg.explainModel != "" {
		completer := openaiProvider.NewCompleter(&openaiProvider.CompleterConfig{
			APIKey:  cfg.apiKey,
			BaseURL: cfg.baseURL,
			Model:   cfg.explainModel,
			Logger:  logger,
		})
		c.explainer = explainuc.New(completer, dealRepo, contactRepo)
	}

	return c, nil
}

// Close releases the database connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// Deals returns the deal service.
func (c *Client) Deals() *DealService {
	return &DealService{c: c}
}

// Contacts returns the contact service.
func (c *Client) Contacts() *ContactService {
	return &ContactService{c: c}
}

// Score computes the deterministic criteria score for a (deal, contact) pair.
func (c *Client) Score(ctx context.Context, dealID, contactID string) (_ ScoreReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("score", start, err) }()

	report, err := c.scorer.CalculateMatchScore(ctx, dealID, contactID)
	if err != nil {
		return ScoreReport{}, fmt.Errorf("score: %w", err)
	}
	return fromInternalReport(report), nil
}

// Explain produces a one-sentence match rationale.
// Requires WithExplain; returns an error otherwise.
func (c *Client) Explain(ctx context.Context, dealID, contactID string) (_ string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("explain", start, err) }()

	if c.explainer == nil {
		return "", errors.New("matchmaker: explanations not enabled (use WithExplain)")
	}
	text, err := c.explainer.Explain(ctx, dealID, contactID)
	if err != nil {
		return "", fmt.Errorf("explain: %w", err)
	}
	return text, nil
}

// Buyers lists all contacts that have acquisition criteria.
func (c *Client) Buyers(ctx context.Context) (_ []Buyer, err error) {
	start := time.Now()
	defer func() { c.obs.observe("buyers", start, err) }()

	internal, err := c.contacts.ListBuyers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list buyers: %w", err)
	}
	buyers := make([]Buyer, 0, len(internal))
	for _, b := range internal {
		buyers = append(buyers, Buyer{
			Contact:  fromInternalContact(b.Contact),
			Criteria: fromInternalCriteria(b.Criteria),
		})
	}
	return buyers, nil
}
