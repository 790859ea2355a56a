// Package chi is the HTTP transport: a hand-routed JSON API over the
// matchmaking usecases.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dealbridge/matchmaker/internal/domain"
	"github.com/dealbridge/matchmaker/internal/logger"
	"github.com/dealbridge/matchmaker/internal/metrics"
	healthuc "github.com/dealbridge/matchmaker/internal/usecase/health"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeDimMismatch      = "vector_dim_mismatch"
	codeProviderError    = "provider_error"
	codeNotConfigured    = "not_configured"
	codeInternalError    = "internal_error"
)

// errorMapping binds a domain sentinel to its HTTP representation.
type errorMapping struct {
	sentinel error
	status   int
	code     string
}

// Server routes the matchmaking API.
type Server struct {
	deals     DealStore
	contacts  ContactStore
	generator Generator
	matcher   Matcher
	scorer    Scorer
	explainer Explainer // nil when the explain provider is disabled
	health    HealthChecker
	logger    *zap.Logger
	mappings  []errorMapping
}

// NewServer creates an HTTP API server. explainer may be nil.
func NewServer(
	deals DealStore,
	contacts ContactStore,
	generator Generator,
	matcher Matcher,
	scorer Scorer,
	explainer Explainer,
	health HealthChecker,
	log *zap.Logger,
) *Server {
	return &Server{
		deals:     deals,
		contacts:  contacts,
		generator: generator,
		matcher:   matcher,
		scorer:    scorer,
		explainer: explainer,
		health:    health,
		logger:    log,
		mappings: []errorMapping{
			{domain.ErrDealNotFound, http.StatusNotFound, codeNotFound},
			{domain.ErrContactNotFound, http.StatusNotFound, codeNotFound},
			{domain.ErrCriteriaNotFound, http.StatusNotFound, codeNotFound},
			{domain.ErrEmbeddingNotFound, http.StatusNotFound, codeNotFound},
			{domain.ErrVectorDimMismatch, http.StatusBadRequest, codeDimMismatch},
			{domain.ErrInvalidRecord, http.StatusBadRequest, codeValidationFailed},
			{domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError},
			{domain.ErrExplainProviderError, http.StatusBadGateway, codeProviderError},
		},
	}
}

// Router builds the chi router with the middleware stack applied.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(metrics.Middleware())
	r.Use(s.jsonRecoverer)
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", s.handleListDeals)
			r.Route("/{dealID}", func(r chi.Router) {
				r.Put("/", s.handleUpsertDeal)
				r.Get("/", s.handleGetDeal)
				r.Delete("/", s.handleDeleteDeal)
				r.Post("/embedding", s.handleEmbedDeal)
				r.Get("/matches", s.handleDealMatches)
				r.Get("/score/{contactID}", s.handleScore)
				r.Get("/explain/{contactID}", s.handleExplain)
			})
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Route("/{contactID}", func(r chi.Router) {
				r.Put("/", s.handleUpsertContact)
				r.Get("/", s.handleGetContact)
				r.Delete("/", s.handleDeleteContact)
				r.Put("/criteria", s.handleUpsertCriteria)
				r.Delete("/criteria", s.handleDeleteCriteria)
				r.Post("/embedding", s.handleEmbedContact)
				r.Get("/matches", s.handleContactMatches)
			})
		})

		r.Get("/buyers", s.handleListBuyers)
	})

	return r
}

// --- Deals ---

func (s *Server) handleUpsertDeal(w http.ResponseWriter, r *http.Request) {
	var deal domain.Deal
	if err := json.NewDecoder(r.Body).Decode(&deal); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	deal.ID = chi.URLParam(r, "dealID")
	if deal.Title == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "deal title is required")
		return
	}

	if err := s.deals.Upsert(r.Context(), deal); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (s *Server) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	deal, err := s.deals.Get(r.Context(), chi.URLParam(r, "dealID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (s *Server) handleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dealID")
	if err := s.deals.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	// Embedding cleanup: deleted deals must stop surfacing as candidates.
	if err := s.generator.DeleteTarget(r.Context(), id, domain.KindDeal); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := s.deals.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": deals})
}

func (s *Server) handleEmbedDeal(w http.ResponseWriter, r *http.Request) {
	if err := s.generator.GenerateDeal(r.Context(), chi.URLParam(r, "dealID")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"embedded": true})
}

func (s *Server) handleDealMatches(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dealID")

	var matches []domain.BuyerMatch
	var err error
	if r.URL.Query().Get("scored") == "true" {
		matches, err = s.matcher.FindMatchingBuyersScored(r.Context(), id)
	} else {
		matches, err = s.matcher.FindMatchingBuyers(r.Context(), id)
	}
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if matches == nil {
		matches = []domain.BuyerMatch{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": matches})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	report, err := s.scorer.CalculateMatchScore(r.Context(),
		chi.URLParam(r, "dealID"), chi.URLParam(r, "contactID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	if s.explainer == nil {
		writeError(w, http.StatusNotImplemented, codeNotConfigured, "explanation provider is not configured")
		return
	}

	explanation, err := s.explainer.Explain(r.Context(),
		chi.URLParam(r, "dealID"), chi.URLParam(r, "contactID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

// --- Contacts ---

func (s *Server) handleUpsertContact(w http.ResponseWriter, r *http.Request) {
	var contact domain.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	contact.ID = chi.URLParam(r, "contactID")
	if contact.FullName == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "contact full_name is required")
		return
	}

	if err := s.contacts.Upsert(r.Context(), contact); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")
	contact, err := s.contacts.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := map[string]any{"contact": contact}
	if bc, err := s.contacts.GetCriteria(r.Context(), id); err == nil {
		resp["criteria"] = bc
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")
	if err := s.contacts.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := s.generator.DeleteTarget(r.Context(), id, domain.KindBuyer); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpsertCriteria(w http.ResponseWriter, r *http.Request) {
	var bc domain.BuyerCriteria
	if err := json.NewDecoder(r.Body).Decode(&bc); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	bc.ContactID = chi.URLParam(r, "contactID")

	if err := s.contacts.UpsertCriteria(r.Context(), bc); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bc)
}

func (s *Server) handleDeleteCriteria(w http.ResponseWriter, r *http.Request) {
	if err := s.contacts.DeleteCriteria(r.Context(), chi.URLParam(r, "contactID")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEmbedContact(w http.ResponseWriter, r *http.Request) {
	if err := s.generator.GenerateBuyer(r.Context(), chi.URLParam(r, "contactID")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"embedded": true})
}

func (s *Server) handleContactMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.matcher.FindMatchingDeals(r.Context(), chi.URLParam(r, "contactID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if matches == nil {
		matches = []domain.DealMatch{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": matches})
}

func (s *Server) handleListBuyers(w http.ResponseWriter, r *http.Request) {
	buyers, err := s.contacts.ListBuyers(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": buyers})
}

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// --- Error handling ---

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	for _, m := range s.mappings {
		if errors.Is(err, m.sentinel) {
			log.Warn("Request failed", zap.Error(err))
			writeError(w, m.status, m.code, m.sentinel.Error())
			return
		}
	}
	log.Error("Internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// jsonRecoverer converts panics into a JSON 500 instead of a broken body.
func (s *Server) jsonRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
				)
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
