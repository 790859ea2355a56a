package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dealbridge/matchmaker/internal/domain"
	healthuc "github.com/dealbridge/matchmaker/internal/usecase/health"
)

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, wantStatus, rec.Body.String())
	}
	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["code"] != wantCode {
		t.Errorf("error code = %q, want %q", resp["code"], wantCode)
	}
}

func TestUpsertDeal_IDFromPath(t *testing.T) {
	ts, h := newTestServer(t)

	var stored domain.Deal
	ts.deals.upsertFn = func(_ context.Context, d domain.Deal) error {
		stored = d
		return nil
	}

	rec := doRequest(t, h, http.MethodPut, "/api/v1/deals/deal-1",
		domain.Deal{ID: "ignored", Title: "Acme Logistics", Stage: "qualified", Amount: 1000})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if stored.ID != "deal-1" {
		t.Errorf("stored ID = %q, want path param to win", stored.ID)
	}
	if stored.Title != "Acme Logistics" {
		t.Errorf("stored Title = %q", stored.Title)
	}
}

func TestUpsertDeal_MissingTitle(t *testing.T) {
	ts, h := newTestServer(t)

	called := false
	ts.deals.upsertFn = func(context.Context, domain.Deal) error {
		called = true
		return nil
	}

	rec := doRequest(t, h, http.MethodPut, "/api/v1/deals/deal-1", domain.Deal{Stage: "qualified"})

	assertErrorCode(t, rec, http.StatusBadRequest, codeValidationFailed)
	if called {
		t.Error("store must not be called on validation failure")
	}
}

func TestUpsertDeal_MalformedBody(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/deals/deal-1", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assertErrorCode(t, rec, http.StatusBadRequest, codeBadRequest)
}

func TestGetDeal_NotFound(t *testing.T) {
	_, h := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals/missing", nil)

	assertErrorCode(t, rec, http.StatusNotFound, codeNotFound)
}

func TestGetDeal_Found(t *testing.T) {
	ts, h := newTestServer(t)
	ts.deals.getFn = func(_ context.Context, id string) (domain.Deal, error) {
		return domain.Deal{ID: id, Title: "Acme", Stage: "closing", Amount: 42}, nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals/deal-7", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var deal domain.Deal
	decodeBody(t, rec, &deal)
	if deal.ID != "deal-7" || deal.Amount != 42 {
		t.Errorf("unexpected deal: %+v", deal)
	}
}

func TestDeleteDeal_RemovesEmbeddingToo(t *testing.T) {
	ts, h := newTestServer(t)

	var deletedID string
	var deletedKind domain.Kind
	ts.gen.deleteTargetFn = func(_ context.Context, targetID string, kind domain.Kind) error {
		deletedID = targetID
		deletedKind = kind
		return nil
	}

	rec := doRequest(t, h, http.MethodDelete, "/api/v1/deals/deal-3", nil)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if deletedID != "deal-3" || deletedKind != domain.KindDeal {
		t.Errorf("DeleteTarget(%q, %q), want (deal-3, deal)", deletedID, deletedKind)
	}
}

func TestListDeals(t *testing.T) {
	ts, h := newTestServer(t)
	ts.deals.listFn = func(context.Context) ([]domain.Deal, error) {
		return []domain.Deal{{ID: "d-1", Title: "One"}, {ID: "d-2", Title: "Two"}}, nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []domain.Deal `json:"items"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Items) != 2 {
		t.Errorf("items = %d, want 2", len(resp.Items))
	}
}

func TestEmbedDeal(t *testing.T) {
	ts, h := newTestServer(t)

	var embeddedID string
	ts.gen.generateDealFn = func(_ context.Context, dealID string) error {
		embeddedID = dealID
		return nil
	}

	rec := doRequest(t, h, http.MethodPost, "/api/v1/deals/deal-1/embedding", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if embeddedID != "deal-1" {
		t.Errorf("embedded ID = %q", embeddedID)
	}
	var resp map[string]bool
	decodeBody(t, rec, &resp)
	if !resp["embedded"] {
		t.Error("response should report embedded=true")
	}
}

func TestEmbedDeal_ProviderError(t *testing.T) {
	ts, h := newTestServer(t)
	ts.gen.generateDealFn = func(context.Context, string) error {
		return domain.ErrEmbeddingProviderError
	}

	rec := doRequest(t, h, http.MethodPost, "/api/v1/deals/deal-1/embedding", nil)

	assertErrorCode(t, rec, http.StatusBadGateway, codeProviderError)
}

func TestEmbedDeal_DimensionMismatch(t *testing.T) {
	ts, h := newTestServer(t)
	ts.gen.generateDealFn = func(context.Context, string) error {
		return domain.ErrVectorDimMismatch
	}

	rec := doRequest(t, h, http.MethodPost, "/api/v1/deals/deal-1/embedding", nil)

	assertErrorCode(t, rec, http.StatusBadRequest, codeDimMismatch)
}

func TestDealMatches_Plain(t *testing.T) {
	ts, h := newTestServer(t)

	scoredCalled := false
	ts.matcher.findBuyersFn = func(_ context.Context, dealID string) ([]domain.BuyerMatch, error) {
		return []domain.BuyerMatch{{Score: 0.91, Contact: domain.Contact{ID: "c-1", FullName: "Marie"}}}, nil
	}
	ts.matcher.findBuyersScoredFn = func(context.Context, string) ([]domain.BuyerMatch, error) {
		scoredCalled = true
		return nil, nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals/deal-1/matches", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if scoredCalled {
		t.Error("scored matcher called without scored=true")
	}
	var resp struct {
		Items []domain.BuyerMatch `json:"items"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Items) != 1 || resp.Items[0].Contact.ID != "c-1" {
		t.Errorf("unexpected items: %+v", resp.Items)
	}
}

func TestDealMatches_Scored(t *testing.T) {
	ts, h := newTestServer(t)
	ts.matcher.findBuyersScoredFn = func(context.Context, string) ([]domain.BuyerMatch, error) {
		return []domain.BuyerMatch{{
			Score:   0.8,
			Contact: domain.Contact{ID: "c-1", FullName: "Marie"},
			Report:  &domain.ScoreReport{OverallScore: 80, Recommendation: "Excellent match - contact with priority"},
		}}, nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals/deal-1/matches?scored=true", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []domain.BuyerMatch `json:"items"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Items) != 1 || resp.Items[0].Report == nil || resp.Items[0].Report.OverallScore != 80 {
		t.Errorf("unexpected items: %+v", resp.Items)
	}
}

func TestDealMatches_EmptyIsArrayNotNull(t *testing.T) {
	_, h := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals/deal-1/matches", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Errorf("empty matches should serialize as [], got: %s", rec.Body.String())
	}
}

func TestScore(t *testing.T) {
	ts, h := newTestServer(t)

	var gotDeal, gotContact string
	ts.scorer.scoreFn = func(_ context.Context, dealID, contactID string) (domain.ScoreReport, error) {
		gotDeal, gotContact = dealID, contactID
		return domain.ScoreReport{
			OverallScore:   60,
			Recommendation: "Good match - worth exploring",
			CriteriaMatches: []domain.CriterionMatch{
				{Criterion: "sector", Match: true, Weight: 30},
			},
		}, nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals/deal-1/score/c-1", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotDeal != "deal-1" || gotContact != "c-1" {
		t.Errorf("scored (%q, %q)", gotDeal, gotContact)
	}
	var report domain.ScoreReport
	decodeBody(t, rec, &report)
	if report.OverallScore != 60 || len(report.CriteriaMatches) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestExplain(t *testing.T) {
	ts, h := newTestServer(t)
	ts.explain.explainFn = func(_ context.Context, dealID, contactID string) (string, error) {
		return "Strong sector overlap with the buyer's mandate.", nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals/deal-1/explain/c-1", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["explanation"] == "" {
		t.Error("expected an explanation in the response")
	}
}

func TestExplain_NotConfigured(t *testing.T) {
	ts := &testServer{
		deals:    &mockDeals{},
		contacts: &mockContacts{},
		gen:      &mockGenerator{},
		matcher:  &mockMatcher{},
		scorer:   &mockScorer{},
		health:   &mockHealth{},
	}
	srv := NewServer(ts.deals, ts.contacts, ts.gen, ts.matcher, ts.scorer, nil, ts.health, zap.NewNop())

	rec := doRequest(t, srv.Router(nil), http.MethodGet, "/api/v1/deals/deal-1/explain/c-1", nil)

	assertErrorCode(t, rec, http.StatusNotImplemented, codeNotConfigured)
}

func TestExplain_ProviderError(t *testing.T) {
	ts, h := newTestServer(t)
	ts.explain.explainFn = func(context.Context, string, string) (string, error) {
		return "", domain.ErrExplainProviderError
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals/deal-1/explain/c-1", nil)

	assertErrorCode(t, rec, http.StatusBadGateway, codeProviderError)
}

func TestUpsertContact_MissingName(t *testing.T) {
	_, h := newTestServer(t)

	rec := doRequest(t, h, http.MethodPut, "/api/v1/contacts/c-1", domain.Contact{Role: "partner"})

	assertErrorCode(t, rec, http.StatusBadRequest, codeValidationFailed)
}

func TestGetContact_JoinsCriteria(t *testing.T) {
	ts, h := newTestServer(t)
	ts.contacts.getFn = func(_ context.Context, id string) (domain.Contact, error) {
		return domain.Contact{ID: id, FullName: "Marie Dubois"}, nil
	}
	ts.contacts.getCriteriaFn = func(_ context.Context, contactID string) (domain.BuyerCriteria, error) {
		return domain.BuyerCriteria{ContactID: contactID, Sectors: []string{"tech"}}, nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/contacts/c-1", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Contact  domain.Contact        `json:"contact"`
		Criteria *domain.BuyerCriteria `json:"criteria"`
	}
	decodeBody(t, rec, &resp)
	if resp.Contact.FullName != "Marie Dubois" {
		t.Errorf("contact = %+v", resp.Contact)
	}
	if resp.Criteria == nil || len(resp.Criteria.Sectors) != 1 {
		t.Errorf("criteria = %+v", resp.Criteria)
	}
}

func TestGetContact_NoCriteria(t *testing.T) {
	ts, h := newTestServer(t)
	ts.contacts.getFn = func(_ context.Context, id string) (domain.Contact, error) {
		return domain.Contact{ID: id, FullName: "Jean"}, nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/contacts/c-1", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"criteria"`) {
		t.Errorf("criteria should be omitted when absent, got: %s", rec.Body.String())
	}
}

func TestDeleteContact_RemovesEmbeddingToo(t *testing.T) {
	ts, h := newTestServer(t)

	var deletedKind domain.Kind
	ts.gen.deleteTargetFn = func(_ context.Context, _ string, kind domain.Kind) error {
		deletedKind = kind
		return nil
	}

	rec := doRequest(t, h, http.MethodDelete, "/api/v1/contacts/c-1", nil)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if deletedKind != domain.KindBuyer {
		t.Errorf("DeleteTarget kind = %q, want buyer", deletedKind)
	}
}

func TestUpsertCriteria_ContactIDFromPath(t *testing.T) {
	ts, h := newTestServer(t)

	var stored domain.BuyerCriteria
	ts.contacts.upsertCriteriaFn = func(_ context.Context, bc domain.BuyerCriteria) error {
		stored = bc
		return nil
	}

	rec := doRequest(t, h, http.MethodPut, "/api/v1/contacts/c-1/criteria",
		domain.BuyerCriteria{ContactID: "other", Sectors: []string{"tech"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stored.ContactID != "c-1" {
		t.Errorf("stored contact id = %q, want path param to win", stored.ContactID)
	}
}

func TestUpsertCriteria_ContactMissing(t *testing.T) {
	ts, h := newTestServer(t)
	ts.contacts.upsertCriteriaFn = func(context.Context, domain.BuyerCriteria) error {
		return domain.ErrContactNotFound
	}

	rec := doRequest(t, h, http.MethodPut, "/api/v1/contacts/ghost/criteria", domain.BuyerCriteria{})

	assertErrorCode(t, rec, http.StatusNotFound, codeNotFound)
}

func TestDeleteCriteria(t *testing.T) {
	ts, h := newTestServer(t)

	var deletedID string
	ts.contacts.deleteCriteriaFn = func(_ context.Context, contactID string) error {
		deletedID = contactID
		return nil
	}

	rec := doRequest(t, h, http.MethodDelete, "/api/v1/contacts/c-1/criteria", nil)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if deletedID != "c-1" {
		t.Errorf("deleted id = %q", deletedID)
	}
}

func TestContactMatches(t *testing.T) {
	ts, h := newTestServer(t)
	ts.matcher.findDealsFn = func(_ context.Context, contactID string) ([]domain.DealMatch, error) {
		return []domain.DealMatch{{Score: 0.95, Deal: domain.Deal{ID: "d-1", Title: "Acme"}}}, nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/contacts/c-1/matches", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []domain.DealMatch `json:"items"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Items) != 1 || resp.Items[0].Deal.ID != "d-1" {
		t.Errorf("unexpected items: %+v", resp.Items)
	}
}

func TestContactMatches_NotEmbedded(t *testing.T) {
	ts, h := newTestServer(t)
	ts.matcher.findDealsFn = func(context.Context, string) ([]domain.DealMatch, error) {
		return nil, nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/contacts/c-1/matches", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Errorf("expected empty array, got: %s", rec.Body.String())
	}
}

func TestListBuyers(t *testing.T) {
	ts, h := newTestServer(t)
	ts.contacts.listBuyersFn = func(context.Context) ([]domain.Buyer, error) {
		return []domain.Buyer{{
			Contact:  domain.Contact{ID: "c-1", FullName: "Marie"},
			Criteria: domain.BuyerCriteria{ContactID: "c-1", Sectors: []string{"tech"}},
		}}, nil
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/buyers", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []domain.Buyer `json:"items"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Items) != 1 || resp.Items[0].Contact.ID != "c-1" {
		t.Errorf("unexpected items: %+v", resp.Items)
	}
}

func TestHealth_OK(t *testing.T) {
	ts, h := newTestServer(t)
	ts.health.report = healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{
			"database": healthuc.CheckOK,
		},
	}

	rec := doRequest(t, h, http.MethodGet, "/health", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	decodeBody(t, rec, &resp)
	if resp.Status != "ok" {
		t.Errorf("status field = %q", resp.Status)
	}
}

func TestHealth_Degraded(t *testing.T) {
	ts, h := newTestServer(t)
	ts.health.report = healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{
			"database": healthuc.CheckError,
		},
	}

	rec := doRequest(t, h, http.MethodGet, "/health", nil)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestUnknownErrorIsInternal(t *testing.T) {
	ts, h := newTestServer(t)
	ts.deals.getFn = func(context.Context, string) (domain.Deal, error) {
		return domain.Deal{}, errors.New("redis exploded")
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals/deal-1", nil)

	body := rec.Body.String()
	assertErrorCode(t, rec, http.StatusInternalServerError, codeInternalError)
	if strings.Contains(body, "redis exploded") {
		t.Error("internal error detail must not leak to the client")
	}
}

func TestPanicRecoveredAsJSON(t *testing.T) {
	ts, h := newTestServer(t)
	ts.deals.getFn = func(context.Context, string) (domain.Deal, error) {
		panic("boom")
	}

	rec := doRequest(t, h, http.MethodGet, "/api/v1/deals/deal-1", nil)

	assertErrorCode(t, rec, http.StatusInternalServerError, codeInternalError)
}
