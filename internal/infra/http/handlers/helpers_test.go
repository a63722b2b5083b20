package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/pkg/clock"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

// newTestRouter wires every handler against a shared directory, mirroring
// the API wiring minus broker and mailer.
func newTestRouter(dir *directory.Directory, clk clock.Clock) *chi.Mux {
	converter := usecase.NewConvertLeadUseCase(dir, nil)
	queries := usecase.NewLeadQueries(dir, clk)

	leadHandler := NewLeadHandler(dir, converter, queries)
	userHandler := NewUserHandler(dir)
	customerHandler := NewCustomerHandler(dir)
	reportHandler := NewReportHandler(queries)
	policyHandler := NewPolicyHandler(dir)
	healthHandler := NewHealthHandler(dir, nil, false)

	r := chi.NewRouter()
	r.Post("/users", userHandler.Create)
	r.Get("/users", userHandler.List)

	r.Post("/leads", leadHandler.Create)
	r.Get("/leads", leadHandler.List)
	r.Get("/leads/{id}", leadHandler.Get)
	r.Put("/leads/{id}/status", leadHandler.UpdateStatus)
	r.Post("/leads/{id}/convert", leadHandler.Convert)
	r.Get("/leads/search/contact", leadHandler.SearchByContact)
	r.Get("/leads/search/company", leadHandler.SearchByCompany)
	r.Get("/leads/search/phone", leadHandler.SearchByPhone)
	r.Get("/leads/status/{status}", leadHandler.ListByStatus)
	r.Get("/leads/min-score/{min}", leadHandler.ListByMinScore)

	r.Post("/customers", customerHandler.Create)
	r.Get("/customers", customerHandler.List)
	r.Get("/customers/{id}", customerHandler.Get)
	r.Post("/customers/{id}/contracts", customerHandler.AddContract)

	r.Get("/reports/leads-per-owner", reportHandler.LeadsPerOwner)
	r.Get("/reports/conversions", reportHandler.Conversions)

	r.Get("/policy/auto-convert-threshold", policyHandler.GetThreshold)
	r.Put("/policy/auto-convert-threshold", policyHandler.UpdateThreshold)

	r.Get("/health", healthHandler.Handle)

	return r
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	decodeBody(t, rec, &resp)
	return resp.Code
}
