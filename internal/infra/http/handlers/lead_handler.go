package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/infra/http/middleware"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

type LeadHandler struct {
	Directory   *directory.Directory
	Converter   *usecase.ConvertLeadUseCase
	Queries     *usecase.LeadQueries
	rateLimiter *RateLimiter
}

func NewLeadHandler(dir *directory.Directory, converter *usecase.ConvertLeadUseCase, queries *usecase.LeadQueries) *LeadHandler {
	return &LeadHandler{
		Directory:   dir,
		Converter:   converter,
		Queries:     queries,
		rateLimiter: NewRateLimiter(60, time.Minute), // 60 req/min per IP
	}
}

type CreateLeadRequest struct {
	Company string `json:"company" validate:"required"`
	Contact string `json:"contact" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Score   int    `json:"score"`
	OwnerID *int64 `json:"owner_id"`
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "", "too many requests, please try again later")
		return
	}

	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, err.Error())
		return
	}

	if req.OwnerID != nil {
		if _, err := h.Directory.FindUser(*req.OwnerID); err != nil {
			writeFailure(w, err)
			return
		}
	}

	lead := h.Directory.AddLead(entity.NewLead(req.Company, req.Contact, req.Email, req.Phone, req.Score, req.OwnerID))
	middleware.RecordLeadCreated()

	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sortedByID(h.Directory.ListLeads()))
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}

	lead, err := h.Directory.FindLead(id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus sets the pipeline stage directly. Status names are matched
// case-insensitively; an unknown name is rejected before anything changes.
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}

	var req UpdateLeadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, err.Error())
		return
	}

	status, err := entity.ParseStatus(req.Status)
	if err != nil {
		writeFailure(w, err)
		return
	}

	if err := h.Directory.SetLeadStatus(id, status); err != nil {
		writeFailure(w, err)
		return
	}

	lead, err := h.Directory.FindLead(id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

type ConvertLeadRequest struct {
	ApproverID *int64 `json:"approver_id"`
}

func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}

	// The body is optional; auto-convertible leads need no approver.
	var req ConvertLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}

	customer, err := h.Converter.Execute(r.Context(), usecase.ConvertLeadInput{
		LeadID:     id,
		ApproverID: req.ApproverID,
		Origin:     usecase.OriginAPI,
	})
	if err != nil {
		if code := usecase.CodeOf(err); code != "" {
			middleware.RecordConversionDenied(strings.ToLower(code))
		}
		writeFailure(w, err)
		return
	}

	middleware.RecordLeadConverted()
	writeJSON(w, http.StatusCreated, customer)
}

func (h *LeadHandler) SearchByContact(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Queries.SearchByContact(r.URL.Query().Get("q")))
}

func (h *LeadHandler) SearchByCompany(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Queries.SearchByCompany(r.URL.Query().Get("q")))
}

func (h *LeadHandler) SearchByPhone(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(r.URL.Query().Get("q"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, "phone search expects digits")
		return
	}
	writeJSON(w, http.StatusOK, h.Queries.SearchByPhone(number))
}

func (h *LeadHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := entity.ParseStatus(chi.URLParam(r, "status"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Queries.ListByStatus(status))
}

func (h *LeadHandler) ListByMinScore(w http.ResponseWriter, r *http.Request) {
	min, ok := int64Param(w, r, "min")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Queries.ListByMinScore(int(min)))
}

func sortedByID(leads []*entity.Lead) []*entity.Lead {
	sort.Slice(leads, func(i, j int) bool { return leads[i].ID < leads[j].ID })
	return leads
}
