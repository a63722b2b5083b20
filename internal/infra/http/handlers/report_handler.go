package handlers

import (
	"net/http"
	"strconv"

	"github.com/pipecrm/pipecrm/internal/usecase"
)

type ReportHandler struct {
	Queries *usecase.LeadQueries
}

func NewReportHandler(queries *usecase.LeadQueries) *ReportHandler {
	return &ReportHandler{Queries: queries}
}

// LeadsPerOwner returns owner id → lead count. Ownerless leads appear under
// the key "-1".
func (h *ReportHandler) LeadsPerOwner(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Queries.LeadsPerOwner())
}

type ConversionReportResponse struct {
	Days        int `json:"days"`
	Conversions int `json:"conversions"`
}

func (h *ReportHandler) Conversions(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, "days must be a number")
		return
	}

	writeJSON(w, http.StatusOK, ConversionReportResponse{
		Days:        days,
		Conversions: h.Queries.ConversionsInLastDays(days),
	})
}
