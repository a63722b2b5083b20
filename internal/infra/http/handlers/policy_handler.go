package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

type PolicyHandler struct {
	Directory *directory.Directory
}

func NewPolicyHandler(dir *directory.Directory) *PolicyHandler {
	return &PolicyHandler{Directory: dir}
}

type ThresholdResponse struct {
	AutoConvertScoreThreshold int `json:"auto_convert_score_threshold"`
}

type UpdateThresholdRequest struct {
	// Pointer so an explicit 0 (convert everything unattended) is accepted.
	AutoConvertScoreThreshold *int `json:"auto_convert_score_threshold" validate:"required"`
}

func (h *PolicyHandler) GetThreshold(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ThresholdResponse{
		AutoConvertScoreThreshold: h.Directory.AutoConvertScoreThreshold(),
	})
}

func (h *PolicyHandler) UpdateThreshold(w http.ResponseWriter, r *http.Request) {
	var req UpdateThresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, err.Error())
		return
	}

	h.Directory.SetAutoConvertScoreThreshold(*req.AutoConvertScoreThreshold)
	writeJSON(w, http.StatusOK, ThresholdResponse{
		AutoConvertScoreThreshold: h.Directory.AutoConvertScoreThreshold(),
	})
}
