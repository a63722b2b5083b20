package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/infra/http/middleware"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

type CustomerHandler struct {
	Directory *directory.Directory
}

func NewCustomerHandler(dir *directory.Directory) *CustomerHandler {
	return &CustomerHandler{Directory: dir}
}

type CreateCustomerRequest struct {
	Company string `json:"company" validate:"required"`
	Contact string `json:"contact" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	OwnerID *int64 `json:"owner_id"`
}

// Create registers a customer directly, without going through a lead.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
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

	customer := h.Directory.AddCustomer(entity.NewCustomer(req.Company, req.Contact, req.Phone, req.Email, req.OwnerID))
	middleware.RecordCustomerCreated()

	writeJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers := h.Directory.ListCustomers()
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}

	customer, err := h.Directory.FindCustomer(id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

type AddContractRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *CustomerHandler) AddContract(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}

	var req AddContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, err.Error())
		return
	}

	if err := h.Directory.AddContract(id, req.Name); err != nil {
		writeFailure(w, err)
		return
	}

	customer, err := h.Directory.FindCustomer(id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}
