package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

type UserHandler struct {
	Directory *directory.Directory
}

func NewUserHandler(dir *directory.Directory) *UserHandler {
	return &UserHandler{Directory: dir}
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	// Kind defaults to "user"; "sales_manager" grants approval privilege.
	Kind               string `json:"kind"`
	ApprovalLimitScore *int   `json:"approval_limit_score"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, err.Error())
		return
	}

	kind := entity.KindUser
	if req.Kind != "" {
		parsed, err := entity.ParseUserKind(req.Kind)
		if err != nil {
			writeFailure(w, err)
			return
		}
		kind = parsed
	}

	var user *entity.User
	if kind == entity.KindSalesManager {
		limit := 0
		if req.ApprovalLimitScore != nil {
			limit = *req.ApprovalLimitScore
		}
		user = entity.NewSalesManager(req.Name, req.Role, req.Email, req.Phone, limit)
	} else {
		user = entity.NewUser(req.Name, req.Role, req.Email, req.Phone)
	}

	writeJSON(w, http.StatusCreated, h.Directory.AddUser(user))
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users := h.Directory.ListUsers()
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	writeJSON(w, http.StatusOK, users)
}
