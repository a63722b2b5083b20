package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

func TestCreateUserEndpointDefaultsToPlainUser(t *testing.T) {
	dir := directory.New(nil)
	router := newTestRouter(dir, nil)

	rec := doJSON(t, router, http.MethodPost, "/users", map[string]string{
		"name": "Ana Reyes",
		"role": "Account Executive",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var user entity.User
	decodeBody(t, rec, &user)
	assert.Equal(t, entity.KindUser, user.Kind)
	assert.False(t, user.CanApprove)
}

func TestCreateSalesManagerEndpoint(t *testing.T) {
	dir := directory.New(nil)
	router := newTestRouter(dir, nil)

	rec := doJSON(t, router, http.MethodPost, "/users", map[string]interface{}{
		"name":                 "Marcus Chen",
		"kind":                 "Sales_Manager",
		"approval_limit_score": 50,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var user entity.User
	decodeBody(t, rec, &user)
	assert.Equal(t, entity.KindSalesManager, user.Kind)
	assert.True(t, user.CanApprove)
	assert.Equal(t, 50, *user.ApprovalLimitScore)
}

func TestCreateUserRejectsUnknownKind(t *testing.T) {
	dir := directory.New(nil)
	router := newTestRouter(dir, nil)

	rec := doJSON(t, router, http.MethodPost, "/users", map[string]string{
		"name": "Ana Reyes",
		"kind": "wizard",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.CodeInvalidInput, errorCode(t, rec))
}

func TestListUsersEndpoint(t *testing.T) {
	dir := directory.New(nil)
	dir.AddUser(entity.NewUser("Ana Reyes", "AE", "", ""))
	dir.AddUser(entity.NewSalesManager("Marcus Chen", "Sales Manager", "", "", 50))
	router := newTestRouter(dir, nil)

	rec := doJSON(t, router, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var users []entity.User
	decodeBody(t, rec, &users)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(2), users[1].ID)
}
