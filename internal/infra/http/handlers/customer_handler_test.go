package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

func TestCreateCustomerEndpoint(t *testing.T) {
	dir := directory.New(nil)
	router := newTestRouter(dir, nil)

	rec := doJSON(t, router, http.MethodPost, "/customers", map[string]interface{}{
		"company": "Vandelay Industries",
		"contact": "Art Vandelay",
		"email":   "art@vandelay.example",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var customer entity.Customer
	decodeBody(t, rec, &customer)
	assert.Equal(t, int64(1), customer.ID)
	assert.Empty(t, customer.Contracts)
}

func TestCreateCustomerRequiresCompany(t *testing.T) {
	dir := directory.New(nil)
	router := newTestRouter(dir, nil)

	rec := doJSON(t, router, http.MethodPost, "/customers", map[string]interface{}{
		"contact": "Art Vandelay",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, usecase.CodeInvalidInput, errorCode(t, rec))
}

func TestAddContractEndpoint(t *testing.T) {
	dir := directory.New(nil)
	dir.AddCustomer(entity.NewCustomer("Vandelay Industries", "Art Vandelay", "", "", nil))
	router := newTestRouter(dir, nil)

	rec := doJSON(t, router, http.MethodPost, "/customers/1/contracts", map[string]string{"name": "IMPORT-2026"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/customers/1/contracts", map[string]string{"name": "EXPORT-2026"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var customer entity.Customer
	decodeBody(t, rec, &customer)
	assert.Equal(t, []string{"IMPORT-2026", "EXPORT-2026"}, customer.Contracts)

	rec = doJSON(t, router, http.MethodPost, "/customers/9/contracts", map[string]string{"name": "GHOST"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, usecase.CodeNotFound, errorCode(t, rec))
}

func TestGetCustomerEndpoint(t *testing.T) {
	dir := directory.New(nil)
	dir.AddCustomer(entity.NewCustomer("Vandelay Industries", "Art Vandelay", "", "", nil))
	router := newTestRouter(dir, nil)

	rec := doJSON(t, router, http.MethodGet, "/customers/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/customers/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
