package directory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/pkg/clock"
)

func TestAddAssignsSequentialIDsPerKind(t *testing.T) {
	dir := New(nil)

	first := dir.AddLead(entity.NewLead("Initech", "Bill Lumbergh", "", "", 40, nil))
	second := dir.AddLead(entity.NewLead("Globex", "Hank Scorpio", "", "", 80, nil))
	user := dir.AddUser(entity.NewUser("Ana Reyes", "AE", "", ""))
	customer := dir.AddCustomer(entity.NewCustomer("Hooli", "Gavin Belson", "", "", nil))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	// Each entity kind numbers independently, so a lead and a customer may
	// share the number 1 without colliding.
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, int64(1), customer.ID)
}

func TestAddKeepsCallerSuppliedID(t *testing.T) {
	dir := New(nil)

	lead := entity.NewLead("Initech", "Bill Lumbergh", "", "", 40, nil)
	lead.ID = 99
	stored := dir.AddLead(lead)

	assert.Equal(t, int64(99), stored.ID)
	found, err := dir.FindLead(99)
	assert.NoError(t, err)
	assert.Equal(t, "Initech", found.Company)
}

func TestReadsReturnPrivateCopies(t *testing.T) {
	dir := New(nil)
	stored := dir.AddLead(entity.NewLead("Initech", "Bill Lumbergh", "", "", 40, nil))

	stored.Company = "mutated"
	listed := dir.ListLeads()[0]
	listed.Contact = "mutated"

	found, err := dir.FindLead(stored.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Initech", found.Company)
	assert.Equal(t, "Bill Lumbergh", found.Contact)
}

func TestFindReportsMissingEntities(t *testing.T) {
	dir := New(nil)

	_, err := dir.FindUser(1)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)

	_, err = dir.FindLead(1)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)

	_, err = dir.FindCustomer(1)
	assert.ErrorIs(t, err, entity.ErrCustomerNotFound)
}

func TestSetLeadStatusHasNoTransitionGuard(t *testing.T) {
	dir := New(nil)
	lead := dir.AddLead(entity.NewLead("Initech", "Bill Lumbergh", "", "", 40, nil))

	assert.NoError(t, dir.SetLeadStatus(lead.ID, entity.StatusLost))
	assert.NoError(t, dir.SetLeadStatus(lead.ID, entity.StatusConverted))
	// Even walking a converted lead back is accepted.
	assert.NoError(t, dir.SetLeadStatus(lead.ID, entity.StatusContacted))

	found, err := dir.FindLead(lead.ID)
	assert.NoError(t, err)
	assert.Equal(t, entity.StatusContacted, found.Status)

	err = dir.SetLeadStatus(404, entity.StatusNew)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestConvertLeadAtOrAboveThresholdNeedsNoApprover(t *testing.T) {
	clk := clock.NewFixedClock(time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC))
	dir := New(clk)

	owner := int64(4)
	lead := dir.AddLead(entity.NewLead("Globex", "Hank Scorpio", "hank@globex.example", "5553004000", 82, &owner))

	customer, err := dir.ConvertLead(nil, lead.ID)
	assert.NoError(t, err)

	assert.Equal(t, "Globex", customer.Company)
	assert.Equal(t, "Hank Scorpio", customer.Contact)
	assert.Equal(t, "5553004000", customer.Phone)
	assert.Equal(t, "hank@globex.example", customer.Email)
	assert.Equal(t, int64(4), *customer.OwnerID)
	assert.Empty(t, customer.Contracts)

	converted, err := dir.FindLead(lead.ID)
	assert.NoError(t, err)
	assert.Equal(t, entity.StatusConverted, converted.Status)
	assert.Equal(t, clk.Now(), *converted.ConvertedOn)
}

func TestConvertLeadBelowThresholdRequiresApprovalPrivilege(t *testing.T) {
	dir := New(nil)
	lead := dir.AddLead(entity.NewLead("Initech", "Bill Lumbergh", "", "", 55, nil))
	plain := dir.AddUser(entity.NewUser("Ana Reyes", "AE", "", ""))

	_, err := dir.ConvertLead(nil, lead.ID)
	assert.ErrorIs(t, err, entity.ErrApprovalRequired)

	_, err = dir.ConvertLead(plain, lead.ID)
	assert.ErrorIs(t, err, entity.ErrApprovalRequired)

	// A denied conversion leaves the directory untouched.
	unchanged, findErr := dir.FindLead(lead.ID)
	assert.NoError(t, findErr)
	assert.Equal(t, entity.StatusNew, unchanged.Status)
	assert.Nil(t, unchanged.ConvertedOn)
	_, _, customers := dir.Counts()
	assert.Zero(t, customers)
}

func TestConvertLeadBelowThresholdSucceedsWithManager(t *testing.T) {
	dir := New(nil)
	lead := dir.AddLead(entity.NewLead("Initech", "Bill Lumbergh", "", "", 55, nil))

	// The manager's personal limit is far below the lead score on purpose:
	// approval only looks at the privilege, never at the limit.
	manager := dir.AddUser(entity.NewSalesManager("Marcus Chen", "Sales Manager", "", "", 10))

	customer, err := dir.ConvertLead(manager, lead.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Initech", customer.Company)
}

func TestConvertLeadIsNotIdempotent(t *testing.T) {
	dir := New(nil)
	lead := dir.AddLead(entity.NewLead("Globex", "Hank Scorpio", "", "", 90, nil))

	_, err := dir.ConvertLead(nil, lead.ID)
	assert.NoError(t, err)

	_, err = dir.ConvertLead(nil, lead.ID)
	assert.ErrorIs(t, err, entity.ErrLeadAlreadyConverted)

	_, _, customers := dir.Counts()
	assert.Equal(t, 1, customers)
}

func TestConvertLeadUnknownLead(t *testing.T) {
	dir := New(nil)

	_, err := dir.ConvertLead(nil, 12345)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestConvertedCustomerGetsOwnNumber(t *testing.T) {
	dir := New(nil)
	dir.AddCustomer(entity.NewCustomer("Hooli", "Gavin Belson", "", "", nil))
	lead := dir.AddLead(entity.NewLead("Globex", "Hank Scorpio", "", "", 90, nil))

	customer, err := dir.ConvertLead(nil, lead.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), customer.ID)
}

func TestThresholdChangeAffectsLaterConversionsOnly(t *testing.T) {
	dir := New(nil)
	assert.Equal(t, DefaultAutoConvertScoreThreshold, dir.AutoConvertScoreThreshold())

	early := dir.AddLead(entity.NewLead("Globex", "Hank Scorpio", "", "", 82, nil))
	_, err := dir.ConvertLead(nil, early.ID)
	assert.NoError(t, err)

	dir.SetAutoConvertScoreThreshold(90)

	late := dir.AddLead(entity.NewLead("Initech", "Bill Lumbergh", "", "", 82, nil))
	_, err = dir.ConvertLead(nil, late.ID)
	assert.ErrorIs(t, err, entity.ErrApprovalRequired)
}

func TestAddContract(t *testing.T) {
	dir := New(nil)
	customer := dir.AddCustomer(entity.NewCustomer("Hooli", "Gavin Belson", "", "", nil))

	assert.NoError(t, dir.AddContract(customer.ID, "XYZ-2026"))
	assert.NoError(t, dir.AddContract(customer.ID, "XYZ-2027"))

	found, err := dir.FindCustomer(customer.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"XYZ-2026", "XYZ-2027"}, found.Contracts)

	err = dir.AddContract(999, "nope")
	assert.ErrorIs(t, err, entity.ErrCustomerNotFound)
}

func TestCounts(t *testing.T) {
	dir := New(nil)
	dir.AddUser(entity.NewUser("Ana Reyes", "AE", "", ""))
	dir.AddLead(entity.NewLead("Initech", "Bill Lumbergh", "", "", 40, nil))
	dir.AddLead(entity.NewLead("Globex", "Hank Scorpio", "", "", 80, nil))

	users, leads, customers := dir.Counts()
	assert.Equal(t, 1, users)
	assert.Equal(t, 2, leads)
	assert.Equal(t, 0, customers)
}
