package directory

import (
	"sync"

	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/pkg/clock"
)

// DefaultAutoConvertScoreThreshold is the score at or above which a lead
// converts without an approver.
const DefaultAutoConvertScoreThreshold = 70

// Directory is the in-memory system of record for users, leads and customers.
// It hands out sequential identifiers per entity kind, so lead and customer
// numbering never overlaps, and every read returns a private copy.
type Directory struct {
	mu sync.RWMutex

	users     map[int64]*entity.User
	leads     map[int64]*entity.Lead
	customers map[int64]*entity.Customer

	nextUserID     int64
	nextLeadID     int64
	nextCustomerID int64

	autoConvertScoreThreshold int

	clock clock.Clock
}

func New(clk clock.Clock) *Directory {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Directory{
		users:                     make(map[int64]*entity.User),
		leads:                     make(map[int64]*entity.Lead),
		customers:                 make(map[int64]*entity.Customer),
		nextUserID:                1,
		nextLeadID:                1,
		nextCustomerID:            1,
		autoConvertScoreThreshold: DefaultAutoConvertScoreThreshold,
		clock:                     clk,
	}
}

// AddUser stores a copy of the user and returns it. A zero ID gets the next
// sequential user number; a caller-supplied ID replaces any existing entry.
func (d *Directory) AddUser(u *entity.User) *entity.User {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := u.Clone()
	if stored.ID == 0 {
		stored.ID = d.nextUserID
		d.nextUserID++
	}
	d.users[stored.ID] = stored
	return stored.Clone()
}

func (d *Directory) AddLead(l *entity.Lead) *entity.Lead {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := l.Clone()
	if stored.ID == 0 {
		stored.ID = d.nextLeadID
		d.nextLeadID++
	}
	d.leads[stored.ID] = stored
	return stored.Clone()
}

func (d *Directory) AddCustomer(c *entity.Customer) *entity.Customer {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := c.Clone()
	if stored.ID == 0 {
		stored.ID = d.nextCustomerID
		d.nextCustomerID++
	}
	d.customers[stored.ID] = stored
	return stored.Clone()
}

func (d *Directory) FindUser(id int64) (*entity.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (d *Directory) FindLead(id int64) (*entity.Lead, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	l, ok := d.leads[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	return l.Clone(), nil
}

func (d *Directory) FindCustomer(id int64) (*entity.Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.customers[id]
	if !ok {
		return nil, entity.ErrCustomerNotFound
	}
	return c.Clone(), nil
}

// ListUsers returns copies in no particular order.
func (d *Directory) ListUsers() []*entity.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*entity.User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u.Clone())
	}
	return out
}

func (d *Directory) ListLeads() []*entity.Lead {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*entity.Lead, 0, len(d.leads))
	for _, l := range d.leads {
		out = append(out, l.Clone())
	}
	return out
}

func (d *Directory) ListCustomers() []*entity.Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*entity.Customer, 0, len(d.customers))
	for _, c := range d.customers {
		out = append(out, c.Clone())
	}
	return out
}

// SetLeadStatus assigns the status directly. There is no transition guard:
// any stage can follow any other, including moving a converted lead back.
func (d *Directory) SetLeadStatus(id int64, status entity.Status) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.leads[id]
	if !ok {
		return entity.ErrLeadNotFound
	}
	l.Status = status
	return nil
}

// AddContract appends a closed deal to the customer's contract history.
func (d *Directory) AddContract(customerID int64, contract string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.customers[customerID]
	if !ok {
		return entity.ErrCustomerNotFound
	}
	c.AppendContract(contract)
	return nil
}

func (d *Directory) AutoConvertScoreThreshold() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.autoConvertScoreThreshold
}

// SetAutoConvertScoreThreshold changes the bar for approver-free conversion.
// Only conversions attempted afterwards see the new value.
func (d *Directory) SetAutoConvertScoreThreshold(threshold int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.autoConvertScoreThreshold = threshold
}

// ConvertLead runs the one-way lead-to-customer transition. Preconditions are
// checked in a fixed order: the lead must exist, must not already be
// converted, and a lead scoring below the auto-convert threshold needs an
// approver with approval privilege. On success the lead is marked CONVERTED
// with the conversion date, and a customer carrying the lead's company,
// contact, phone, email and owner is created under a fresh customer number.
// The whole transition happens under one lock, so a conflicting call sees
// either none or all of it.
func (d *Directory) ConvertLead(approver *entity.User, leadID int64) (*entity.Customer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	lead, ok := d.leads[leadID]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	if lead.Status == entity.StatusConverted {
		return nil, entity.ErrLeadAlreadyConverted
	}
	if lead.Score < d.autoConvertScoreThreshold {
		if approver == nil || !approver.CanApproveConversions() {
			return nil, entity.ErrApprovalRequired
		}
	}

	customer := entity.NewCustomer(lead.Company, lead.Contact, lead.Phone, lead.Email, lead.OwnerID)
	customer.ID = d.nextCustomerID
	d.nextCustomerID++
	d.customers[customer.ID] = customer

	convertedOn := d.clock.Now()
	lead.Status = entity.StatusConverted
	lead.ConvertedOn = &convertedOn

	return customer.Clone(), nil
}

// Counts reports how many entities of each kind are stored.
func (d *Directory) Counts() (users, leads, customers int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users), len(d.leads), len(d.customers)
}
