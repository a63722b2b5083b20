package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

// Console drives the directory through a numbered menu. Bad input never
// mutates anything: the offending action is abandoned and the menu returns.
type Console struct {
	dir       *directory.Directory
	converter *usecase.ConvertLeadUseCase
	queries   *usecase.LeadQueries
	in        *bufio.Scanner
	out       io.Writer
}

func NewConsole(dir *directory.Directory, converter *usecase.ConvertLeadUseCase, queries *usecase.LeadQueries, in io.Reader, out io.Writer) *Console {
	return &Console{
		dir:       dir,
		converter: converter,
		queries:   queries,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

const menu = `
 1. add user             10. search leads by contact
 2. add sales manager    11. search leads by company
 3. add lead             12. search leads by phone
 4. add customer         13. leads by status
 5. list users           14. leads by minimum score
 6. list leads           15. leads per owner
 7. list customers       16. conversions in last days
 8. set lead status      17. set auto-convert threshold
 9. convert lead         18. add contract to customer
 0. quit
`

func (c *Console) Run() {
	c.printf("PipeCRM console (auto-convert threshold: %d)\n", c.dir.AutoConvertScoreThreshold())

	for {
		c.printf("%s", menu)
		choice, ok := c.readLine("> ")
		if !ok {
			return
		}

		switch choice {
		case "0", "q", "quit":
			c.printf("bye\n")
			return
		case "1":
			c.addUser()
		case "2":
			c.addSalesManager()
		case "3":
			c.addLead()
		case "4":
			c.addCustomer()
		case "5":
			c.listUsers()
		case "6":
			c.listLeads()
		case "7":
			c.listCustomers()
		case "8":
			c.setLeadStatus()
		case "9":
			c.convertLead()
		case "10":
			c.searchByContact()
		case "11":
			c.searchByCompany()
		case "12":
			c.searchByPhone()
		case "13":
			c.leadsByStatus()
		case "14":
			c.leadsByMinScore()
		case "15":
			c.leadsPerOwner()
		case "16":
			c.conversionsInLastDays()
		case "17":
			c.setThreshold()
		case "18":
			c.addContract()
		default:
			c.printf("invalid input: unknown option %q\n", choice)
		}
	}
}

func (c *Console) addUser() {
	name, ok := c.readRequired("name: ")
	if !ok {
		return
	}
	role, ok := c.readLine("role: ")
	if !ok {
		return
	}
	email, ok := c.readLine("email: ")
	if !ok {
		return
	}
	phone, ok := c.readLine("phone: ")
	if !ok {
		return
	}

	user := c.dir.AddUser(entity.NewUser(name, role, email, phone))
	c.printf("created %s\n", formatUser(user))
}

func (c *Console) addSalesManager() {
	name, ok := c.readRequired("name: ")
	if !ok {
		return
	}
	role, ok := c.readLine("role: ")
	if !ok {
		return
	}
	email, ok := c.readLine("email: ")
	if !ok {
		return
	}
	phone, ok := c.readLine("phone: ")
	if !ok {
		return
	}
	limit, ok := c.readInt("approval limit score: ")
	if !ok {
		return
	}

	manager := c.dir.AddUser(entity.NewSalesManager(name, role, email, phone, limit))
	c.printf("created %s\n", formatUser(manager))
}

func (c *Console) addLead() {
	company, ok := c.readRequired("company: ")
	if !ok {
		return
	}
	contact, ok := c.readRequired("contact: ")
	if !ok {
		return
	}
	email, ok := c.readLine("email: ")
	if !ok {
		return
	}
	phone, ok := c.readLine("phone: ")
	if !ok {
		return
	}
	score, ok := c.readInt("score: ")
	if !ok {
		return
	}
	ownerID, ok := c.readOptionalID("owner id (blank for none): ")
	if !ok {
		return
	}
	if ownerID != nil {
		if _, err := c.dir.FindUser(*ownerID); err != nil {
			c.printf("invalid input: %v\n", err)
			return
		}
	}

	lead := c.dir.AddLead(entity.NewLead(company, contact, email, phone, score, ownerID))
	c.printf("created %s\n", formatLead(lead))
}

func (c *Console) addCustomer() {
	company, ok := c.readRequired("company: ")
	if !ok {
		return
	}
	contact, ok := c.readRequired("contact: ")
	if !ok {
		return
	}
	phone, ok := c.readLine("phone: ")
	if !ok {
		return
	}
	email, ok := c.readLine("email: ")
	if !ok {
		return
	}
	ownerID, ok := c.readOptionalID("owner id (blank for none): ")
	if !ok {
		return
	}
	if ownerID != nil {
		if _, err := c.dir.FindUser(*ownerID); err != nil {
			c.printf("invalid input: %v\n", err)
			return
		}
	}

	customer := c.dir.AddCustomer(entity.NewCustomer(company, contact, phone, email, ownerID))
	c.printf("created %s\n", formatCustomer(customer))
}

func (c *Console) listUsers() {
	users := c.dir.ListUsers()
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	if len(users) == 0 {
		c.printf("no users yet\n")
		return
	}
	for _, u := range users {
		c.printf("%s\n", formatUser(u))
	}
}

func (c *Console) listLeads() {
	c.printLeads(c.dir.ListLeads(), true)
}

func (c *Console) listCustomers() {
	customers := c.dir.ListCustomers()
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	if len(customers) == 0 {
		c.printf("no customers yet\n")
		return
	}
	for _, cu := range customers {
		c.printf("%s\n", formatCustomer(cu))
	}
}

func (c *Console) setLeadStatus() {
	id, ok := c.readID("lead id: ")
	if !ok {
		return
	}
	names := make([]string, 0, len(entity.Statuses))
	for _, s := range entity.Statuses {
		names = append(names, string(s))
	}
	line, ok := c.readLine("status (" + strings.Join(names, ", ") + "): ")
	if !ok {
		return
	}

	status, err := entity.ParseStatus(line)
	if err != nil {
		c.printf("invalid input: %v\n", err)
		return
	}
	if err := c.dir.SetLeadStatus(id, status); err != nil {
		c.printf("error: %v\n", err)
		return
	}
	c.printf("lead %d is now %s\n", id, status)
}

func (c *Console) convertLead() {
	id, ok := c.readID("lead id: ")
	if !ok {
		return
	}
	approverID, ok := c.readOptionalID("approver id (blank for none): ")
	if !ok {
		return
	}

	customer, err := c.converter.Execute(context.Background(), usecase.ConvertLeadInput{
		LeadID:     id,
		ApproverID: approverID,
		Origin:     usecase.OriginConsole,
	})
	if err != nil {
		c.printf("conversion refused: %v\n", err)
		return
	}
	c.printf("converted! new %s\n", formatCustomer(customer))
}

func (c *Console) searchByContact() {
	q, ok := c.readLine("contact contains: ")
	if !ok {
		return
	}
	c.printLeads(c.queries.SearchByContact(q), false)
}

func (c *Console) searchByCompany() {
	q, ok := c.readLine("company contains: ")
	if !ok {
		return
	}
	c.printLeads(c.queries.SearchByCompany(q), false)
}

func (c *Console) searchByPhone() {
	number, ok := c.readInt("phone digits: ")
	if !ok {
		return
	}
	c.printLeads(c.queries.SearchByPhone(int64(number)), false)
}

func (c *Console) leadsByStatus() {
	line, ok := c.readLine("status: ")
	if !ok {
		return
	}
	status, err := entity.ParseStatus(line)
	if err != nil {
		c.printf("invalid input: %v\n", err)
		return
	}
	c.printLeads(c.queries.ListByStatus(status), false)
}

func (c *Console) leadsByMinScore() {
	min, ok := c.readInt("minimum score: ")
	if !ok {
		return
	}
	c.printLeads(c.queries.ListByMinScore(min), false)
}

func (c *Console) leadsPerOwner() {
	counts := c.queries.LeadsPerOwner()
	if len(counts) == 0 {
		c.printf("no leads yet\n")
		return
	}

	owners := make([]int64, 0, len(counts))
	for owner := range counts {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })

	for _, owner := range owners {
		if owner == usecase.UnassignedOwner {
			c.printf("unassigned: %d\n", counts[owner])
			continue
		}
		label := fmt.Sprintf("user %d", owner)
		if u, err := c.dir.FindUser(owner); err == nil {
			label = fmt.Sprintf("user %d (%s)", owner, u.Name)
		}
		c.printf("%s: %d\n", label, counts[owner])
	}
}

func (c *Console) conversionsInLastDays() {
	days, ok := c.readInt("days: ")
	if !ok {
		return
	}
	c.printf("%d conversion(s) in the last %d day(s)\n", c.queries.ConversionsInLastDays(days), days)
}

func (c *Console) setThreshold() {
	threshold, ok := c.readInt("new auto-convert threshold: ")
	if !ok {
		return
	}
	c.dir.SetAutoConvertScoreThreshold(threshold)
	c.printf("auto-convert threshold is now %d\n", c.dir.AutoConvertScoreThreshold())
}

func (c *Console) addContract() {
	id, ok := c.readID("customer id: ")
	if !ok {
		return
	}
	name, ok := c.readRequired("contract name: ")
	if !ok {
		return
	}
	if err := c.dir.AddContract(id, name); err != nil {
		c.printf("error: %v\n", err)
		return
	}
	c.printf("contract %q added to customer %d\n", name, id)
}

func (c *Console) printLeads(leads []*entity.Lead, resort bool) {
	if resort {
		sort.Slice(leads, func(i, j int) bool { return leads[i].ID < leads[j].ID })
	}
	if len(leads) == 0 {
		c.printf("no leads found\n")
		return
	}
	for _, l := range leads {
		c.printf("%s\n", formatLead(l))
	}
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) readRequired(prompt string) (string, bool) {
	line, ok := c.readLine(prompt)
	if !ok {
		return "", false
	}
	if line == "" {
		c.printf("invalid input: a value is required\n")
		return "", false
	}
	return line, true
}

func (c *Console) readInt(prompt string) (int, bool) {
	line, ok := c.readLine(prompt)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		c.printf("invalid input: %q is not a number\n", line)
		return 0, false
	}
	return n, true
}

func (c *Console) readID(prompt string) (int64, bool) {
	n, ok := c.readInt(prompt)
	return int64(n), ok
}

// readOptionalID treats blank and -1 as "none".
func (c *Console) readOptionalID(prompt string) (*int64, bool) {
	line, ok := c.readLine(prompt)
	if !ok {
		return nil, false
	}
	if line == "" || line == "-1" {
		return nil, true
	}
	id, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		c.printf("invalid input: %q is not a number\n", line)
		return nil, false
	}
	return &id, true
}

func formatUser(u *entity.User) string {
	kind := "user"
	if u.Kind == entity.KindSalesManager {
		kind = "sales manager"
	}
	extra := ""
	if u.CanApproveConversions() {
		extra = ", approves conversions"
	}
	return fmt.Sprintf("user #%d %s (%s)%s", u.ID, u.Name, kind, extra)
}

func formatLead(l *entity.Lead) string {
	owner := "unassigned"
	if l.OwnerID != nil {
		owner = fmt.Sprintf("owner %d", *l.OwnerID)
	}
	converted := ""
	if l.ConvertedOn != nil {
		converted = fmt.Sprintf(", converted on %s", l.ConvertedOn.Format("2006-01-02"))
	}
	return fmt.Sprintf("lead #%d %s / %s [%s] score %d, %s%s", l.ID, l.Company, l.Contact, l.Status, l.Score, owner, converted)
}

func formatCustomer(cu *entity.Customer) string {
	contracts := "no contracts"
	if len(cu.Contracts) > 0 {
		contracts = "contracts: " + strings.Join(cu.Contracts, ", ")
	}
	return fmt.Sprintf("customer #%d %s / %s (%s)", cu.ID, cu.Company, cu.Contact, contracts)
}
