package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

func runSession(t *testing.T, dir *directory.Directory, input string) string {
	t.Helper()

	converter := usecase.NewConvertLeadUseCase(dir, nil)
	queries := usecase.NewLeadQueries(dir, nil)

	var out bytes.Buffer
	NewConsole(dir, converter, queries, strings.NewReader(input), &out).Run()
	return out.String()
}

func TestConsoleConvertsHighScoreLeadWithoutApprover(t *testing.T) {
	dir := directory.New(nil)
	dir.AddLead(entity.NewLead("Globex", "Hank Scorpio", "hank@globex.example", "", 90, nil))

	// 9 = convert lead, lead 1, no approver, then quit.
	out := runSession(t, dir, "9\n1\n\n0\n")

	assert.Contains(t, out, "converted! new customer #1")

	lead, err := dir.FindLead(1)
	assert.NoError(t, err)
	assert.Equal(t, entity.StatusConverted, lead.Status)
}

func TestConsoleReportsRefusedConversion(t *testing.T) {
	dir := directory.New(nil)
	dir.AddLead(entity.NewLead("Initech", "Bill Lumbergh", "", "", 55, nil))

	out := runSession(t, dir, "9\n1\n\n0\n")

	assert.Contains(t, out, "conversion refused")

	_, _, customers := dir.Counts()
	assert.Zero(t, customers)
}

func TestConsoleRejectsUnknownStatusWithoutMutating(t *testing.T) {
	dir := directory.New(nil)
	dir.AddLead(entity.NewLead("Initech", "Bill Lumbergh", "", "", 55, nil))

	// 8 = set lead status with a bogus name.
	out := runSession(t, dir, "8\n1\nstale\n0\n")

	assert.Contains(t, out, "invalid input")

	lead, err := dir.FindLead(1)
	assert.NoError(t, err)
	assert.Equal(t, entity.StatusNew, lead.Status)
}

func TestConsoleRejectsNonNumericIDs(t *testing.T) {
	dir := directory.New(nil)

	out := runSession(t, dir, "9\nabc\n0\n")

	assert.Contains(t, out, `"abc" is not a number`)
}

func TestConsoleAddsAndListsLeads(t *testing.T) {
	dir := directory.New(nil)

	// 3 = add lead: company, contact, email, phone, score, owner. 6 = list.
	input := "3\nAcme\nJoe Smith\njoe@acme.example\n5550001111\n64\n\n6\n0\n"
	out := runSession(t, dir, input)

	assert.Contains(t, out, "created lead #1")
	assert.Contains(t, out, "Acme / Joe Smith [NEW] score 64")

	_, leads, _ := dir.Counts()
	assert.Equal(t, 1, leads)
}

func TestConsoleQuitsOnEOF(t *testing.T) {
	dir := directory.New(nil)

	// No trailing menu choice; the scanner just runs dry.
	out := runSession(t, dir, "5\n")

	assert.Contains(t, out, "no users yet")
}
