package usecase

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/pkg/clock"
)

// UnassignedOwner keys ownerless leads in per-owner breakdowns.
const UnassignedOwner int64 = -1

// LeadQueries answers read-only questions over the directory. Every result
// is computed from a fresh snapshot, so callers may hold and mutate the
// returned leads freely.
type LeadQueries struct {
	Directory *directory.Directory
	Clock     clock.Clock
}

func NewLeadQueries(dir *directory.Directory, clk clock.Clock) *LeadQueries {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &LeadQueries{
		Directory: dir,
		Clock:     clk,
	}
}

// SearchByContact matches the contact name case-insensitively by substring.
func (q *LeadQueries) SearchByContact(fragment string) []*entity.Lead {
	needle := strings.ToLower(fragment)
	return q.collect(func(l *entity.Lead) bool {
		return strings.Contains(strings.ToLower(l.Contact), needle)
	})
}

// SearchByCompany matches the company name case-insensitively by substring.
func (q *LeadQueries) SearchByCompany(fragment string) []*entity.Lead {
	needle := strings.ToLower(fragment)
	return q.collect(func(l *entity.Lead) bool {
		return strings.Contains(strings.ToLower(l.Company), needle)
	})
}

// SearchByPhone matches the digits of the number against stored phone
// numbers. Leads without a phone never match.
func (q *LeadQueries) SearchByPhone(number int64) []*entity.Lead {
	needle := strconv.FormatInt(number, 10)
	return q.collect(func(l *entity.Lead) bool {
		return l.Phone != "" && strings.Contains(l.Phone, needle)
	})
}

func (q *LeadQueries) ListByStatus(status entity.Status) []*entity.Lead {
	return q.collect(func(l *entity.Lead) bool {
		return l.Status == status
	})
}

// ListByMinScore returns leads scoring at least min, best first.
func (q *LeadQueries) ListByMinScore(min int) []*entity.Lead {
	leads := q.Directory.ListLeads()
	out := make([]*entity.Lead, 0)
	for _, l := range leads {
		if l.Score >= min {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// LeadsPerOwner counts every lead exactly once, keyed by owner. Leads with
// no owner land under UnassignedOwner.
func (q *LeadQueries) LeadsPerOwner() map[int64]int {
	counts := make(map[int64]int)
	for _, l := range q.Directory.ListLeads() {
		owner := UnassignedOwner
		if l.OwnerID != nil {
			owner = *l.OwnerID
		}
		counts[owner]++
	}
	return counts
}

// ConversionsInLastDays counts leads converted within the last days calendar
// days, today included. Comparison is at day precision, so a conversion
// earlier on the boundary day still counts. A negative window matches
// nothing.
func (q *LeadQueries) ConversionsInLastDays(days int) int {
	cutoff := dayOf(q.Clock.Now()).AddDate(0, 0, -days)

	count := 0
	for _, l := range q.Directory.ListLeads() {
		if l.Status != entity.StatusConverted || l.ConvertedOn == nil {
			continue
		}
		if !dayOf(*l.ConvertedOn).Before(cutoff) {
			count++
		}
	}
	return count
}

// collect filters the current snapshot and orders matches by lead number.
func (q *LeadQueries) collect(match func(*entity.Lead) bool) []*entity.Lead {
	leads := q.Directory.ListLeads()
	out := make([]*entity.Lead, 0)
	for _, l := range leads {
		if match(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
