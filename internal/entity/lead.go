package entity

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrLeadNotFound         = errors.New("lead not found")
	ErrLeadAlreadyConverted = errors.New("lead already converted")
	ErrApprovalRequired     = errors.New("conversion below threshold requires an approver who can approve conversions")
	ErrUnknownStatus        = errors.New("unknown lead status")
)

type Status string

const (
	StatusNew       Status = "NEW"
	StatusContacted Status = "CONTACTED"
	StatusQualified Status = "QUALIFIED"
	StatusConverted Status = "CONVERTED"
	StatusLost      Status = "LOST"
)

// Statuses lists every lifecycle stage in pipeline order.
var Statuses = []Status{StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost}

// ParseStatus matches a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusNew:
		return StatusNew, nil
	case StatusContacted:
		return StatusContacted, nil
	case StatusQualified:
		return StatusQualified, nil
	case StatusConverted:
		return StatusConverted, nil
	case StatusLost:
		return StatusLost, nil
	default:
		return "", ErrUnknownStatus
	}
}

type Lead struct {
	ID      int64  `json:"id"`
	Company string `json:"company"`
	Contact string `json:"contact"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`

	// Score is the qualification estimate, nominally 0-100. Nothing clamps it;
	// the conversion rule only compares it against the threshold.
	Score int `json:"score"`

	Status      Status     `json:"status"`
	OwnerID     *int64     `json:"owner_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ConvertedOn *time.Time `json:"converted_on,omitempty"`
}

func NewLead(company, contact, email, phone string, score int, ownerID *int64) *Lead {
	return &Lead{
		Company:   company,
		Contact:   contact,
		Email:     email,
		Phone:     phone,
		Score:     score,
		Status:    StatusNew,
		OwnerID:   cloneInt64Ptr(ownerID),
		CreatedAt: time.Now(),
	}
}

func (l *Lead) Clone() *Lead {
	clone := *l
	clone.OwnerID = cloneInt64Ptr(l.OwnerID)
	if l.ConvertedOn != nil {
		converted := *l.ConvertedOn
		clone.ConvertedOn = &converted
	}
	return &clone
}

func cloneInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
