package entity

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUnknownUserKind = errors.New("unknown user kind")
)

type UserKind string

const (
	KindUser         UserKind = "USER"
	KindSalesManager UserKind = "SALES_MANAGER"
)

// ParseUserKind matches a kind name case-insensitively.
func ParseUserKind(s string) (UserKind, error) {
	switch UserKind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindUser:
		return KindUser, nil
	case KindSalesManager:
		return KindSalesManager, nil
	default:
		return "", ErrUnknownUserKind
	}
}

type User struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Role  string   `json:"role,omitempty"`
	Email string   `json:"email,omitempty"`
	Phone string   `json:"phone,omitempty"`
	Kind  UserKind `json:"kind"`

	// CanApprove is the capability the conversion rule checks. New privileged
	// kinds only need to set it in their factory.
	CanApprove bool `json:"can_approve"`

	// ApprovalLimitScore is recorded for sales managers but no rule reads it
	// yet; the directory-wide threshold decides approvals.
	ApprovalLimitScore *int `json:"approval_limit_score,omitempty"`
}

func NewUser(name, role, email, phone string) *User {
	return &User{
		Name:  name,
		Role:  role,
		Email: email,
		Phone: phone,
		Kind:  KindUser,
	}
}

func NewSalesManager(name, role, email, phone string, approvalLimitScore int) *User {
	limit := approvalLimitScore
	return &User{
		Name:               name,
		Role:               role,
		Email:              email,
		Phone:              phone,
		Kind:               KindSalesManager,
		CanApprove:         true,
		ApprovalLimitScore: &limit,
	}
}

func (u *User) CanApproveConversions() bool {
	return u.CanApprove
}

func (u *User) Clone() *User {
	clone := *u
	if u.ApprovalLimitScore != nil {
		limit := *u.ApprovalLimitScore
		clone.ApprovalLimitScore = &limit
	}
	return &clone
}
