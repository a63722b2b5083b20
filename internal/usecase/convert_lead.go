package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/infra/queue"
)

type ConvertLeadUseCase struct {
	Directory *directory.Directory
	Publisher ConversionPublisher
}

func NewConvertLeadUseCase(dir *directory.Directory, publisher ConversionPublisher) *ConvertLeadUseCase {
	return &ConvertLeadUseCase{
		Directory: dir,
		Publisher: publisher,
	}
}

// Execute resolves the approver, runs the conversion and, when it succeeds,
// publishes a conversion event. A publish failure is logged and swallowed:
// the customer already exists and must not be rolled back over messaging.
func (uc *ConvertLeadUseCase) Execute(ctx context.Context, input ConvertLeadInput) (*entity.Customer, error) {
	var approver *entity.User
	if input.ApproverID != nil {
		u, err := uc.Directory.FindUser(*input.ApproverID)
		if err != nil {
			return nil, &DomainError{
				Code:    CodeNotFound,
				Message: fmt.Sprintf("approver %d not found", *input.ApproverID),
			}
		}
		approver = u
	}

	customer, err := uc.Directory.ConvertLead(approver, input.LeadID)
	if err != nil {
		return nil, conversionError(input.LeadID, err)
	}

	logrus.Infof("✅ lead %d converted into customer %d", input.LeadID, customer.ID)

	uc.publishConversion(ctx, input, customer)
	return customer, nil
}

func (uc *ConvertLeadUseCase) publishConversion(ctx context.Context, input ConvertLeadInput, customer *entity.Customer) {
	if uc.Publisher == nil {
		return
	}

	lead, err := uc.Directory.FindLead(input.LeadID)
	if err != nil {
		logrus.Errorf("⚠️ converted lead %d vanished before event publish: %v", input.LeadID, err)
		return
	}

	event := queue.ConversionEvent{
		EventID:    uuid.New().String(),
		LeadID:     lead.ID,
		CustomerID: customer.ID,
		Company:    customer.Company,
		Contact:    customer.Contact,
		Email:      customer.Email,
		Phone:      customer.Phone,
		Score:      lead.Score,
		OwnerID:    customer.OwnerID,
		ApproverID: input.ApproverID,
		Origin:     input.Origin,
	}
	if lead.ConvertedOn != nil {
		event.ConvertedAt = *lead.ConvertedOn
	}

	if err := uc.Publisher.PublishConversion(ctx, event); err != nil {
		logrus.Errorf("⚠️ CRITICAL: lead %d converted but event publish failed: %v", input.LeadID, err)
	}
}

// conversionError translates directory sentinels into coded domain errors.
func conversionError(leadID int64, err error) error {
	switch {
	case errors.Is(err, entity.ErrLeadNotFound):
		return &DomainError{
			Code:    CodeNotFound,
			Message: fmt.Sprintf("lead %d not found", leadID),
		}
	case errors.Is(err, entity.ErrLeadAlreadyConverted):
		return &DomainError{
			Code:    CodeAlreadyConverted,
			Message: fmt.Sprintf("lead %d was already converted", leadID),
		}
	case errors.Is(err, entity.ErrApprovalRequired):
		return &DomainError{
			Code:    CodeApprovalRequired,
			Message: fmt.Sprintf("lead %d scores below the auto-convert threshold and needs a sales manager's approval", leadID),
		}
	default:
		return err
	}
}
