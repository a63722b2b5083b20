package usecase

// Conversion origins recorded on published events.
const (
	OriginAPI     = "API"
	OriginConsole = "CONSOLE"
)

type ConvertLeadInput struct {
	LeadID int64
	// ApproverID is optional; leads at or above the auto-convert threshold
	// need none.
	ApproverID *int64
	Origin     string
}
