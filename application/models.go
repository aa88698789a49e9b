package application

import "time"

// Status is the lifecycle state of a rental application. It starts at pending
// and may move once to approved or rejected; both are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsDecision reports whether s is one of the two terminal decision states.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

// Application mirrors the applications table columns touched by the service.
// UpdatedAt is nil until the first status decision.
type Application struct {
	ID            string
	PropertyID    string
	PropertyTitle string
	UserID        string
	FullName      string
	Email         string
	Phone         string
	MonthlyIncome int64
	MoveInDate    time.Time
	Notes         string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Display carries the presentation attributes for one status.
type Display struct {
	Label   string
	Tone    string
	Icon    string
	Message string
}

// displayByStatus is a total mapping over the status enumeration so renderers
// never branch on individual states.
var displayByStatus = map[Status]Display{
	StatusPending: {
		Label:   "Pending",
		Tone:    "yellow",
		Icon:    "⏳",
		Message: "Your application is being reviewed.",
	},
	StatusApproved: {
		Label:   "Approved",
		Tone:    "green",
		Icon:    "✓",
		Message: "Congratulations! Your application has been approved.",
	},
	StatusRejected: {
		Label:   "Rejected",
		Tone:    "red",
		Icon:    "✗",
		Message: "Unfortunately, your application was not approved.",
	},
}

var unknownDisplay = Display{Label: "Unknown", Tone: "gray", Icon: "?", Message: ""}

// Display returns the presentation attributes for s.
func (s Status) Display() Display {
	if d, ok := displayByStatus[s]; ok {
		return d
	}
	return unknownDisplay
}
