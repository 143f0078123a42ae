package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskType is the action a campaign pays users to perform.
type TaskType string

const (
	TaskJoinChannel TaskType = "join_channel"
	TaskJoinGroup   TaskType = "join_group"
	TaskStartBot    TaskType = "start_bot"
	TaskVisitLink   TaskType = "visit_link"
)

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskJoinChannel, TaskJoinGroup, TaskStartBot, TaskVisitLink:
		return true
	default:
		return false
	}
}

// Campaign represents an advertising campaign funded from the owner's balance.
// The budget is reserved at creation and stays debited unless the campaign is
// rejected. Slots is derived once from budget and cpc and never recomputed.
type Campaign struct {
	ID        string
	OwnerID   int64
	TaskType  TaskType
	Target    string
	Currency  string
	CPC       decimal.Decimal // cost per completion
	Budget    decimal.Decimal
	Slots     int64
	Status    Status // pending, active, rejected, completed
	CreatedAt time.Time
	DecidedAt *time.Time
}

// Slots returns floor(budget / cpc). A non-positive cpc yields zero slots.
func Slots(budget, cpc decimal.Decimal) int64 {
	if !cpc.IsPositive() {
		return 0
	}
	return budget.Div(cpc).Floor().IntPart()
}

// Hold returns the funds reserved by the campaign.
func (c *Campaign) Hold() Hold {
	return Hold{UserID: c.OwnerID, Currency: c.Currency, Amount: c.Budget}
}

// EntityID returns the campaign id.
func (c *Campaign) EntityID() string { return c.ID }

// CurrentStatus returns the campaign status.
func (c *Campaign) CurrentStatus() Status { return c.Status }

// Kind names the entity for logs and events.
func (c *Campaign) Kind() EntityKind { return KindCampaign }

// ApprovedStatus is the status a campaign moves to when an admin approves it.
func (c *Campaign) ApprovedStatus() Status { return StatusActive }

// SetStatus records a decision on the campaign.
func (c *Campaign) SetStatus(s Status, at time.Time) {
	c.Status = s
	c.DecidedAt = &at
}
