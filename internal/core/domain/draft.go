package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DraftState enumerates the steps of the campaign collection conversation.
type DraftState string

const (
	DraftChooseType DraftState = "choose_type"
	DraftWaitTarget DraftState = "wait_target"
	DraftWaitCPC    DraftState = "wait_cpc"
	DraftWaitBudget DraftState = "wait_budget"
	DraftConfirm    DraftState = "confirm"
	DraftSubmitted  DraftState = "submitted"
	DraftCancelled  DraftState = "cancelled"
)

// Control inputs accepted by the draft state machine.
const (
	InputCancel  = "cancel"
	InputConfirm = "confirm"
)

// Terminal reports whether no further input is accepted in s.
func (s DraftState) Terminal() bool {
	return s == DraftSubmitted || s == DraftCancelled
}

// Draft is the scratch state of a campaign being collected step by step,
// keyed by the session (the owner's user id).
type Draft struct {
	SessionID int64           `json:"session_id"`
	State     DraftState      `json:"state"`
	TaskType  TaskType        `json:"task_type,omitempty"`
	Target    string          `json:"target,omitempty"`
	CPC       decimal.Decimal `json:"cpc"`
	Budget    decimal.Decimal `json:"budget"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewDraft starts a draft at the task type step.
func NewDraft(sessionID int64, now time.Time) *Draft {
	return &Draft{SessionID: sessionID, State: DraftChooseType, UpdatedAt: now}
}

type draftStep func(d *Draft, input string, p Policy) (DraftState, error)

// draftTransitions maps each non-terminal state to the step consuming input in it.
var draftTransitions = map[DraftState]draftStep{
	DraftChooseType: func(d *Draft, input string, _ Policy) (DraftState, error) {
		t := TaskType(strings.ToLower(input))
		if !t.Valid() {
			return "", Invalid("task_type", "unknown task type %q", input)
		}
		d.TaskType = t
		return DraftWaitTarget, nil
	},
	DraftWaitTarget: func(d *Draft, input string, _ Policy) (DraftState, error) {
		if err := ValidateTarget(input); err != nil {
			return "", err
		}
		d.Target = input
		return DraftWaitCPC, nil
	},
	DraftWaitCPC: func(d *Draft, input string, p Policy) (DraftState, error) {
		cpc, err := decimal.NewFromString(input)
		if err != nil {
			return "", Invalid("cpc", "%q is not a number", input)
		}
		if err = p.CheckCPC(cpc); err != nil {
			return "", err
		}
		d.CPC = cpc
		return DraftWaitBudget, nil
	},
	DraftWaitBudget: func(d *Draft, input string, p Policy) (DraftState, error) {
		budget, err := decimal.NewFromString(input)
		if err != nil {
			return "", Invalid("budget", "%q is not a number", input)
		}
		if err = p.CheckBudget(budget, d.CPC); err != nil {
			return "", err
		}
		d.Budget = budget
		return DraftConfirm, nil
	},
	DraftConfirm: func(_ *Draft, input string, _ Policy) (DraftState, error) {
		if !strings.EqualFold(input, InputConfirm) {
			return "", Invalid("input", "reply %q or %q", InputConfirm, InputCancel)
		}
		return DraftSubmitted, nil
	},
}

// Apply feeds one user input into the draft. "cancel" ends the draft from any
// non-terminal state. On a validation error the state is left unchanged so the
// user can retry the same step.
func (d *Draft) Apply(input string, p Policy, now time.Time) error {
	if d.State.Terminal() {
		return Invalid("state", "draft is %s", d.State)
	}
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, InputCancel) {
		d.State = DraftCancelled
		d.UpdatedAt = now
		return nil
	}
	step, ok := draftTransitions[d.State]
	if !ok {
		return Invalid("state", "unknown state %q", d.State)
	}
	next, err := step(d, input, p)
	if err != nil {
		return err
	}
	d.State = next
	d.UpdatedAt = now
	return nil
}

// BackToBudget reopens the budget step after a submitted draft could not be
// funded.
func (d *Draft) BackToBudget(now time.Time) {
	d.State = DraftWaitBudget
	d.Budget = decimal.Zero
	d.UpdatedAt = now
}

// Slots returns the completions the draft budget would fund.
func (d *Draft) Slots() int64 { return Slots(d.Budget, d.CPC) }

// ValidateTarget accepts http(s) URLs and t.me links.
func ValidateTarget(target string) error {
	target = strings.TrimSpace(target)
	switch {
	case target == "":
		return Invalid("target", "required")
	case strings.HasPrefix(target, "https://"),
		strings.HasPrefix(target, "http://"),
		strings.HasPrefix(target, "t.me/"):
		return nil
	default:
		return Invalid("target", "must be a t.me or https:// link")
	}
}
