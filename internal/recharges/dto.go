package recharges

import (
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filters describe the admin ledger listing inputs. The date range applies
// to the entry creation date.
type Filters struct {
	Status   *enums.RechargeStatus
	UserID   *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// ApproveInput captures an admin approval request.
type ApproveInput struct {
	AdminID uuid.UUID
	UserID  uuid.UUID
	EntryID uuid.UUID
	Amount  decimal.Decimal
	Note    string
}

// EntryView is one ledger row as returned to callers.
type EntryView struct {
	ID         uuid.UUID            `json:"id"`
	UserID     uuid.UUID            `json:"user_id"`
	Amount     decimal.Decimal      `json:"amount"`
	Status     enums.RechargeStatus `json:"status"`
	Note       string               `json:"note"`
	Screenshot *string              `json:"screenshot,omitempty"`
	ApprovedBy *uuid.UUID           `json:"approved_by,omitempty"`
	ApprovedAt *time.Time           `json:"approved_at,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// OwnedEntryView flattens the entry with its owner's identity for admin lists.
type OwnedEntryView struct {
	EntryView
	UserName  string  `json:"user_name"`
	UserPhone *string `json:"user_phone,omitempty"`
}

// ApproveResult returns the approved entry plus the owner's new balance.
type ApproveResult struct {
	Entry   EntryView       `json:"entry"`
	Balance decimal.Decimal `json:"balance"`
	Message string          `json:"message"`
}
