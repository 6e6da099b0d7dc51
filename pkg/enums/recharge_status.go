package enums

import "fmt"

// RechargeStatus is the one-way state of a ledger entry: pending until an
// admin approves it, terminal at approved. No rejection state exists.
type RechargeStatus string

const (
	RechargeStatusPending  RechargeStatus = "pending"
	RechargeStatusApproved RechargeStatus = "approved"
)

var validRechargeStatuses = []RechargeStatus{
	RechargeStatusPending,
	RechargeStatusApproved,
}

// String implements fmt.Stringer.
func (r RechargeStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RechargeStatus.
func (r RechargeStatus) IsValid() bool {
	for _, candidate := range validRechargeStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRechargeStatus converts raw input into a RechargeStatus.
func ParseRechargeStatus(value string) (RechargeStatus, error) {
	for _, candidate := range validRechargeStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid recharge status %q", value)
}
