package auth

import (
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterInput captures a self-service signup. Accounts start unverified
// and always carry the customer role; stores and admins are provisioned by
// an admin.
type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
}

// LoginInput is the phone + password credential pair.
type LoginInput struct {
	Phone    string
	Password string
}

// ResetInput carries the raw reset token with the replacement password.
type ResetInput struct {
	Token       string
	NewPassword string
}

// UserInfo is the identity payload attached to auth responses.
type UserInfo struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Phone      *string          `json:"phone,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Role       enums.Role       `json:"role"`
	IsVerified bool             `json:"is_verified"`
	StoreLevel enums.StoreLevel `json:"store_level"`
	Balance    decimal.Decimal  `json:"balance"`
	FeeRatio   decimal.Decimal  `json:"fee_ratio"`
}

// RegisterResult confirms the signup and prompts for verification.
type RegisterResult struct {
	User    UserInfo `json:"user"`
	Message string   `json:"message"`
}

// LoginResult pairs the minted token with the authenticated identity.
type LoginResult struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
