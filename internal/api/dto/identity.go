package dto

import (
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/shopspring/decimal"
)

// RegisterIdentityRequest links an address to a new identity ID
type RegisterIdentityRequest struct {
	Address string `json:"address"`
}

func (r *RegisterIdentityRequest) Validate() error {
	if r.Address == "" {
		return ierr.NewError("address is required").
			WithHint("Please provide an address to register").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RegisterIdentityResponse carries the assigned identity ID
type RegisterIdentityResponse struct {
	Identity uint64 `json:"identity"`
}

// DepositRequest credits an identity's escrow balance
type DepositRequest struct {
	Identity uint64          `json:"identity"`
	Amount   decimal.Decimal `json:"amount"`
}

// ApproveRequest grants the engine a spending allowance
type ApproveRequest struct {
	Identity uint64          `json:"identity"`
	Amount   decimal.Decimal `json:"amount"`
}

// BalanceResponse is the escrow state of an identity
type BalanceResponse struct {
	Identity  uint64          `json:"identity"`
	Balance   decimal.Decimal `json:"balance"`
	Allowance decimal.Decimal `json:"allowance"`
}
