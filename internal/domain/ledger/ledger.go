package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// TransferCapability moves funds between two identities' escrow balances.
// It is the single side effect the payment and refund processors perform,
// and the engine never retries it: a failed transfer fails the whole
// operation with no state committed.
type TransferCapability interface {
	// Transfer moves amount from one identity's escrow balance to
	// another's, consuming the source identity's pre-approved allowance
	Transfer(ctx context.Context, from, to uint64, amount decimal.Decimal) error
}

// Ledger is the full surface of the reference escrow ledger used by the
// server and the tests. The engine itself depends only on
// TransferCapability; allowances are granted out of band.
type Ledger interface {
	TransferCapability

	// Deposit credits an identity's escrow balance
	Deposit(ctx context.Context, identity uint64, amount decimal.Decimal) error

	// Approve grants the engine an allowance to spend from the identity's
	// balance. Approvals replace the previous allowance, they do not add.
	Approve(ctx context.Context, identity uint64, amount decimal.Decimal) error

	// BalanceOf returns the identity's escrow balance
	BalanceOf(ctx context.Context, identity uint64) (decimal.Decimal, error)

	// Allowance returns the identity's remaining approved allowance
	Allowance(ctx context.Context, identity uint64) (decimal.Decimal, error)
}
