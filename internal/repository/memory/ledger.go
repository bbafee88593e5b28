package memory

import (
	"context"
	"sync"

	"github.com/escrowd/invoicing/internal/domain/ledger"
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/logger"
	"github.com/shopspring/decimal"
)

// EscrowLedger is the reference escrow balance ledger. Transfers are gated
// by the allowance the source identity granted to the engine: a transfer
// larger than the remaining allowance or the available balance fails and
// moves nothing.
type EscrowLedger struct {
	mu         sync.Mutex
	balances   map[uint64]decimal.Decimal
	allowances map[uint64]decimal.Decimal
	log        *logger.Logger
}

func NewEscrowLedger(log *logger.Logger) ledger.Ledger {
	return &EscrowLedger{
		balances:   make(map[uint64]decimal.Decimal),
		allowances: make(map[uint64]decimal.Decimal),
		log:        log,
	}
}

func (l *EscrowLedger) Deposit(ctx context.Context, identity uint64, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ierr.NewError("deposit must be positive").
			WithHint("Deposit amount must be positive").
			Mark(ierr.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[identity] = l.balance(identity).Add(amount)
	return nil
}

func (l *EscrowLedger) Approve(ctx context.Context, identity uint64, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ierr.NewError("allowance must be non negative").
			WithHint("Allowance must be non negative").
			Mark(ierr.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.allowances[identity] = amount
	return nil
}

func (l *EscrowLedger) Transfer(ctx context.Context, from, to uint64, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance(from).LessThan(amount) {
		return ierr.NewError("insufficient escrow balance").
			WithHint("The source identity does not hold enough escrowed funds").
			WithReportableDetails(map[string]any{
				"from":    from,
				"amount":  amount,
				"balance": l.balance(from),
			}).
			Mark(ierr.ErrTransferFailed)
	}

	if l.allowance(from).LessThan(amount) {
		return ierr.NewError("insufficient allowance").
			WithHint("The source identity has not approved a sufficient allowance").
			WithReportableDetails(map[string]any{
				"from":      from,
				"amount":    amount,
				"allowance": l.allowance(from),
			}).
			Mark(ierr.ErrTransferFailed)
	}

	l.balances[from] = l.balance(from).Sub(amount)
	l.balances[to] = l.balance(to).Add(amount)
	l.allowances[from] = l.allowance(from).Sub(amount)

	l.log.Debugw("escrow transfer", "from", from, "to", to, "amount", amount)
	return nil
}

func (l *EscrowLedger) BalanceOf(ctx context.Context, identity uint64) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balance(identity), nil
}

func (l *EscrowLedger) Allowance(ctx context.Context, identity uint64) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.allowance(identity), nil
}

// callers hold l.mu
func (l *EscrowLedger) balance(identity uint64) decimal.Decimal {
	if b, ok := l.balances[identity]; ok {
		return b
	}
	return decimal.Zero
}

func (l *EscrowLedger) allowance(identity uint64) decimal.Decimal {
	if a, ok := l.allowances[identity]; ok {
		return a
	}
	return decimal.Zero
}
