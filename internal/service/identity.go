package service

import (
	"context"

	"github.com/escrowd/invoicing/internal/api/dto"
	"github.com/escrowd/invoicing/internal/domain/identity"
	"github.com/escrowd/invoicing/internal/domain/ledger"
	"github.com/escrowd/invoicing/internal/logger"
)

// IdentityService exposes the reference identity registry and escrow
// ledger so the whole flow can be exercised end to end: register,
// deposit, approve, then invoice and pay.
type IdentityService interface {
	RegisterIdentity(ctx context.Context, req dto.RegisterIdentityRequest) (*dto.RegisterIdentityResponse, error)
	Deposit(ctx context.Context, req dto.DepositRequest) error
	Approve(ctx context.Context, req dto.ApproveRequest) error
	GetBalance(ctx context.Context, id uint64) (*dto.BalanceResponse, error)
}

type identityService struct {
	registry identity.Registry
	ledger   ledger.Ledger
	logger   *logger.Logger
}

func NewIdentityService(
	registry identity.Registry,
	ledger ledger.Ledger,
	logger *logger.Logger,
) IdentityService {
	return &identityService{
		registry: registry,
		ledger:   ledger,
		logger:   logger,
	}
}

func (s *identityService) RegisterIdentity(ctx context.Context, req dto.RegisterIdentityRequest) (*dto.RegisterIdentityResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := s.registry.Register(ctx, req.Address)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("registered identity", "address", req.Address, "identity", id)
	return &dto.RegisterIdentityResponse{Identity: id}, nil
}

func (s *identityService) Deposit(ctx context.Context, req dto.DepositRequest) error {
	if err := s.ledger.Deposit(ctx, req.Identity, req.Amount); err != nil {
		return err
	}

	s.logger.Infow("deposited into escrow", "identity", req.Identity, "amount", req.Amount)
	return nil
}

func (s *identityService) Approve(ctx context.Context, req dto.ApproveRequest) error {
	if err := s.ledger.Approve(ctx, req.Identity, req.Amount); err != nil {
		return err
	}

	s.logger.Infow("approved allowance", "identity", req.Identity, "amount", req.Amount)
	return nil
}

func (s *identityService) GetBalance(ctx context.Context, id uint64) (*dto.BalanceResponse, error) {
	balance, err := s.ledger.BalanceOf(ctx, id)
	if err != nil {
		return nil, err
	}

	allowance, err := s.ledger.Allowance(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.BalanceResponse{
		Identity:  id,
		Balance:   balance,
		Allowance: allowance,
	}, nil
}
