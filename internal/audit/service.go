// Package audit exposes the holder snapshot read-only: the tracked contracts
// and a paginated holder list per contract.
package audit

import (
	"context"
	"strings"

	"github.com/rallyprotocol/rally-claim/internal/common/errors"
	"github.com/rallyprotocol/rally-claim/internal/holders"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Service reads contracts and holders for display
type Service struct {
	store  holders.Store
	logger *zap.Logger
}

// NewService creates a new audit service
func NewService(store holders.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Contracts lists contracts, optionally filtered by type ("nft" or "token").
// Any other type value lists everything.
func (s *Service) Contracts(ctx context.Context, contractType string) (*ContractsResponse, error) {
	typ := holders.ContractType(strings.ToLower(strings.TrimSpace(contractType)))
	if !typ.Valid() {
		typ = ""
	}

	contracts, err := s.store.ListContracts(ctx, typ)
	if err != nil {
		s.logger.Error("failed to list contracts", zap.String("type", string(typ)), zap.Error(err))
		return nil, errors.StoreError(err)
	}
	stats, err := s.store.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to read holder stats", zap.Error(err))
		return nil, errors.StoreError(err)
	}

	return &ContractsResponse{Contracts: contracts, Stats: *stats}, nil
}

// Holders returns one page of a contract's holders by rank, or all of them
// when req.All is set
func (s *Service) Holders(ctx context.Context, req *HoldersRequest) (*HoldersResponse, error) {
	contractAddress := strings.TrimSpace(req.Contract)
	if contractAddress == "" {
		return nil, errors.MissingField("Contract address is required")
	}

	contract, err := s.store.GetContract(ctx, contractAddress)
	if err != nil {
		s.logger.Error("failed to get contract", zap.String("contract", contractAddress), zap.Error(err))
		return nil, errors.StoreError(err)
	}
	if contract == nil {
		return nil, errors.ContractNotFound(contractAddress)
	}

	resp := &HoldersResponse{
		Contract:        *contract,
		Network:         contract.Network,
		ContractAddress: contract.Address,
	}

	if req.All {
		resp.Holders, err = s.store.ListHolders(ctx, contract.Address, 0, 0)
		if err != nil {
			s.logger.Error("failed to list holders", zap.String("contract", contract.Address), zap.Error(err))
			return nil, errors.StoreError(err)
		}
		resp.Total = len(resp.Holders)
		return resp, nil
	}

	page := max(req.Page, 1)
	pageSize := req.PageSize
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}

	resp.Holders, err = s.store.ListHolders(ctx, contract.Address, pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("failed to list holders", zap.String("contract", contract.Address), zap.Error(err))
		return nil, errors.StoreError(err)
	}
	total, err := s.store.CountHolders(ctx, contract.Address)
	if err != nil {
		s.logger.Error("failed to count holders", zap.String("contract", contract.Address), zap.Error(err))
		return nil, errors.StoreError(err)
	}

	resp.Total = total
	resp.Pagination = &Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
	return resp, nil
}
