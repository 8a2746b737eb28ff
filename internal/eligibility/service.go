// Package eligibility answers which asset classes a wallet pair currently
// qualifies for. It is read-only.
package eligibility

import (
	"cmp"
	"context"
	"strings"
	"sync"

	"github.com/rallyprotocol/rally-claim/internal/asset"
	"github.com/rallyprotocol/rally-claim/internal/common/errors"
	"github.com/rallyprotocol/rally-claim/pkg/address"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds parallel holder queries per request
const maxConcurrentLookups = 4

// Service checks holdings against the asset catalog
type Service struct {
	lookup  Lookup
	catalog *asset.Catalog
	logger  *zap.Logger
}

// NewService creates a new eligibility service
func NewService(lookup Lookup, catalog *asset.Catalog, logger *zap.Logger) *Service {
	return &Service{
		lookup:  lookup,
		catalog: catalog,
		logger:  logger,
	}
}

// Check reports per-class eligibility for a Solana wallet, an EVM wallet, or both.
// Each address is validated on its own; a malformed one is skipped and the
// other is still checked.
func (s *Service) Check(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	solana := strings.TrimSpace(req.WalletAddress)
	evm := strings.TrimSpace(req.EthAddress)

	if solana == "" && evm == "" {
		return nil, errors.MissingField("Wallet address required")
	}

	wallets := make(map[address.Family]string, 2)
	if solana != "" {
		if address.IsSolana(solana) {
			wallets[address.FamilySolana] = solana
		} else {
			s.logger.Debug("skipping malformed solana address", zap.String("wallet", solana))
		}
	}
	if evm != "" {
		if address.IsEVM(evm) {
			if !address.ValidateEVMChecksum(evm) {
				s.logger.Debug("eth address fails EIP-55 checksum", zap.String("eth_address", evm))
			}
			wallets[address.FamilyEVM] = evm
		} else {
			s.logger.Debug("skipping malformed eth address", zap.String("eth_address", evm))
		}
	}

	var mu sync.Mutex
	counts := make(map[string]float64, len(s.catalog.IDs()))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for _, class := range s.catalog.Classes() {
		for _, col := range class.Collections {
			wallet := wallets[col.Chain.Family()]
			if wallet == "" {
				continue
			}
			classID, col := class.ID, col
			g.Go(func() error {
				qty, err := s.lookup.LookupHolding(gctx, col.Address, wallet)
				if err != nil {
					return err
				}
				mu.Lock()
				counts[classID] += qty
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("holder lookup failed",
			zap.String("wallet", solana),
			zap.String("eth_address", evm),
			zap.Error(err),
		)
		return nil, errors.StoreError(err)
	}

	resp := &CheckResponse{
		Eligibility:   make(map[string]Result, len(s.catalog.IDs())),
		WalletAddress: cmp.Or(solana, evm),
		Addresses:     make([]string, 0, 2),
	}
	for _, id := range s.catalog.IDs() {
		count := counts[id]
		resp.Eligibility[id] = Result{Eligible: count > 0, Count: count}
	}
	for _, family := range []address.Family{address.FamilySolana, address.FamilyEVM} {
		if a, ok := wallets[family]; ok {
			resp.Addresses = append(resp.Addresses, a)
		}
	}

	return resp, nil
}
