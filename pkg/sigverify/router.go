package sigverify

import (
	"github.com/rallyprotocol/rally-claim/pkg/address"
	"go.uber.org/zap"
)

// Router picks the verifier matching the wallet's address family.
// A nil EVM verifier restricts claims to Solana wallets.
type Router struct {
	solana Verifier
	evm    Verifier
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ Verifier = (*Router)(nil)

// NewRouter creates a chain-tagged verifier. evm may be nil.
func NewRouter(solana, evm Verifier, logger *zap.Logger) *Router {
	return &Router{
		solana: solana,
		evm:    evm,
		logger: logger,
	}
}

func (r *Router) Verify(message, signature, walletAddress string) bool {
	switch address.Detect(walletAddress) {
	case address.FamilySolana:
		return r.solana != nil && r.solana.Verify(message, signature, walletAddress)
	case address.FamilyEVM:
		if r.evm == nil {
			r.logger.Info("evm wallet signature rejected, evm claims disabled",
				zap.String("wallet", walletAddress),
			)
			return false
		}
		return r.evm.Verify(message, signature, walletAddress)
	default:
		return false
	}
}
