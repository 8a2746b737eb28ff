package sigverify

import (
	"crypto/ed25519"

	"github.com/rallyprotocol/rally-claim/pkg/address"
	"go.uber.org/zap"
)

// Ed25519Verifier verifies Solana wallet signatures:
// base64 signature, base58 address, ed25519 detached verification.
type Ed25519Verifier struct {
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ Verifier = (*Ed25519Verifier)(nil)

// NewEd25519Verifier creates a Solana-style verifier
func NewEd25519Verifier(logger *zap.Logger) *Ed25519Verifier {
	return &Ed25519Verifier{logger: logger}
}

func (v *Ed25519Verifier) Verify(message, signature, walletAddress string) bool {
	sig, ok := decodeSignature(signature)
	if !ok || len(sig) != ed25519.SignatureSize {
		v.logger.Debug("rejecting malformed ed25519 signature",
			zap.String("wallet", walletAddress),
			zap.Int("length", len(sig)),
		)
		return false
	}

	pubKey, err := address.SolanaPublicKey(walletAddress)
	if err != nil {
		v.logger.Debug("rejecting undecodable solana address",
			zap.String("wallet", walletAddress),
			zap.Error(err),
		)
		return false
	}

	return ed25519.Verify(pubKey, []byte(message), sig)
}
