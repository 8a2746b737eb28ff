package sigverify

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rallyprotocol/rally-claim/pkg/address"
	"go.uber.org/zap"
)

const evmSignatureLength = 65

// EVMVerifier verifies EIP-191 personal_sign signatures by public key recovery
type EVMVerifier struct {
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ Verifier = (*EVMVerifier)(nil)

// NewEVMVerifier creates an EIP-191 verifier
func NewEVMVerifier(logger *zap.Logger) *EVMVerifier {
	return &EVMVerifier{logger: logger}
}

func (v *EVMVerifier) Verify(message, signature, walletAddress string) bool {
	if !address.IsEVM(walletAddress) {
		return false
	}

	raw, ok := decodeSignature(signature)
	if !ok || len(raw) != evmSignatureLength {
		v.logger.Debug("rejecting malformed evm signature",
			zap.String("wallet", walletAddress),
			zap.Int("length", len(raw)),
		)
		return false
	}

	// 1. "\x19Ethereum Signed Message:\n" + len + message, keccak256
	digest := accounts.TextHash([]byte(message))

	// 2. Normalize v value (27/28 -> 0/1)
	sig := make([]byte, evmSignatureLength)
	copy(sig, raw)
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	// 3. Recover public key from signature
	pubKey, err := crypto.SigToPub(digest, sig)
	if err != nil {
		v.logger.Debug("failed to recover public key",
			zap.String("wallet", walletAddress),
			zap.Error(err),
		)
		return false
	}

	// 4. Compare addresses (case-insensitive)
	recovered := crypto.PubkeyToAddress(*pubKey)
	return strings.EqualFold(recovered.Hex(), walletAddress)
}
