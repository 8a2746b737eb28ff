// Package sigverify checks detached wallet signatures over the claim
// challenge message.
//
// Verify never returns an error: a malformed signature or address is an
// expected, attacker-controlled input and simply fails verification.
package sigverify

import (
	"encoding/base64"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Verifier verifies a signature over message by the key behind walletAddress
type Verifier interface {
	Verify(message, signature, walletAddress string) bool
}

// decodeSignature accepts 0x-prefixed hex or standard base64
func decodeSignature(sig string) ([]byte, bool) {
	sig = strings.TrimSpace(sig)
	if strings.HasPrefix(sig, "0x") || strings.HasPrefix(sig, "0X") {
		b, err := hexutil.Decode("0x" + sig[2:])
		return b, err == nil
	}
	b, err := base64.StdEncoding.DecodeString(sig)
	return b, err == nil
}
