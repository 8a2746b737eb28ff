// Package address classifies wallet addresses by chain family and produces
// the storage key form of each.
package address

import (
	"crypto/ed25519"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// Family is the address encoding family of a wallet
type Family string

const (
	FamilyUnknown Family = ""
	FamilySolana  Family = "solana" // base58, 32-byte ed25519 public key
	FamilyEVM     Family = "evm"    // 0x + 40 hex chars
)

// Detect returns the family of a wallet address
func Detect(addr string) Family {
	switch {
	case IsEVM(addr):
		return FamilyEVM
	case IsSolana(addr):
		return FamilySolana
	default:
		return FamilyUnknown
	}
}

// IsEVM reports whether addr is a 0x-prefixed 20-byte hex address
func IsEVM(addr string) bool {
	return strings.HasPrefix(addr, "0x") && len(addr) == 42 && common.IsHexAddress(addr)
}

// IsSolana reports whether addr decodes from base58 to an ed25519 public key
func IsSolana(addr string) bool {
	_, err := SolanaPublicKey(addr)
	return err == nil
}

// SolanaPublicKey decodes a base58 Solana address into its public key bytes
func SolanaPublicKey(addr string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(addr)
	if err != nil {
		return nil, err
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, ErrInvalidLength
	}
	return ed25519.PublicKey(decoded), nil
}

// Normalize returns the key form of addr.
// EVM hex is case-insensitive and lowercased; base58 is case-sensitive and kept as is.
func Normalize(addr string) string {
	addr = strings.TrimSpace(addr)
	if IsEVM(addr) {
		return strings.ToLower(addr)
	}
	return addr
}

// Equal compares two addresses under Normalize
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ValidateEVMChecksum rejects mixed-case EVM addresses whose EIP-55 checksum is wrong
func ValidateEVMChecksum(addr string) bool {
	if !IsEVM(addr) {
		return false
	}
	if addr == strings.ToLower(addr) || addr == "0x"+strings.ToUpper(addr[2:]) {
		return true
	}
	return common.HexToAddress(addr).Hex() == addr
}
