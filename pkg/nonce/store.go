// Package nonce issues and consumes the single-use challenges that bind a
// claim signature to one wallet and one asset class.
package nonce

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultTTL is the default nonce validity duration
	DefaultTTL = 5 * time.Minute

	// entropyBytes of randomness per nonce, rendered as hex
	entropyBytes = 32

	messageHeader = "Rally Protocol Claim"
)

// Record is what the store keeps for an issued nonce
type Record struct {
	Value         string    `json:"value"`
	WalletAddress string    `json:"walletAddress"`
	AssetClassID  string    `json:"nftType"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Issued is returned to the client to sign
type Issued struct {
	Nonce     string
	Message   string
	ExpiresAt time.Time
}

// Store defines the nonce lifecycle: ISSUED -> CONSUMED or ISSUED -> EXPIRED.
// Nothing moves back to ISSUED.
type Store interface {
	// Issue mints a fresh nonce for (wallet, asset class).
	// Several outstanding nonces for the same pair are allowed.
	Issue(ctx context.Context, walletAddress, assetClassID string) (*Issued, error)

	// Consume atomically fetches and deletes the nonce.
	// Returns ErrNotFound if it was never issued or already consumed,
	// ErrExpired if it outlived its TTL (it is deleted either way).
	Consume(ctx context.Context, value string) (*Record, error)
}

// BuildClaimMessage renders the exact text the wallet signs
func BuildClaimMessage(walletAddress, assetClassID, nonce string) string {
	return fmt.Sprintf("%s\nWallet: %s\nNFT: %s\nNonce: %s", messageHeader, walletAddress, assetClassID, nonce)
}

// Error definitions
var (
	ErrNotFound = errors.New("nonce not found")
	ErrExpired  = errors.New("nonce expired")
)
