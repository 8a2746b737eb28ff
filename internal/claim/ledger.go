package claim

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyClaimed is returned by SetClaim when the (wallet, asset class) pair exists
var ErrAlreadyClaimed = errors.New("already claimed")

// Claim is an immutable redemption record
type Claim struct {
	WalletAddress    string    `json:"walletAddress"`
	AssetClassID     string    `json:"nftType"`
	ExternalUsername string    `json:"xUsername"`
	Signature        string    `json:"signature"`
	RewardPoints     int       `json:"points"`
	ClaimedAt        time.Time `json:"claimedAt"`
}

// Ledger stores at most one claim per (normalized wallet, asset class)
type Ledger interface {
	// GetClaim returns nil, nil when no claim exists
	GetClaim(ctx context.Context, walletAddress, assetClassID string) (*Claim, error)

	// SetClaim inserts atomically; ErrAlreadyClaimed if the pair is taken
	SetClaim(ctx context.Context, claim *Claim) error

	// GetAllClaims returns the wallet's claims keyed by asset class id
	GetAllClaims(ctx context.Context, walletAddress string) (map[string]*Claim, error)
}
