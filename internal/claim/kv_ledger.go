package claim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rallyprotocol/rally-claim/internal/asset"
	"github.com/rallyprotocol/rally-claim/pkg/address"
	"github.com/rallyprotocol/rally-claim/pkg/kv"
	"go.uber.org/zap"
)

const claimKeyPrefix = "claim"

// KVLedger implements Ledger on a kv.Store using SetNX for insert-if-absent
type KVLedger struct {
	kv      kv.Store
	catalog *asset.Catalog
	logger  *zap.Logger
}

// Compile-time interface compliance check
var _ Ledger = (*KVLedger)(nil)

// NewKVLedger creates a KV-backed ledger. The catalog enumerates the keys
// GetAllClaims reads.
func NewKVLedger(store kv.Store, catalog *asset.Catalog, logger *zap.Logger) *KVLedger {
	return &KVLedger{kv: store, catalog: catalog, logger: logger}
}

// Format: claim:{normalized wallet}:{asset class id}
func claimKey(walletAddress, assetClassID string) string {
	return fmt.Sprintf("%s:%s:%s", claimKeyPrefix, address.Normalize(walletAddress), assetClassID)
}

func (l *KVLedger) GetClaim(ctx context.Context, walletAddress, assetClassID string) (*Claim, error) {
	payload, err := l.kv.Get(ctx, claimKey(walletAddress, assetClassID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get claim: %w", err)
	}

	var c Claim
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("decode claim: %w", err)
	}
	return &c, nil
}

func (l *KVLedger) SetClaim(ctx context.Context, c *Claim) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode claim: %w", err)
	}

	ok, err := l.kv.SetNX(ctx, claimKey(c.WalletAddress, c.AssetClassID), payload, 0)
	if err != nil {
		return fmt.Errorf("set claim: %w", err)
	}
	if !ok {
		return ErrAlreadyClaimed
	}
	return nil
}

func (l *KVLedger) GetAllClaims(ctx context.Context, walletAddress string) (map[string]*Claim, error) {
	claims := make(map[string]*Claim)
	for _, id := range l.catalog.IDs() {
		c, err := l.GetClaim(ctx, walletAddress, id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			claims[id] = c
		}
	}
	return claims, nil
}
