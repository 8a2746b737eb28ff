package nonce

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rallyprotocol/rally-claim/pkg/kv"
	"go.uber.org/zap"
)

const (
	// keyPrefix is the KV key prefix for nonces
	keyPrefix = "nonce"
)

// KVStore implements Store on top of a kv.Store
type KVStore struct {
	kv     kv.Store
	ttl    time.Duration
	now    func() time.Time
	random func([]byte) (int, error)
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ Store = (*KVStore)(nil)

// Option customizes a KVStore
type Option func(*KVStore)

// WithTTL overrides DefaultTTL
func WithTTL(ttl time.Duration) Option {
	return func(s *KVStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source (tests)
func WithClock(now func() time.Time) Option {
	return func(s *KVStore) {
		s.now = now
	}
}

// NewKVStore creates a nonce store with DefaultTTL
func NewKVStore(store kv.Store, logger *zap.Logger, opts ...Option) *KVStore {
	s := &KVStore{
		kv:     store,
		ttl:    DefaultTTL,
		now:    time.Now,
		random: rand.Read,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// buildKey creates a KV key from the nonce value
// Format: nonce:{value}
func buildKey(value string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, value)
}

func (s *KVStore) Issue(ctx context.Context, walletAddress, assetClassID string) (*Issued, error) {
	buf := make([]byte, entropyBytes)
	if _, err := s.random(buf); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	value := hex.EncodeToString(buf)

	record := Record{
		Value:         value,
		WalletAddress: walletAddress,
		AssetClassID:  assetClassID,
		ExpiresAt:     s.now().Add(s.ttl),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode nonce: %w", err)
	}

	// SetNX so a (practically impossible) collision never overwrites a live nonce
	ok, err := s.kv.SetNX(ctx, buildKey(value), payload, s.ttl)
	if err != nil {
		s.logger.Error("failed to store nonce",
			zap.String("wallet", walletAddress),
			zap.String("nft_type", assetClassID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("store nonce: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("store nonce: value collision")
	}

	s.logger.Debug("nonce issued",
		zap.String("wallet", walletAddress),
		zap.String("nft_type", assetClassID),
		zap.Time("expires_at", record.ExpiresAt),
	)

	return &Issued{
		Nonce:     value,
		Message:   BuildClaimMessage(walletAddress, assetClassID, value),
		ExpiresAt: record.ExpiresAt,
	}, nil
}

func (s *KVStore) Consume(ctx context.Context, value string) (*Record, error) {
	payload, err := s.kv.GetDel(ctx, buildKey(value))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("consume nonce: %w", err)
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		s.logger.Error("corrupt nonce record", zap.String("nonce", value), zap.Error(err))
		return nil, ErrNotFound
	}

	// the KV TTL and ExpiresAt can disagree by clock skew; ExpiresAt wins
	if !s.now().Before(record.ExpiresAt) {
		s.logger.Info("expired nonce consumed",
			zap.String("wallet", record.WalletAddress),
			zap.String("nft_type", record.AssetClassID),
		)
		return nil, ErrExpired
	}

	return &record, nil
}
