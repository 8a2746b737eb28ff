package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rallyprotocol/rally-claim/pkg/address"
	"github.com/rallyprotocol/rally-claim/pkg/kv"
	"go.uber.org/zap"
)

const (
	linkKeyPrefix  = "xlink"
	tokenKeyPrefix = "oauth"

	// DefaultRequestTokenTTL bounds how long a user has to finish the X consent screen
	DefaultRequestTokenTTL = 10 * time.Minute
)

// ErrTokenNotFound is returned when a request token is unknown or expired
var ErrTokenNotFound = errors.New("request token not found")

// Link associates a wallet with an X account
type Link struct {
	WalletAddress    string    `json:"walletAddress"`
	ExternalUserID   string    `json:"xUserId"`
	ExternalUsername string    `json:"xUsername"`
	LinkedAt         time.Time `json:"linkedAt"`
}

// LinkReader is the read side used by the claim flow
type LinkReader interface {
	// GetLink returns nil, nil when the wallet has no link
	GetLink(ctx context.Context, walletAddress string) (*Link, error)
}

// LinkStore persists identity links. Last write wins.
type LinkStore interface {
	LinkReader
	SetLink(ctx context.Context, link *Link) error
}

// KVLinkStore implements LinkStore on a kv.Store
type KVLinkStore struct {
	kv     kv.Store
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ LinkStore = (*KVLinkStore)(nil)

// NewKVLinkStore creates a link store
func NewKVLinkStore(store kv.Store, logger *zap.Logger) *KVLinkStore {
	return &KVLinkStore{kv: store, logger: logger}
}

// Format: xlink:{normalized wallet}
func linkKey(walletAddress string) string {
	return fmt.Sprintf("%s:%s", linkKeyPrefix, address.Normalize(walletAddress))
}

func (s *KVLinkStore) GetLink(ctx context.Context, walletAddress string) (*Link, error) {
	payload, err := s.kv.Get(ctx, linkKey(walletAddress))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get link: %w", err)
	}

	var link Link
	if err := json.Unmarshal(payload, &link); err != nil {
		return nil, fmt.Errorf("decode link: %w", err)
	}
	return &link, nil
}

func (s *KVLinkStore) SetLink(ctx context.Context, link *Link) error {
	payload, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("encode link: %w", err)
	}
	if err := s.kv.Set(ctx, linkKey(link.WalletAddress), payload, 0); err != nil {
		return fmt.Errorf("set link: %w", err)
	}

	s.logger.Info("identity linked",
		zap.String("wallet", link.WalletAddress),
		zap.String("x_username", link.ExternalUsername),
	)
	return nil
}

// PendingToken is a request token waiting for the X callback
type PendingToken struct {
	Token         string    `json:"oauthToken"`
	TokenSecret   string    `json:"oauthTokenSecret"`
	WalletAddress string    `json:"walletAddress"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// TokenStore keeps pending request tokens under oauth:{token}
type TokenStore struct {
	kv  kv.Store
	ttl time.Duration
	now func() time.Time
}

// NewTokenStore creates a token store; ttl <= 0 means DefaultRequestTokenTTL
func NewTokenStore(store kv.Store, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = DefaultRequestTokenTTL
	}
	return &TokenStore{kv: store, ttl: ttl, now: time.Now}
}

func tokenKey(token string) string {
	return fmt.Sprintf("%s:%s", tokenKeyPrefix, token)
}

// Save stores a request token with the store's TTL
func (s *TokenStore) Save(ctx context.Context, token, tokenSecret, walletAddress string) error {
	pending := PendingToken{
		Token:         token,
		TokenSecret:   tokenSecret,
		WalletAddress: walletAddress,
		ExpiresAt:     s.now().Add(s.ttl),
	}
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encode request token: %w", err)
	}
	if err := s.kv.Set(ctx, tokenKey(token), payload, s.ttl); err != nil {
		return fmt.Errorf("set request token: %w", err)
	}
	return nil
}

// Take fetches and deletes a request token in one step
func (s *TokenStore) Take(ctx context.Context, token string) (*PendingToken, error) {
	payload, err := s.kv.GetDel(ctx, tokenKey(token))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("take request token: %w", err)
	}

	var pending PendingToken
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, ErrTokenNotFound
	}
	if !s.now().Before(pending.ExpiresAt) {
		return nil, ErrTokenNotFound
	}
	return &pending, nil
}
