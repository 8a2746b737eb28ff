// Package identity links wallets to X accounts through the OAuth 1.0a
// three-legged flow.
package identity

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"
	"time"

	"github.com/rallyprotocol/rally-claim/internal/common/errors"
	"github.com/rallyprotocol/rally-claim/pkg/oauth1"
	"go.uber.org/zap"
)

// Callback outcome messages appended to the app redirect
const (
	outcomeMissingParams  = "missing_params"
	outcomeNotConfigured  = "not_configured"
	outcomeTokenExpired   = "token_expired"
	outcomeCallbackFailed = "callback_failed"
)

// TokenExchanger performs the provider side of the OAuth flow
type TokenExchanger interface {
	Configured() bool
	RequestToken(ctx context.Context, callbackURL string) (*oauth1.RequestToken, error)
	AccessToken(ctx context.Context, token, tokenSecret, verifier string) (*oauth1.AccessToken, error)
}

// Config holds the URLs of the linking flow
type Config struct {
	// AppURL is the frontend the callback redirects back to
	AppURL string
	// CallbackURL is registered with X; defaults to AppURL + /api/v1/auth/x/callback
	CallbackURL string
}

func (c Config) callbackURL() string {
	if c.CallbackURL != "" {
		return c.CallbackURL
	}
	return strings.TrimRight(c.AppURL, "/") + "/api/v1/auth/x/callback"
}

// Service handles identity linking
type Service struct {
	exchanger TokenExchanger
	links     LinkStore
	tokens    *TokenStore
	cfg       Config
	now       func() time.Time
	logger    *zap.Logger
}

// NewService creates a new identity service
func NewService(exchanger TokenExchanger, links LinkStore, tokens *TokenStore, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		exchanger: exchanger,
		links:     links,
		tokens:    tokens,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger,
	}
}

// StartLink obtains a request token bound to the wallet and returns the X consent URL
func (s *Service) StartLink(ctx context.Context, walletAddress string) (string, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return "", errors.MissingField("Wallet address required")
	}
	if !s.exchanger.Configured() {
		s.logger.Error("missing X OAuth credentials")
		return "", errors.Configuration("X authentication not configured")
	}
	if s.cfg.AppURL == "" {
		s.logger.Error("missing app url")
		return "", errors.Configuration("App URL not configured")
	}

	result, err := s.exchanger.RequestToken(ctx, s.cfg.callbackURL())
	if err != nil {
		s.logger.Error("failed to get request token", zap.String("wallet", walletAddress), zap.Error(err))
		return "", errors.ExternalService("Failed to initiate X authentication", err)
	}

	if err := s.tokens.Save(ctx, result.Token, result.TokenSecret, walletAddress); err != nil {
		s.logger.Error("failed to store request token", zap.String("wallet", walletAddress), zap.Error(err))
		return "", errors.StoreError(err)
	}

	return result.AuthorizationURL, nil
}

// CallbackParams are the query parameters X sends to the callback
type CallbackParams struct {
	Token    string
	Verifier string
	Denied   string
}

// CompleteLink finishes the flow and returns the app URL to redirect to.
// It never fails: every outcome is encoded in the redirect query.
func (s *Service) CompleteLink(ctx context.Context, params CallbackParams) string {
	if params.Denied != "" {
		return s.redirect(url.Values{"x_auth": {"denied"}})
	}
	if params.Token == "" || params.Verifier == "" {
		return s.redirectError(outcomeMissingParams)
	}
	if !s.exchanger.Configured() {
		return s.redirectError(outcomeNotConfigured)
	}

	pending, err := s.tokens.Take(ctx, params.Token)
	if err != nil {
		if stderrors.Is(err, ErrTokenNotFound) {
			return s.redirectError(outcomeTokenExpired)
		}
		s.logger.Error("failed to load request token", zap.Error(err))
		return s.redirectError(outcomeCallbackFailed)
	}

	access, err := s.exchanger.AccessToken(ctx, params.Token, pending.TokenSecret, params.Verifier)
	if err != nil {
		s.logger.Error("failed to exchange access token",
			zap.String("wallet", pending.WalletAddress),
			zap.Error(err),
		)
		return s.redirectError(outcomeCallbackFailed)
	}

	link := &Link{
		WalletAddress:    pending.WalletAddress,
		ExternalUserID:   access.UserID,
		ExternalUsername: access.ScreenName,
		LinkedAt:         s.now().UTC(),
	}
	if err := s.links.SetLink(ctx, link); err != nil {
		s.logger.Error("failed to store link", zap.String("wallet", pending.WalletAddress), zap.Error(err))
		return s.redirectError(outcomeCallbackFailed)
	}

	return s.redirect(url.Values{"x_auth": {"success"}, "username": {access.ScreenName}})
}

func (s *Service) redirectError(message string) string {
	return s.redirect(url.Values{"x_auth": {"error"}, "message": {message}})
}

func (s *Service) redirect(query url.Values) string {
	return s.cfg.AppURL + "?" + query.Encode()
}

// Status reports whether the wallet has a linked X account
func (s *Service) Status(ctx context.Context, walletAddress string) (*StatusResponse, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, errors.MissingField("Wallet address required")
	}

	link, err := s.links.GetLink(ctx, walletAddress)
	if err != nil {
		s.logger.Error("failed to get link", zap.String("wallet", walletAddress), zap.Error(err))
		return nil, errors.StoreError(err)
	}
	if link == nil {
		return &StatusResponse{Linked: false}, nil
	}

	linkedAt := link.LinkedAt
	return &StatusResponse{
		Linked:   true,
		Username: link.ExternalUsername,
		LinkedAt: &linkedAt,
	}, nil
}
