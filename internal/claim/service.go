// Package claim runs the claim authorization protocol: nonce challenge,
// identity link check, signature verification and the one-claim-per-asset
// ledger.
package claim

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/rallyprotocol/rally-claim/internal/asset"
	"github.com/rallyprotocol/rally-claim/internal/common/errors"
	"github.com/rallyprotocol/rally-claim/internal/identity"
	"github.com/rallyprotocol/rally-claim/pkg/address"
	"github.com/rallyprotocol/rally-claim/pkg/nonce"
	"github.com/rallyprotocol/rally-claim/pkg/sigverify"
	"github.com/rallyprotocol/rally-claim/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/rallyprotocol/rally-claim/internal/claim"

// Service orchestrates claims. It holds no locks: the nonce store's atomic
// consume and the ledger's insert-if-absent carry the concurrency guarantees.
type Service struct {
	nonces   nonce.Store
	links    identity.LinkReader
	ledger   Ledger
	verifier sigverify.Verifier
	catalog  *asset.Catalog
	tracer   trace.Tracer
	now      func() time.Time
	logger   *zap.Logger
}

// NewService creates a new claim service
func NewService(
	nonces nonce.Store,
	links identity.LinkReader,
	ledger Ledger,
	verifier sigverify.Verifier,
	catalog *asset.Catalog,
	logger *zap.Logger,
) *Service {
	return &Service{
		nonces:   nonces,
		links:    links,
		ledger:   ledger,
		verifier: verifier,
		catalog:  catalog,
		tracer:   telemetry.Tracer(tracerName),
		now:      time.Now,
		logger:   logger,
	}
}

func fail(span trace.Span, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		span.SetAttributes(attribute.String("error.code", appErr.Code))
	}
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (s *Service) invalidAssetClass() *errors.AppError {
	return errors.InvalidAssetClass().WithDetails(map[string]any{"supported": s.catalog.IDs()})
}

// RequestNonce issues a challenge for (wallet, asset class)
func (s *Service) RequestNonce(ctx context.Context, walletAddress, assetClassID string) (*NonceResponse, error) {
	ctx, span := s.tracer.Start(ctx, "claim.RequestNonce",
		trace.WithAttributes(attribute.String("nft_type", assetClassID)))
	defer span.End()

	if walletAddress == "" || assetClassID == "" {
		return nil, fail(span, errors.MissingField("Wallet address and NFT type required"))
	}
	if _, ok := s.catalog.Lookup(assetClassID); !ok {
		return nil, fail(span, s.invalidAssetClass())
	}

	issued, err := s.nonces.Issue(ctx, walletAddress, assetClassID)
	if err != nil {
		s.logger.Error("failed to issue nonce",
			zap.String("wallet", walletAddress),
			zap.String("nft_type", assetClassID),
			zap.Error(err),
		)
		return nil, fail(span, errors.StoreError(err))
	}

	return &NonceResponse{
		Nonce:   issued.Nonce,
		Message: issued.Message,
	}, nil
}

// SubmitClaim verifies a signed challenge and records the claim.
// The checks run in a fixed order and the nonce is consumed before any
// other check, so a rejected submission still burns its nonce.
func (s *Service) SubmitClaim(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	ctx, span := s.tracer.Start(ctx, "claim.Submit",
		trace.WithAttributes(attribute.String("nft_type", req.AssetClassID)))
	defer span.End()

	// 1. Required fields
	if req.WalletAddress == "" || req.AssetClassID == "" || req.Signature == "" || req.Nonce == "" {
		return nil, fail(span, errors.MissingField("Missing required fields"))
	}

	// 2. Asset class
	class, ok := s.catalog.Lookup(req.AssetClassID)
	if !ok {
		return nil, fail(span, s.invalidAssetClass())
	}

	// 3. Consume nonce (single use)
	record, err := s.nonces.Consume(ctx, req.Nonce)
	if err != nil {
		switch {
		case stderrors.Is(err, nonce.ErrNotFound):
			return nil, fail(span, errors.InvalidOrExpiredNonce())
		case stderrors.Is(err, nonce.ErrExpired):
			return nil, fail(span, errors.NonceExpired())
		}
		s.logger.Error("failed to consume nonce", zap.String("wallet", req.WalletAddress), zap.Error(err))
		return nil, fail(span, errors.StoreError(err))
	}

	// 4. Nonce binding
	if !address.Equal(record.WalletAddress, req.WalletAddress) || record.AssetClassID != req.AssetClassID {
		s.logger.Warn("nonce bound to another wallet or asset",
			zap.String("wallet", req.WalletAddress),
			zap.String("nft_type", req.AssetClassID),
		)
		return nil, fail(span, errors.NonceMismatch())
	}

	// 5. Identity link
	link, err := s.links.GetLink(ctx, req.WalletAddress)
	if err != nil {
		s.logger.Error("failed to get identity link", zap.String("wallet", req.WalletAddress), zap.Error(err))
		return nil, fail(span, errors.StoreError(err))
	}
	if link == nil {
		return nil, fail(span, errors.IdentityNotLinked())
	}

	// 6. Fast duplicate check; SetClaim below is the authoritative one
	existing, err := s.ledger.GetClaim(ctx, req.WalletAddress, req.AssetClassID)
	if err != nil {
		s.logger.Error("failed to get claim", zap.String("wallet", req.WalletAddress), zap.Error(err))
		return nil, fail(span, errors.StoreError(err))
	}
	if existing != nil {
		return nil, fail(span, errors.AlreadyClaimed())
	}

	// 7. Signature over the reconstructed message
	message := nonce.BuildClaimMessage(req.WalletAddress, req.AssetClassID, req.Nonce)
	if !s.verifier.Verify(message, req.Signature, req.WalletAddress) {
		return nil, fail(span, errors.InvalidSignature())
	}

	// 8. Record
	c := &Claim{
		WalletAddress:    req.WalletAddress,
		AssetClassID:     req.AssetClassID,
		ExternalUsername: link.ExternalUsername,
		Signature:        req.Signature,
		RewardPoints:     class.RewardPoints,
		ClaimedAt:        s.now().UTC(),
	}
	if err := s.ledger.SetClaim(ctx, c); err != nil {
		if stderrors.Is(err, ErrAlreadyClaimed) {
			return nil, fail(span, errors.AlreadyClaimed())
		}
		s.logger.Error("failed to record claim", zap.String("wallet", req.WalletAddress), zap.Error(err))
		return nil, fail(span, errors.StoreError(err))
	}

	s.logger.Info("claim recorded",
		zap.String("wallet", req.WalletAddress),
		zap.String("nft_type", req.AssetClassID),
		zap.String("x_username", link.ExternalUsername),
		zap.Int("points", class.RewardPoints),
	)

	return &SubmitResponse{
		Success:      true,
		Points:       class.RewardPoints,
		AssetClassID: req.AssetClassID,
	}, nil
}

// Status lists the wallet's claims across every asset class
func (s *Service) Status(ctx context.Context, walletAddress string) (*StatusResponse, error) {
	ctx, span := s.tracer.Start(ctx, "claim.Status")
	defer span.End()

	if walletAddress == "" {
		return nil, fail(span, errors.MissingField("Wallet address required"))
	}

	claims, err := s.ledger.GetAllClaims(ctx, walletAddress)
	if err != nil {
		s.logger.Error("failed to list claims", zap.String("wallet", walletAddress), zap.Error(err))
		return nil, fail(span, errors.StoreError(err))
	}

	resp := &StatusResponse{Claims: make(map[string]ClaimStatus, len(s.catalog.IDs()))}
	for _, id := range s.catalog.IDs() {
		c, ok := claims[id]
		if !ok {
			resp.Claims[id] = ClaimStatus{Claimed: false}
			continue
		}
		claimedAt := c.ClaimedAt
		resp.Claims[id] = ClaimStatus{
			Claimed:   true,
			Points:    c.RewardPoints,
			ClaimedAt: &claimedAt,
		}
		resp.TotalPoints += c.RewardPoints
	}
	return resp, nil
}
