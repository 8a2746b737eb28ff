package claim

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	stderrors "errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
	"github.com/rallyprotocol/rally-claim/internal/asset"
	"github.com/rallyprotocol/rally-claim/internal/common/errors"
	"github.com/rallyprotocol/rally-claim/internal/identity"
	"github.com/rallyprotocol/rally-claim/pkg/kv"
	"github.com/rallyprotocol/rally-claim/pkg/nonce"
	"github.com/rallyprotocol/rally-claim/pkg/sigverify"
	"go.uber.org/zap"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	svc    *Service
	links  *identity.KVLinkStore
	ledger Ledger
	clock  *testClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithLedger(t, nil)
}

func newTestEnvWithLedger(t *testing.T, ledger Ledger) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := kv.NewMemoryStore(logger)
	catalog := asset.Default()
	if ledger == nil {
		ledger = NewKVLedger(store, catalog, logger)
	}

	links := identity.NewKVLinkStore(store, logger)
	verifier := sigverify.NewRouter(sigverify.NewEd25519Verifier(logger), sigverify.NewEVMVerifier(logger), logger)
	svc := NewService(
		nonce.NewKVStore(store, logger, nonce.WithClock(clock.Now)),
		links,
		ledger,
		verifier,
		catalog,
		logger,
	)
	svc.now = clock.Now

	return &testEnv{svc: svc, links: links, ledger: ledger, clock: clock}
}

// signer is a wallet able to sign claim messages
type signer struct {
	address string
	sign    func(message string) string
}

func newSolanaSigner(t *testing.T) signer {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	return signer{
		address: base58.Encode(pub),
		sign: func(message string) string {
			return base64.StdEncoding.EncodeToString(ed25519.Sign(priv, []byte(message)))
		},
	}
}

func newEVMSigner(t *testing.T) signer {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	return signer{
		address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		sign: func(message string) string {
			sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
			if err != nil {
				t.Fatal(err)
			}
			sig[64] += 27
			return hexutil.Encode(sig)
		},
	}
}

func (e *testEnv) link(t *testing.T, wallet string) {
	t.Helper()
	err := e.links.SetLink(context.Background(), &identity.Link{
		WalletAddress:    wallet,
		ExternalUserID:   "42",
		ExternalUsername: "rally_fan",
		LinkedAt:         e.clock.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
}

// signedRequest issues a nonce for (wallet, asset) and signs it
func (e *testEnv) signedRequest(t *testing.T, w signer, assetID string) *SubmitRequest {
	t.Helper()
	n, err := e.svc.RequestNonce(context.Background(), w.address, assetID)
	if err != nil {
		t.Fatalf("RequestNonce: %v", err)
	}
	return &SubmitRequest{
		WalletAddress: w.address,
		AssetClassID:  assetID,
		Signature:     w.sign(n.Message),
		Nonce:         n.Nonce,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("error = %v, want AppError %s", err, code)
	}
	if appErr.Code != code {
		t.Fatalf("error code = %s, want %s", appErr.Code, code)
	}
}

func TestRequestNonce(t *testing.T) {
	env := newTestEnv(t)
	w := newSolanaSigner(t)

	resp, err := env.svc.RequestNonce(context.Background(), w.address, "wallchain")
	if err != nil {
		t.Fatalf("RequestNonce: %v", err)
	}
	want := "Rally Protocol Claim\nWallet: " + w.address + "\nNFT: wallchain\nNonce: " + resp.Nonce
	if resp.Message != want {
		t.Fatalf("message = %q, want %q", resp.Message, want)
	}
	if len(resp.Nonce) != 64 {
		t.Fatalf("nonce length = %d, want 64", len(resp.Nonce))
	}

	_, err = env.svc.RequestNonce(context.Background(), "", "wallchain")
	assertCode(t, err, errors.CodeMissingField)
	_, err = env.svc.RequestNonce(context.Background(), w.address, "")
	assertCode(t, err, errors.CodeMissingField)
	_, err = env.svc.RequestNonce(context.Background(), w.address, "punks")
	assertCode(t, err, errors.CodeInvalidAssetClass)
}

func TestInvalidAssetClassListsSupported(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.RequestNonce(context.Background(), "W", "punks")
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("error = %v, want AppError", err)
	}
	supported, ok := appErr.Details["supported"].([]string)
	if !ok || !slices.Equal(supported, asset.Default().IDs()) {
		t.Fatalf("details = %v, want supported classes %v", appErr.Details, asset.Default().IDs())
	}
}

func TestClaimOncePerAssetClass(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := newSolanaSigner(t)
	env.link(t, w.address)

	resp, err := env.svc.SubmitClaim(ctx, env.signedRequest(t, w, "wallchain"))
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}
	if !resp.Success || resp.Points != 2500 || resp.AssetClassID != "wallchain" {
		t.Fatalf("response = %+v", resp)
	}

	status, err := env.svc.Status(ctx, w.address)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.TotalPoints != 2500 {
		t.Fatalf("totalPoints = %d, want 2500", status.TotalPoints)
	}
	if wc := status.Claims["wallchain"]; !wc.Claimed || wc.Points != 2500 || wc.ClaimedAt == nil {
		t.Fatalf("wallchain status = %+v", wc)
	}
	if len(status.Claims) != 4 {
		t.Fatalf("status lists %d classes, want 4", len(status.Claims))
	}
	for _, id := range []string{"kaito", "skaito", "cookie"} {
		if status.Claims[id].Claimed {
			t.Fatalf("%s reported claimed", id)
		}
	}

	stored, _ := env.ledger.GetClaim(ctx, w.address, "wallchain")
	if stored == nil || stored.ExternalUsername != "rally_fan" {
		t.Fatalf("stored claim = %+v", stored)
	}

	// fresh nonce, valid signature, same pair
	_, err = env.svc.SubmitClaim(ctx, env.signedRequest(t, w, "wallchain"))
	assertCode(t, err, errors.CodeAlreadyClaimed)

	// a different class is still open
	if _, err := env.svc.SubmitClaim(ctx, env.signedRequest(t, w, "kaito")); err != nil {
		t.Fatalf("kaito claim: %v", err)
	}
	status, _ = env.svc.Status(ctx, w.address)
	if status.TotalPoints != 2500+1800 {
		t.Fatalf("totalPoints = %d, want 4300", status.TotalPoints)
	}
}

func TestNonceIsSingleUse(t *testing.T) {
	env := newTestEnv(t)
	w := newSolanaSigner(t)
	env.link(t, w.address)
	req := env.signedRequest(t, w, "wallchain")

	if _, err := env.svc.SubmitClaim(context.Background(), req); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	replay := *req
	_, err := env.svc.SubmitClaim(context.Background(), &replay)
	assertCode(t, err, errors.CodeInvalidOrExpiredNonce)
}

func TestNonceBinding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := newSolanaSigner(t)
	b := newSolanaSigner(t)
	env.link(t, a.address)
	env.link(t, b.address)

	// nonce issued to A, submitted by B
	req := env.signedRequest(t, a, "wallchain")
	req.WalletAddress = b.address
	req.Signature = b.sign(nonce.BuildClaimMessage(b.address, "wallchain", req.Nonce))
	_, err := env.svc.SubmitClaim(ctx, req)
	assertCode(t, err, errors.CodeNonceMismatch)

	// mismatched nonce stays consumed
	req.WalletAddress = a.address
	_, err = env.svc.SubmitClaim(ctx, req)
	assertCode(t, err, errors.CodeInvalidOrExpiredNonce)

	// nonce issued for wallchain, submitted for kaito
	req = env.signedRequest(t, a, "wallchain")
	req.AssetClassID = "kaito"
	_, err = env.svc.SubmitClaim(ctx, req)
	assertCode(t, err, errors.CodeNonceMismatch)
}

func TestExpiredNonce(t *testing.T) {
	env := newTestEnv(t)
	w := newSolanaSigner(t)
	env.link(t, w.address)

	req := env.signedRequest(t, w, "wallchain")
	env.clock.Advance(nonce.DefaultTTL + time.Second)

	_, err := env.svc.SubmitClaim(context.Background(), req)
	assertCode(t, err, errors.CodeNonceExpired)

	_, err = env.svc.SubmitClaim(context.Background(), req)
	assertCode(t, err, errors.CodeInvalidOrExpiredNonce)
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv(t)
	w := newSolanaSigner(t)

	tests := []struct {
		name string
		req  SubmitRequest
		code string
	}{
		{"empty", SubmitRequest{}, errors.CodeMissingField},
		{"no signature", SubmitRequest{WalletAddress: w.address, AssetClassID: "wallchain", Nonce: "n"}, errors.CodeMissingField},
		{"no nonce", SubmitRequest{WalletAddress: w.address, AssetClassID: "wallchain", Signature: "s"}, errors.CodeMissingField},
		{"unknown class", SubmitRequest{WalletAddress: w.address, AssetClassID: "punks", Signature: "s", Nonce: "n"}, errors.CodeInvalidAssetClass},
		{"unknown nonce", SubmitRequest{WalletAddress: w.address, AssetClassID: "wallchain", Signature: "s", Nonce: "n"}, errors.CodeInvalidOrExpiredNonce},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.SubmitClaim(context.Background(), &tt.req)
			assertCode(t, err, tt.code)
		})
	}
}

func TestIdentityRequired(t *testing.T) {
	env := newTestEnv(t)
	w := newSolanaSigner(t)
	req := env.signedRequest(t, w, "wallchain")

	_, err := env.svc.SubmitClaim(context.Background(), req)
	assertCode(t, err, errors.CodeIdentityNotLinked)

	// the nonce was burned; linking afterwards needs a new one
	env.link(t, w.address)
	_, err = env.svc.SubmitClaim(context.Background(), req)
	assertCode(t, err, errors.CodeInvalidOrExpiredNonce)
}

func TestInvalidSignature(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := newSolanaSigner(t)
	other := newSolanaSigner(t)
	env.link(t, w.address)

	req := env.signedRequest(t, w, "wallchain")
	req.Signature = other.sign(nonce.BuildClaimMessage(w.address, "wallchain", req.Nonce))
	_, err := env.svc.SubmitClaim(ctx, req)
	assertCode(t, err, errors.CodeInvalidSignature)

	// signature over a different message
	req = env.signedRequest(t, w, "wallchain")
	req.Signature = w.sign("Rally Protocol Claim")
	_, err = env.svc.SubmitClaim(ctx, req)
	assertCode(t, err, errors.CodeInvalidSignature)

	if c, _ := env.ledger.GetClaim(ctx, w.address, "wallchain"); c != nil {
		t.Fatal("claim recorded despite bad signature")
	}
}

func TestEVMWalletClaim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := newEVMSigner(t)
	env.link(t, strings.ToLower(w.address))

	resp, err := env.svc.SubmitClaim(ctx, env.signedRequest(t, w, "skaito"))
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}
	if resp.Points != 1500 {
		t.Fatalf("points = %d, want 1500", resp.Points)
	}

	// the claim key ignores hex case
	status, _ := env.svc.Status(ctx, strings.ToLower(w.address))
	if !status.Claims["skaito"].Claimed {
		t.Fatal("claim not visible through lowercased address")
	}

	lower := signer{address: strings.ToLower(w.address), sign: w.sign}
	_, err = env.svc.SubmitClaim(ctx, env.signedRequest(t, lower, "skaito"))
	assertCode(t, err, errors.CodeAlreadyClaimed)
}

func TestConcurrentSubmissionsRecordOneClaim(t *testing.T) {
	env := newTestEnv(t)
	w := newSolanaSigner(t)
	env.link(t, w.address)

	const workers = 16
	reqs := make([]*SubmitRequest, workers)
	for i := range reqs {
		reqs[i] = env.signedRequest(t, w, "cookie")
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, duplicates := 0, 0
	for _, req := range reqs {
		wg.Add(1)
		go func(req *SubmitRequest) {
			defer wg.Done()
			_, err := env.svc.SubmitClaim(context.Background(), req)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case stderrors.Is(err, errors.AlreadyClaimed()):
				duplicates++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(req)
	}
	wg.Wait()

	if successes != 1 || duplicates != workers-1 {
		t.Fatalf("successes = %d, duplicates = %d", successes, duplicates)
	}
}

type failingLedger struct{ err error }

func (f failingLedger) GetClaim(context.Context, string, string) (*Claim, error) { return nil, nil }
func (f failingLedger) SetClaim(context.Context, *Claim) error                   { return f.err }
func (f failingLedger) GetAllClaims(context.Context, string) (map[string]*Claim, error) {
	return nil, f.err
}

func TestLedgerFailure(t *testing.T) {
	env := newTestEnvWithLedger(t, failingLedger{err: stderrors.New("connection reset")})
	w := newSolanaSigner(t)
	env.link(t, w.address)

	_, err := env.svc.SubmitClaim(context.Background(), env.signedRequest(t, w, "wallchain"))
	assertCode(t, err, errors.CodeStoreError)

	_, err = env.svc.Status(context.Background(), w.address)
	assertCode(t, err, errors.CodeStoreError)
}

func TestStatusUnknownWallet(t *testing.T) {
	env := newTestEnv(t)

	status, err := env.svc.Status(context.Background(), "HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR")
	if err != nil {
		t.Fatal(err)
	}
	if status.TotalPoints != 0 || len(status.Claims) != 4 {
		t.Fatalf("status = %+v", status)
	}

	_, err = env.svc.Status(context.Background(), "")
	assertCode(t, err, errors.CodeMissingField)
}
