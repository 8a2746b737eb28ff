package claim

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-sql-driver/mysql"
	"github.com/rallyprotocol/rally-claim/internal/asset"
	pkgdb "github.com/rallyprotocol/rally-claim/pkg/db"
	"github.com/rallyprotocol/rally-claim/pkg/kv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const evmWallet = "0x9830B32F7210F0857A859C2A86387E4D1BB760B8"

func testClaim(wallet, assetID string, points int) *Claim {
	return &Claim{
		WalletAddress:    wallet,
		AssetClassID:     assetID,
		ExternalUsername: "rally_fan",
		Signature:        "sig",
		RewardPoints:     points,
		ClaimedAt:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKVLedgerRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ledger := NewKVLedger(kv.NewRedisStore(client, zap.NewNop()), asset.Default(), zap.NewNop())
	ctx := context.Background()

	if err := ledger.SetClaim(ctx, testClaim(evmWallet, "kaito", 1800)); err != nil {
		t.Fatalf("SetClaim: %v", err)
	}
	if !mr.Exists("claim:0x9830b32f7210f0857a859c2a86387e4d1bb760b8:kaito") {
		t.Fatalf("claim key missing, keys = %v", mr.Keys())
	}
	if ttl := mr.TTL("claim:0x9830b32f7210f0857a859c2a86387e4d1bb760b8:kaito"); ttl != 0 {
		t.Fatalf("claim key has ttl %v", ttl)
	}

	err := ledger.SetClaim(ctx, testClaim("0x9830b32f7210f0857a859c2a86387e4d1bb760b8", "kaito", 1800))
	if !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("second SetClaim error = %v, want ErrAlreadyClaimed", err)
	}

	got, err := ledger.GetClaim(ctx, "0x9830b32f7210f0857a859c2a86387e4d1bb760b8", "kaito")
	if err != nil || got == nil || got.RewardPoints != 1800 || got.WalletAddress != evmWallet {
		t.Fatalf("GetClaim = %+v, %v", got, err)
	}

	if missing, err := ledger.GetClaim(ctx, evmWallet, "cookie"); err != nil || missing != nil {
		t.Fatalf("GetClaim(cookie) = %+v, %v", missing, err)
	}

	all, err := ledger.GetAllClaims(ctx, evmWallet)
	if err != nil || len(all) != 1 || all["kaito"] == nil {
		t.Fatalf("GetAllClaims = %v, %v", all, err)
	}
}

func TestKVLedgerBackendFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	ledger := NewKVLedger(kv.NewRedisStore(client, zap.NewNop()), asset.Default(), zap.NewNop())
	err := ledger.SetClaim(context.Background(), testClaim(evmWallet, "kaito", 1800))
	if err == nil || errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("SetClaim error = %v, want transport error", err)
	}
}

func newMockLedger(t *testing.T) (*MySQLLedger, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewMySQLLedger(db, zap.NewNop()), mock
}

var claimColumns = []string{"wallet_address", "asset_class_id", "x_username", "signature", "points", "claimed_at"}

func TestMySQLLedgerSetClaim(t *testing.T) {
	ledger, mock := newMockLedger(t)
	c := testClaim(evmWallet, "kaito", 1800)

	mock.ExpectExec("INSERT INTO claims").
		WithArgs("0x9830b32f7210f0857a859c2a86387e4d1bb760b8", "kaito", "rally_fan", "sig", 1800, c.ClaimedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO claims").
		WillReturnError(&mysql.MySQLError{Number: mysqlErrDuplicateEntry, Message: "Duplicate entry"})
	mock.ExpectExec("INSERT INTO claims").
		WillReturnError(errors.New("connection lost"))

	if err := ledger.SetClaim(context.Background(), c); err != nil {
		t.Fatalf("SetClaim: %v", err)
	}
	if err := ledger.SetClaim(context.Background(), c); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("duplicate SetClaim error = %v", err)
	}
	if err := ledger.SetClaim(context.Background(), c); err == nil || errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("failing SetClaim error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMySQLLedgerGetClaim(t *testing.T) {
	ledger, mock := newMockLedger(t)
	claimedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM claims WHERE wallet_address = \\? AND asset_class_id = \\?").
		WithArgs("HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR", "wallchain").
		WillReturnRows(sqlmock.NewRows(claimColumns).
			AddRow("HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR", "wallchain", "rally_fan", "sig", 2500, claimedAt))
	mock.ExpectQuery("SELECT (.+) FROM claims").
		WillReturnRows(sqlmock.NewRows(claimColumns))

	got, err := ledger.GetClaim(context.Background(), "HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR", "wallchain")
	if err != nil || got == nil || got.RewardPoints != 2500 || !got.ClaimedAt.Equal(claimedAt) {
		t.Fatalf("GetClaim = %+v, %v", got, err)
	}

	missing, err := ledger.GetClaim(context.Background(), "HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR", "kaito")
	if err != nil || missing != nil {
		t.Fatalf("GetClaim(missing) = %+v, %v", missing, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMySQLLedgerGetAllClaims(t *testing.T) {
	ledger, mock := newMockLedger(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM claims WHERE wallet_address = \\?").
		WithArgs("0x9830b32f7210f0857a859c2a86387e4d1bb760b8").
		WillReturnRows(sqlmock.NewRows(claimColumns).
			AddRow("0x9830b32f7210f0857a859c2a86387e4d1bb760b8", "kaito", "u", "s", 1800, now).
			AddRow("0x9830b32f7210f0857a859c2a86387e4d1bb760b8", "cookie", "u", "s", 1200, now))

	all, err := ledger.GetAllClaims(context.Background(), evmWallet)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all["kaito"].RewardPoints != 1800 || all["cookie"].RewardPoints != 1200 {
		t.Fatalf("GetAllClaims = %v", all)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSchemaComparesWalletsByteForByte(t *testing.T) {
	ledger, mock := newMockLedger(t)

	mock.ExpectExec(regexp.QuoteMeta("wallet_address VARCHAR(64) CHARACTER SET ascii COLLATE ascii_bin NOT NULL")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := pkgdb.Migrate(context.Background(), ledger.db, Schema); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// base58 wallets reach the table with their case intact
	const lower = "hxssfm9wxqwj79chaunl6oszxqjj5imuwrjefrbvybr"
	const mixed = "HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR"
	for _, wallet := range []string{mixed, lower} {
		c := testClaim(wallet, "wallchain", 2500)
		mock.ExpectExec("INSERT INTO claims").
			WithArgs(wallet, "wallchain", "rally_fan", "sig", 2500, c.ClaimedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		if err := ledger.SetClaim(context.Background(), c); err != nil {
			t.Fatalf("SetClaim(%s): %v", wallet, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
