package claim

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/rallyprotocol/rally-claim/pkg/address"
	"go.uber.org/zap"
)

const (
	mysqlErrDuplicateEntry = 1062

	// Schema is the DDL for the claims table. wallet_address holds the
	// address.Normalize form and uses a binary collation so base58 wallets
	// differing only in case stay distinct.
	Schema = `CREATE TABLE IF NOT EXISTS claims (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	wallet_address VARCHAR(64) CHARACTER SET ascii COLLATE ascii_bin NOT NULL,
	asset_class_id VARCHAR(32) NOT NULL,
	x_username VARCHAR(64) NOT NULL,
	signature TEXT NOT NULL,
	points INT NOT NULL,
	claimed_at DATETIME(3) NOT NULL,
	UNIQUE KEY uq_claims_wallet_asset (wallet_address, asset_class_id)
)`

	selectClaimColumns = `SELECT wallet_address, asset_class_id, x_username, signature, points, claimed_at FROM claims`
)

// MySQLLedger implements Ledger on a claims table whose UNIQUE key
// guarantees one row per (wallet, asset class)
type MySQLLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ Ledger = (*MySQLLedger)(nil)

// NewMySQLLedger creates a MySQL-backed ledger
func NewMySQLLedger(db *sql.DB, logger *zap.Logger) *MySQLLedger {
	return &MySQLLedger{db: db, logger: logger}
}

func scanClaim(row interface{ Scan(...any) error }) (*Claim, error) {
	var c Claim
	if err := row.Scan(&c.WalletAddress, &c.AssetClassID, &c.ExternalUsername, &c.Signature, &c.RewardPoints, &c.ClaimedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (l *MySQLLedger) GetClaim(ctx context.Context, walletAddress, assetClassID string) (*Claim, error) {
	row := l.db.QueryRowContext(ctx,
		selectClaimColumns+` WHERE wallet_address = ? AND asset_class_id = ?`,
		address.Normalize(walletAddress), assetClassID,
	)
	c, err := scanClaim(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get claim: %w", err)
	}
	return c, nil
}

func (l *MySQLLedger) SetClaim(ctx context.Context, c *Claim) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO claims (wallet_address, asset_class_id, x_username, signature, points, claimed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		address.Normalize(c.WalletAddress), c.AssetClassID, c.ExternalUsername, c.Signature, c.RewardPoints, c.ClaimedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrAlreadyClaimed
		}
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

func (l *MySQLLedger) GetAllClaims(ctx context.Context, walletAddress string) (map[string]*Claim, error) {
	rows, err := l.db.QueryContext(ctx,
		selectClaimColumns+` WHERE wallet_address = ?`,
		address.Normalize(walletAddress),
	)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	claims := make(map[string]*Claim)
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claims[c.AssetClassID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return claims, nil
}

// isDuplicateKeyError checks if the error is a MySQL duplicate key error
func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return false
}
