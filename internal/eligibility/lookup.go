package eligibility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rallyprotocol/rally-claim/internal/holders"
	"github.com/rallyprotocol/rally-claim/pkg/address"
)

// Lookup reports how many units of a collection a wallet holds.
// A wallet absent from the holder set has quantity 0.
type Lookup interface {
	LookupHolding(ctx context.Context, collectionAddress, walletAddress string) (float64, error)
}

// NoopLookup is used when no holder source is configured; every wallet is ineligible
type NoopLookup struct{}

func (NoopLookup) LookupHolding(context.Context, string, string) (float64, error) {
	return 0, nil
}

// SnapshotLookup serves holdings from an in-memory holder snapshot
type SnapshotLookup struct {
	holdings map[string]map[string]float64
}

// NewSnapshotLookup indexes a snapshot by contract and normalized wallet.
// Duplicate wallet rows are summed.
func NewSnapshotLookup(snapshot holders.Snapshot) *SnapshotLookup {
	holdings := make(map[string]map[string]float64, len(snapshot))
	for _, c := range snapshot {
		key := holders.ContractKey(c.Address)
		byWallet, ok := holdings[key]
		if !ok {
			byWallet = make(map[string]float64, len(c.Holders))
			holdings[key] = byWallet
		}
		for _, h := range c.Holders {
			byWallet[address.Normalize(h.Address)] += h.Quantity
		}
	}
	return &SnapshotLookup{holdings: holdings}
}

func (s *SnapshotLookup) LookupHolding(_ context.Context, collectionAddress, walletAddress string) (float64, error) {
	return s.holdings[holders.ContractKey(collectionAddress)][address.Normalize(walletAddress)], nil
}

// MySQLLookup reads holdings from the holders table (holders.HoldersSchema)
type MySQLLookup struct {
	db *sql.DB
}

// NewMySQLLookup creates a MySQL-backed lookup
func NewMySQLLookup(db *sql.DB) *MySQLLookup {
	return &MySQLLookup{db: db}
}

func (l *MySQLLookup) LookupHolding(ctx context.Context, collectionAddress, walletAddress string) (float64, error) {
	var quantity float64
	err := l.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM holders WHERE contract_address = ? AND address = ?`,
		holders.ContractKey(collectionAddress), address.Normalize(walletAddress),
	).Scan(&quantity)
	if err != nil {
		return 0, fmt.Errorf("lookup holding: %w", err)
	}
	return quantity, nil
}
