package holders

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
)

// Stats are snapshot-wide totals
type Stats struct {
	TotalContracts    int `json:"totalContracts" example:"12"`
	TotalHolders      int `json:"totalHolders" example:"4210"`
	VerifiedContracts int `json:"verifiedContracts" example:"9"`
}

// Store is the read side of the holder snapshot
type Store interface {
	// ListContracts returns every contract ordered by type then name, or only
	// contracts of typ ordered by name when typ is non-empty.
	ListContracts(ctx context.Context, typ ContractType) ([]Contract, error)

	// GetContract returns nil, nil for an unknown contract
	GetContract(ctx context.Context, contractAddress string) (*Contract, error)

	// ListHolders returns holders by rank. limit <= 0 returns all of them.
	ListHolders(ctx context.Context, contractAddress string, limit, offset int) ([]Holder, error)

	CountHolders(ctx context.Context, contractAddress string) (int, error)

	Stats(ctx context.Context) (*Stats, error)
}

// SnapshotStore serves a snapshot loaded into memory. It is immutable after
// construction and safe for concurrent use.
type SnapshotStore struct {
	contracts []Contract
	byKey     map[string]int
	holders   map[string][]Holder
	stats     Stats
}

// Compile-time interface compliance check
var _ Store = (*SnapshotStore)(nil)

// NewSnapshotStore indexes a snapshot. When a contract appears twice the
// first entry wins. A nil snapshot yields an empty store.
func NewSnapshotStore(snapshot Snapshot) *SnapshotStore {
	s := &SnapshotStore{
		byKey:   make(map[string]int, len(snapshot)),
		holders: make(map[string][]Holder, len(snapshot)),
	}

	for _, c := range snapshot {
		key := ContractKey(c.Address)
		if _, dup := s.byKey[key]; dup {
			continue
		}
		s.byKey[key] = len(s.contracts)
		s.contracts = append(s.contracts, c.Contract)

		ranked := slices.Clone(c.Holders)
		slices.SortStableFunc(ranked, func(a, b Holder) int { return cmp.Compare(a.Rank, b.Rank) })
		s.holders[key] = ranked

		s.stats.TotalHolders += len(ranked)
		if c.Verified {
			s.stats.VerifiedContracts++
		}
	}
	s.stats.TotalContracts = len(s.contracts)

	slices.SortStableFunc(s.contracts, func(a, b Contract) int {
		return cmp.Or(cmp.Compare(a.Type, b.Type), cmp.Compare(a.Name, b.Name))
	})
	for i, c := range s.contracts {
		s.byKey[ContractKey(c.Address)] = i
	}
	return s
}

func (s *SnapshotStore) ListContracts(_ context.Context, typ ContractType) ([]Contract, error) {
	out := make([]Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		if typ == "" || c.Type == typ {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *SnapshotStore) GetContract(_ context.Context, contractAddress string) (*Contract, error) {
	i, ok := s.byKey[ContractKey(contractAddress)]
	if !ok {
		return nil, nil
	}
	c := s.contracts[i]
	return &c, nil
}

func (s *SnapshotStore) ListHolders(_ context.Context, contractAddress string, limit, offset int) ([]Holder, error) {
	ranked := s.holders[ContractKey(contractAddress)]
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ranked) {
		return []Holder{}, nil
	}
	end := len(ranked)
	if limit > 0 {
		end = min(offset+limit, end)
	}
	return slices.Clone(ranked[offset:end]), nil
}

func (s *SnapshotStore) CountHolders(_ context.Context, contractAddress string) (int, error) {
	return len(s.holders[ContractKey(contractAddress)]), nil
}

func (s *SnapshotStore) Stats(context.Context) (*Stats, error) {
	stats := s.stats
	return &stats, nil
}

const selectContractColumns = `SELECT address, name, project, network, type, holders_count, total_supply, verified, verified_at, source, explorer FROM contracts`

// MySQLStore reads the contracts and holders tables
type MySQLStore struct {
	db *sql.DB
}

// Compile-time interface compliance check
var _ Store = (*MySQLStore)(nil)

// NewMySQLStore creates a MySQL-backed holder store
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func scanContract(row interface{ Scan(...any) error }) (*Contract, error) {
	var (
		c          Contract
		verifiedAt sql.NullTime
	)
	err := row.Scan(&c.Address, &c.Name, &c.Project, &c.Network, &c.Type, &c.HoldersCount,
		&c.TotalSupply, &c.Verified, &verifiedAt, &c.Source, &c.Explorer)
	if err != nil {
		return nil, err
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		c.VerifiedAt = &t
	}
	return &c, nil
}

func (s *MySQLStore) ListContracts(ctx context.Context, typ ContractType) ([]Contract, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if typ == "" {
		rows, err = s.db.QueryContext(ctx, selectContractColumns+` ORDER BY type, name`)
	} else {
		rows, err = s.db.QueryContext(ctx, selectContractColumns+` WHERE type = ? ORDER BY name`, string(typ))
	}
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	contracts := make([]Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		contracts = append(contracts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return contracts, nil
}

func (s *MySQLStore) GetContract(ctx context.Context, contractAddress string) (*Contract, error) {
	row := s.db.QueryRowContext(ctx, selectContractColumns+` WHERE address = ?`, ContractKey(contractAddress))
	c, err := scanContract(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

func (s *MySQLStore) ListHolders(ctx context.Context, contractAddress string, limit, offset int) ([]Holder, error) {
	query := `SELECT holder_rank, address, quantity, percentage FROM holders WHERE contract_address = ? ORDER BY holder_rank`
	args := []any{ContractKey(contractAddress)}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, max(offset, 0))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list holders: %w", err)
	}
	defer rows.Close()

	holders := make([]Holder, 0)
	for rows.Next() {
		var h Holder
		if err := rows.Scan(&h.Rank, &h.Address, &h.Quantity, &h.Percentage); err != nil {
			return nil, fmt.Errorf("scan holder: %w", err)
		}
		holders = append(holders, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list holders: %w", err)
	}
	return holders, nil
}

func (s *MySQLStore) CountHolders(ctx context.Context, contractAddress string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM holders WHERE contract_address = ?`, ContractKey(contractAddress)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count holders: %w", err)
	}
	return n, nil
}

func (s *MySQLStore) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(verified), 0) FROM contracts`).
		Scan(&stats.TotalContracts, &stats.VerifiedContracts)
	if err != nil {
		return nil, fmt.Errorf("contract stats: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM holders`).Scan(&stats.TotalHolders); err != nil {
		return nil, fmt.Errorf("holder stats: %w", err)
	}
	return &stats, nil
}
