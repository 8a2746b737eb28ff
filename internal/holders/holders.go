// Package holders is the read model of the contract holder snapshot: the
// tracked contracts and a ranked holder list per contract. Eligibility reads
// quantities from it and the audit API lists it.
package holders

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ContractType distinguishes NFT collections from fungible tokens
type ContractType string

const (
	TypeNFT   ContractType = "nft"
	TypeToken ContractType = "token"
)

// Valid reports whether t is a known contract type
func (t ContractType) Valid() bool {
	return t == TypeNFT || t == TypeToken
}

// Contract is one tracked collection or token
type Contract struct {
	Address      string       `json:"address" example:"0x9830b32f7210f0857a859c2a86387e4d1bb760b8"`
	Name         string       `json:"name" example:"Yapybaras"`
	Project      string       `json:"project,omitempty" example:"Kaito"`
	Network      string       `json:"network" example:"ETH"`
	Type         ContractType `json:"type" example:"nft"`
	HoldersCount int          `json:"holdersCount" example:"1001"`
	TotalSupply  string       `json:"totalSupply" example:"1500"`
	Verified     bool         `json:"verified"`
	VerifiedAt   *time.Time   `json:"verifiedAt,omitempty"`
	Source       string       `json:"source,omitempty" example:"Blockscout"`
	Explorer     string       `json:"explorer,omitempty"`
}

// Holder is one ranked row of a contract's holder list
type Holder struct {
	Rank       int     `json:"rank" example:"1"`
	Address    string  `json:"address"`
	Quantity   float64 `json:"quantity" example:"26"`
	Percentage string  `json:"percentage" example:"1.73"`
}

// ContractSnapshot is a contract with its holders, as stored in a snapshot file
type ContractSnapshot struct {
	Contract
	Holders []Holder `json:"holders"`
}

// Snapshot is the full holder snapshot
type Snapshot []ContractSnapshot

// ContractKey is the lookup form of a contract address. Contracts match
// case-insensitively on every chain.
func ContractKey(contractAddress string) string {
	return strings.ToLower(strings.TrimSpace(contractAddress))
}

// LoadSnapshot reads a JSON array of contracts, each with its "holders" list
func LoadSnapshot(path string, logger *zap.Logger) (Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holder snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("parse holder snapshot: %w", err)
	}
	for i, c := range snapshot {
		if c.Address == "" {
			return nil, fmt.Errorf("parse holder snapshot: contract %d has no address", i)
		}
	}

	logger.Info("holder snapshot loaded",
		zap.String("path", path),
		zap.Int("contracts", len(snapshot)),
	)
	return snapshot, nil
}

// ContractsSchema is the DDL for the contracts table.
// Contract addresses compare case-insensitively.
const ContractsSchema = `CREATE TABLE IF NOT EXISTS contracts (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	address VARCHAR(64) CHARACTER SET ascii COLLATE ascii_general_ci NOT NULL,
	name VARCHAR(128) NOT NULL,
	project VARCHAR(128) NOT NULL DEFAULT '',
	network VARCHAR(16) NOT NULL,
	type ENUM('nft', 'token') NOT NULL,
	holders_count INT NOT NULL DEFAULT 0,
	total_supply VARCHAR(78) NOT NULL DEFAULT '0',
	verified BOOLEAN NOT NULL DEFAULT FALSE,
	verified_at DATETIME NULL,
	source VARCHAR(64) NOT NULL DEFAULT '',
	explorer VARCHAR(255) NOT NULL DEFAULT '',
	UNIQUE KEY uq_contracts_address (address),
	KEY idx_contracts_type (type)
)`

// HoldersSchema is the DDL for the holders table. Wallet addresses are
// stored in address.Normalize form and compare byte-for-byte, since base58
// is case sensitive.
const HoldersSchema = `CREATE TABLE IF NOT EXISTS holders (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	contract_address VARCHAR(64) CHARACTER SET ascii COLLATE ascii_general_ci NOT NULL,
	holder_rank INT NOT NULL DEFAULT 0,
	address VARCHAR(64) CHARACTER SET ascii COLLATE ascii_bin NOT NULL,
	quantity DOUBLE NOT NULL DEFAULT 0,
	percentage VARCHAR(16) NOT NULL DEFAULT '',
	UNIQUE KEY uq_holders_contract_address (contract_address, address),
	KEY idx_holders_rank (contract_address, holder_rank)
)`
