package audit

import "github.com/rallyprotocol/rally-claim/internal/holders"

// HoldersRequest selects one contract's holders
type HoldersRequest struct {
	Contract string `form:"contract"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	All      bool   `form:"all"`
}

// ContractsResponse lists tracked contracts with snapshot totals
type ContractsResponse struct {
	Contracts []holders.Contract `json:"contracts"`
	Stats     holders.Stats      `json:"stats"`
}

// Pagination describes one page of holders
type Pagination struct {
	Page       int `json:"page" example:"1"`
	PageSize   int `json:"pageSize" example:"50"`
	Total      int `json:"total" example:"1001"`
	TotalPages int `json:"totalPages" example:"21"`
}

// HoldersResponse is a ranked holder list. Pagination is omitted when all
// holders were requested.
type HoldersResponse struct {
	Contract        holders.Contract `json:"contract"`
	Holders         []holders.Holder `json:"holders"`
	Total           int              `json:"total" example:"1001"`
	Pagination      *Pagination      `json:"pagination,omitempty"`
	Network         string           `json:"network" example:"ETH"`
	ContractAddress string           `json:"contractAddress" example:"0x9830b32f7210f0857a859c2a86387e4d1bb760b8"`
}
