package eligibility

// CheckRequest carries the connected wallets; at least one is required
type CheckRequest struct {
	WalletAddress string `json:"walletAddress" example:"HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR"`
	EthAddress    string `json:"ethAddress" example:"0x9830b32f7210f0857a859c2a86387e4d1bb760b8"`
}

// Result is the eligibility of one asset class
type Result struct {
	Eligible bool    `json:"eligible" example:"true"`
	Count    float64 `json:"count" example:"3"`
}

// CheckResponse maps asset class id to its result
type CheckResponse struct {
	Eligibility   map[string]Result `json:"eligibility"`
	WalletAddress string            `json:"walletAddress"`
	Addresses     []string          `json:"addresses"` // well-formed addresses that were looked up
}
