package claim

import "time"

// ============================================================================
// Request DTOs
// ============================================================================

// NonceRequest asks for a claim challenge
type NonceRequest struct {
	WalletAddress string `json:"walletAddress" example:"HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR"`
	AssetClassID  string `json:"nftType" example:"wallchain"`
}

// SubmitRequest redeems a claim with a signed challenge
type SubmitRequest struct {
	WalletAddress string `json:"walletAddress" example:"HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR"`
	AssetClassID  string `json:"nftType" example:"wallchain"`
	Signature     string `json:"signature" example:"base64 or 0x-hex signature"`
	Nonce         string `json:"nonce" example:"9f2c...e1"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// NonceResponse carries the challenge the wallet must sign
type NonceResponse struct {
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

// SubmitResponse confirms a recorded claim
type SubmitResponse struct {
	Success      bool   `json:"success" example:"true"`
	Points       int    `json:"points" example:"2500"`
	AssetClassID string `json:"nftType" example:"wallchain"`
}

// ClaimStatus is the state of one asset class for a wallet
type ClaimStatus struct {
	Claimed   bool       `json:"claimed"`
	Points    int        `json:"points,omitempty"`
	ClaimedAt *time.Time `json:"claimedAt,omitempty"`
}

// StatusResponse lists every asset class and the wallet's total
type StatusResponse struct {
	Claims      map[string]ClaimStatus `json:"claims"`
	TotalPoints int                    `json:"totalPoints" example:"2500"`
}
