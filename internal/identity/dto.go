package identity

import "time"

// RequestTokenRequest starts the linking flow for a wallet
type RequestTokenRequest struct {
	WalletAddress string `json:"walletAddress" example:"HxSsfM9WxQWj79chAUNL6osZxQjJj5iMUwrjEfRBvYBR"`
}

// RequestTokenResponse carries the X consent URL
type RequestTokenResponse struct {
	AuthorizationURL string `json:"authorizationUrl" example:"https://api.twitter.com/oauth/authorize?oauth_token=abc"`
}

// StatusResponse reports the link state of a wallet
type StatusResponse struct {
	Linked   bool       `json:"linked" example:"true"`
	Username string     `json:"username,omitempty" example:"rally_fan"`
	LinkedAt *time.Time `json:"linkedAt,omitempty"`
}
