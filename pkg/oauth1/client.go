package oauth1

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the X (Twitter) API host
	DefaultBaseURL = "https://api.twitter.com"
	// DefaultTimeout bounds each token call
	DefaultTimeout = 10 * time.Second

	requestTokenPath = "/oauth/request_token"
	accessTokenPath  = "/oauth/access_token"
	authorizePath    = "/oauth/authorize"

	maxResponseBytes = 64 << 10
)

// Error definitions
var (
	ErrNotConfigured   = errors.New("oauth consumer credentials not configured")
	ErrExternalService = errors.New("oauth provider error")
)

// Config holds the consumer credentials and provider endpoint
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	BaseURL        string
	Timeout        time.Duration
}

// RequestToken is the temporary credential of leg one
type RequestToken struct {
	Token            string
	TokenSecret      string
	AuthorizationURL string
}

// AccessToken is the result of leg three, identifying the user
type AccessToken struct {
	Token       string
	TokenSecret string
	UserID      string
	ScreenName  string
}

// Client performs signed OAuth 1.0a token calls
type Client struct {
	config     Config
	httpClient *http.Client
	now        func() time.Time
	nonce      func() (string, error)
	logger     *zap.Logger
}

// NewClient creates a client; missing BaseURL/Timeout fall back to defaults
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		now:        time.Now,
		nonce:      randomNonce,
		logger:     logger,
	}
}

// Configured reports whether consumer credentials are present
func (c *Client) Configured() bool {
	return c.config.ConsumerKey != "" && c.config.ConsumerSecret != ""
}

func randomNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// baseParams returns the oauth_* params every request carries
func (c *Client) baseParams() (map[string]string, error) {
	nonce, err := c.nonce()
	if err != nil {
		return nil, fmt.Errorf("generate oauth nonce: %w", err)
	}
	return map[string]string{
		"oauth_consumer_key":     c.config.ConsumerKey,
		"oauth_signature_method": SignatureMethod,
		"oauth_timestamp":        strconv.FormatInt(c.now().Unix(), 10),
		"oauth_nonce":            nonce,
		"oauth_version":          Version,
	}, nil
}

// RequestToken obtains a request token; callbackURL is sent as oauth_callback
func (c *Client) RequestToken(ctx context.Context, callbackURL string) (*RequestToken, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	params, err := c.baseParams()
	if err != nil {
		return nil, err
	}
	params["oauth_callback"] = callbackURL

	values, err := c.post(ctx, c.config.BaseURL+requestTokenPath, params, "")
	if err != nil {
		return nil, err
	}

	token := values.Get("oauth_token")
	secret := values.Get("oauth_token_secret")
	if token == "" || secret == "" {
		return nil, fmt.Errorf("%w: request token response missing fields", ErrExternalService)
	}

	return &RequestToken{
		Token:            token,
		TokenSecret:      secret,
		AuthorizationURL: c.config.BaseURL + authorizePath + "?oauth_token=" + url.QueryEscape(token),
	}, nil
}

// AccessToken exchanges an authorized request token and verifier for an access token
func (c *Client) AccessToken(ctx context.Context, token, tokenSecret, verifier string) (*AccessToken, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	params, err := c.baseParams()
	if err != nil {
		return nil, err
	}
	params["oauth_token"] = token
	params["oauth_verifier"] = verifier

	values, err := c.post(ctx, c.config.BaseURL+accessTokenPath, params, tokenSecret)
	if err != nil {
		return nil, err
	}

	result := &AccessToken{
		Token:       values.Get("oauth_token"),
		TokenSecret: values.Get("oauth_token_secret"),
		UserID:      values.Get("user_id"),
		ScreenName:  values.Get("screen_name"),
	}
	if result.Token == "" || result.TokenSecret == "" || result.UserID == "" || result.ScreenName == "" {
		return nil, fmt.Errorf("%w: access token response missing fields", ErrExternalService)
	}
	return result, nil
}

// post sends an empty-bodied signed POST and parses the form-encoded reply
func (c *Client) post(ctx context.Context, endpoint string, params map[string]string, tokenSecret string) (url.Values, error) {
	params["oauth_signature"] = Sign(http.MethodPost, endpoint, params, c.config.ConsumerSecret, tokenSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build oauth request: %w", err)
	}
	req.Header.Set("Authorization", AuthorizationHeader(params))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("oauth provider unreachable", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrExternalService, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("oauth provider rejected request",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("%w: status %d", ErrExternalService, resp.StatusCode)
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrExternalService, err)
	}
	return values, nil
}
