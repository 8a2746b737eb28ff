package identity

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rallyprotocol/rally-claim/internal/common/errors"
	"github.com/rallyprotocol/rally-claim/internal/common/middleware"
)

// Handler handles HTTP requests for X account linking
type Handler struct {
	service *Service
}

// NewHandler creates a new identity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers identity routes on the router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	x := rg.Group("/auth/x")
	{
		x.POST("/request-token", h.RequestToken)
		x.GET("/callback", h.Callback)
		x.GET("/status", h.Status)
	}
}

// RequestToken godoc
// @Summary Start X account linking
// @Description Obtains an OAuth request token bound to the wallet and returns the X authorization URL
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestTokenRequest true "Wallet to link"
// @Success 200 {object} RequestTokenResponse
// @Failure 400 {object} middleware.ErrorResponse "Wallet address required"
// @Failure 503 {object} middleware.ErrorResponse "X authentication not configured or unavailable"
// @Router /auth/x/request-token [post]
func (h *Handler) RequestToken(c *gin.Context) {
	var req RequestTokenRequest
	// an empty body falls through to the missing-field checks
	if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	authURL, err := h.service.StartLink(c.Request.Context(), req.WalletAddress)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, RequestTokenResponse{AuthorizationURL: authURL})
}

// Callback godoc
// @Summary X OAuth callback
// @Description Exchanges the verifier for an access token, stores the link and redirects to the app
// @Tags auth
// @Param oauth_token query string false "Request token"
// @Param oauth_verifier query string false "Verifier"
// @Param denied query string false "Set when the user declined"
// @Success 302 "Redirect to the app with x_auth=success|denied|error"
// @Router /auth/x/callback [get]
func (h *Handler) Callback(c *gin.Context) {
	location := h.service.CompleteLink(c.Request.Context(), CallbackParams{
		Token:    c.Query("oauth_token"),
		Verifier: c.Query("oauth_verifier"),
		Denied:   c.Query("denied"),
	})
	c.Redirect(http.StatusFound, location)
}

// Status godoc
// @Summary X link status
// @Description Reports whether the wallet has a linked X account
// @Tags auth
// @Produce json
// @Param wallet query string true "Wallet address"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} middleware.ErrorResponse "Wallet address required"
// @Failure 500 {object} middleware.ErrorResponse "Storage error"
// @Router /auth/x/status [get]
func (h *Handler) Status(c *gin.Context) {
	resp, err := h.service.Status(c.Request.Context(), c.Query("wallet"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, resp)
}
