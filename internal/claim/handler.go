package claim

import (
	stderrors "errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rallyprotocol/rally-claim/internal/common/errors"
	"github.com/rallyprotocol/rally-claim/internal/common/middleware"
)

// Handler handles HTTP requests for claims
type Handler struct {
	service *Service
}

// NewHandler creates a new claim handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers claim routes on the router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	claims := rg.Group("/claim")
	{
		claims.POST("/nonce", h.RequestNonce)
		claims.POST("/submit", h.Submit)
		claims.GET("/status", h.Status)
	}
}

// RequestNonce godoc
// @Summary Request a claim nonce
// @Description Issues a single-use nonce and the exact message the wallet must sign
// @Tags claim
// @Accept json
// @Produce json
// @Param request body NonceRequest true "Wallet and asset class"
// @Success 200 {object} NonceResponse
// @Failure 400 {object} middleware.ErrorResponse "Missing field, malformed body or invalid NFT type"
// @Failure 500 {object} middleware.ErrorResponse "Storage error"
// @Router /claim/nonce [post]
func (h *Handler) RequestNonce(c *gin.Context) {
	var req NonceRequest
	// an empty body falls through to the missing-field checks
	if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	resp, err := h.service.RequestNonce(c.Request.Context(), req.WalletAddress, req.AssetClassID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, resp)
}

// Submit godoc
// @Summary Submit a claim
// @Description Consumes the nonce, checks the X link and signature, and records one claim per wallet and asset class
// @Tags claim
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Signed claim"
// @Success 200 {object} SubmitResponse
// @Failure 400 {object} middleware.ErrorResponse "Malformed body, validation, nonce, link, duplicate or signature failure"
// @Failure 500 {object} middleware.ErrorResponse "Storage error"
// @Router /claim/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	resp, err := h.service.SubmitClaim(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, resp)
}

// Status godoc
// @Summary Claim status
// @Description Lists claim state for every asset class and the wallet's total points
// @Tags claim
// @Produce json
// @Param wallet query string true "Wallet address"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} middleware.ErrorResponse "Wallet address required"
// @Failure 500 {object} middleware.ErrorResponse "Storage error"
// @Router /claim/status [get]
func (h *Handler) Status(c *gin.Context) {
	resp, err := h.service.Status(c.Request.Context(), c.Query("wallet"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, resp)
}
