package eligibility

import (
	stderrors "errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rallyprotocol/rally-claim/internal/common/errors"
	"github.com/rallyprotocol/rally-claim/internal/common/middleware"
)

// Handler handles eligibility requests
type Handler struct {
	service *Service
}

// NewHandler creates a new eligibility handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers eligibility routes on the router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/eligibility", h.Check)
}

// Check godoc
// @Summary Check eligibility
// @Description Reports per asset class whether the connected wallets hold a qualifying collection
// @Tags eligibility
// @Accept json
// @Produce json
// @Param request body CheckRequest true "Solana and/or EVM wallet"
// @Success 200 {object} CheckResponse
// @Failure 400 {object} middleware.ErrorResponse "Wallet address required or malformed"
// @Failure 500 {object} middleware.ErrorResponse "Holder lookup failed"
// @Router /eligibility [post]
func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	resp, err := h.service.Check(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, resp)
}
