package audit

import (
	"github.com/gin-gonic/gin"
	"github.com/rallyprotocol/rally-claim/internal/common/errors"
	"github.com/rallyprotocol/rally-claim/internal/common/middleware"
)

// Handler handles holder audit requests
type Handler struct {
	service *Service
}

// NewHandler creates a new audit handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers audit routes on the router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	audit := rg.Group("/audit")
	{
		audit.GET("/contracts", h.Contracts)
		audit.GET("/holders", h.Holders)
	}
}

// Contracts godoc
// @Summary List tracked contracts
// @Description Lists snapshot contracts ordered by type and name, with totals
// @Tags audit
// @Produce json
// @Param type query string false "nft or token"
// @Success 200 {object} ContractsResponse
// @Failure 500 {object} middleware.ErrorResponse "Storage error"
// @Router /audit/contracts [get]
func (h *Handler) Contracts(c *gin.Context) {
	resp, err := h.service.Contracts(c.Request.Context(), c.Query("type"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, resp)
}

// Holders godoc
// @Summary List contract holders
// @Description Returns a contract's holders by rank, paginated unless all=true
// @Tags audit
// @Produce json
// @Param contract query string true "Contract address"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(50)
// @Param all query bool false "Return every holder"
// @Success 200 {object} HoldersResponse
// @Failure 400 {object} middleware.ErrorResponse "Contract address required or bad paging"
// @Failure 404 {object} middleware.ErrorResponse "Contract not found"
// @Failure 500 {object} middleware.ErrorResponse "Storage error"
// @Router /audit/holders [get]
func (h *Handler) Holders(c *gin.Context) {
	var req HoldersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	resp, err := h.service.Holders(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, resp)
}
