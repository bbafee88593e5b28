package v1

import (
	"net/http"
	"strconv"

	"github.com/escrowd/invoicing/internal/api/dto"
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/logger"
	"github.com/escrowd/invoicing/internal/service"
	"github.com/gin-gonic/gin"
)

type IdentityHandler struct {
	identityService service.IdentityService
	logger          *logger.Logger
}

func NewIdentityHandler(identityService service.IdentityService, logger *logger.Logger) *IdentityHandler {
	return &IdentityHandler{
		identityService: identityService,
		logger:          logger,
	}
}

// RegisterIdentity handles POST /identities
func (h *IdentityHandler) RegisterIdentity(c *gin.Context) {
	var req dto.RegisterIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.identityService.RegisterIdentity(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Deposit handles POST /ledger/deposits
func (h *IdentityHandler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	if err := h.identityService.Deposit(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Approve handles POST /ledger/approvals
func (h *IdentityHandler) Approve(c *gin.Context) {
	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	if err := h.identityService.Approve(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetBalance handles GET /ledger/balances/:id
func (h *IdentityHandler) GetBalance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid identity").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.identityService.GetBalance(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
