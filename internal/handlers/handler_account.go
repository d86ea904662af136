package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
	"github.com/SscSPs/token_ledger/internal/dto"
	"github.com/SscSPs/token_ledger/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts and their holdings.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		ledgerService:  ls,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(accountService, ledgerService)

	accounts := rg.Group("/accounts/:name")
	{
		accounts.GET("", h.getAccount)
		accounts.GET("/balances", h.listBalances)
		accounts.GET("/balances/:code", h.getBalance)
		accounts.GET("/resources", h.getResourceUsage)
	}
}

// getAccount godoc
// @Summary Get an account by name
// @Tags accounts
// @Produce  json
// @Param   name path string true "Account name"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{name} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, err := h.accountService.GetAccountByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listBalances godoc
// @Summary List an account's balances
// @Tags accounts
// @Produce  json
// @Param   name path string true "Account name"
// @Success 200 {array} dto.BalanceResponse
// @Failure 500 {object} ErrorResponse "Failed to list balances"
// @Security BearerAuth
// @Router /accounts/{name}/balances [get]
func (h *accountHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	balances, err := h.ledgerService.ListBalances(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, logger, err, "Failed to list balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBalanceResponse(balances))
}

// getBalance godoc
// @Summary Get an account's balance of one symbol
// @Tags accounts
// @Produce  json
// @Param   name path string true "Account name"
// @Param   code path string true "Symbol code"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} ErrorResponse "No balance record"
// @Failure 500 {object} ErrorResponse "Failed to retrieve balance"
// @Security BearerAuth
// @Router /accounts/{name}/balances/{code} [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	balance, err := h.ledgerService.GetBalance(c.Request.Context(), c.Param("name"), strings.ToUpper(c.Param("code")))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// getResourceUsage godoc
// @Summary Get the balance records an account holds and pays for
// @Tags accounts
// @Produce  json
// @Param   name path string true "Account name"
// @Success 200 {object} domain.ResourceUsage
// @Failure 500 {object} ErrorResponse "Failed to retrieve resource usage"
// @Security BearerAuth
// @Router /accounts/{name}/resources [get]
func (h *accountHandler) getResourceUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	usage, err := h.ledgerService.GetResourceUsage(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve resource usage")
		return
	}
	c.JSON(http.StatusOK, usage)
}
