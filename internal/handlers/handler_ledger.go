package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/token_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/token_ledger/internal/core/ports/services"
	"github.com/SscSPs/token_ledger/internal/dto"
	"github.com/SscSPs/token_ledger/internal/middleware"
)

// ledgerHandler handles HTTP requests for token ledger actions and reads.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers routes related to the token ledger.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/create", h.createToken)
		ledger.POST("/issue", h.issue(true))
		ledger.POST("/issuefree", h.issue(false))
		ledger.POST("/burn", h.burn)
		ledger.POST("/signup", h.signup)
		ledger.POST("/transfer", h.transfer(true))
		ledger.POST("/transferfree", h.transfer(false))

		ledger.GET("/tokens", h.listTokens)
		ledger.GET("/tokens/:code", h.getToken)
		ledger.GET("/tokens/:code/audit", h.auditSupply)
		ledger.GET("/actions", h.listActions)
	}
}

// requestActor returns the authenticated account the request acts as, or
// answers 401 and returns false.
func requestActor(c *gin.Context, logger *slog.Logger) (string, bool) {
	actor, ok := middleware.GetAccountNameFromContext(c)
	if !ok {
		logger.Error("Account name not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return actor, true
}

// parseQuantity parses a request quantity, answering 400 on failure.
func parseQuantity(c *gin.Context, logger *slog.Logger, field, value string) (domain.Amount, bool) {
	quantity, err := domain.ParseAmount(value)
	if err != nil {
		logger.Warn("Invalid quantity", slog.String("field", field), slog.String("error", err.Error()))
		respondError(c, logger, err, "Invalid quantity")
		return domain.Amount{}, false
	}
	return quantity, true
}

func respondApplied(c *gin.Context, actions []domain.Action) {
	c.JSON(http.StatusOK, dto.AppliedActionsResponse{Actions: dto.ToListActionResponse(actions)})
}

// createToken godoc
// @Summary Register a token symbol
// @Description Registers a new symbol with its issuer and maximum supply. Requires the ledger owner's authority.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   token body dto.CreateTokenRequest true "Token details"
// @Success 200 {object} dto.AppliedActionsResponse
// @Failure 400 {object} ErrorResponse "Invalid symbol or amount"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Missing owner authority"
// @Failure 409 {object} ErrorResponse "Symbol already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/create [post]
func (h *ledgerHandler) createToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requestActor(c, logger)
	if !ok {
		return
	}
	maximumSupply, ok := parseQuantity(c, logger, "maximumSupply", req.MaximumSupply)
	if !ok {
		return
	}

	actions, err := h.ledgerService.CreateToken(c.Request.Context(), req.Issuer, maximumSupply, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create token")
		return
	}
	respondApplied(c, actions)
}

// issue godoc
// @Summary Issue tokens
// @Description Mints quantity to the issuer and forwards it to the recipient. The issuefree variant refuses to create the recipient's balance record.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   issue body dto.IssueRequest true "Issue details"
// @Success 200 {object} dto.AppliedActionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Missing issuer authority"
// @Failure 404 {object} ErrorResponse "Unknown symbol, account or balance record"
// @Failure 409 {object} ErrorResponse "Quantity exceeds available supply"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/issue [post]
// @Router /ledger/issuefree [post]
func (h *ledgerHandler) issue(fundNewRecords bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		var req dto.IssueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for Issue", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
		actor, ok := requestActor(c, logger)
		if !ok {
			return
		}
		quantity, ok := parseQuantity(c, logger, "quantity", req.Quantity)
		if !ok {
			return
		}

		actions, err := h.ledgerService.Issue(c.Request.Context(), req.To, quantity, req.Memo, fundNewRecords, actor)
		if err != nil {
			respondError(c, logger, err, "Failed to issue tokens")
			return
		}
		respondApplied(c, actions)
	}
}

// burn godoc
// @Summary Burn tokens
// @Description Retires quantity from the holder's balance and the outstanding supply.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   burn body dto.BurnRequest true "Burn details"
// @Success 200 {object} dto.AppliedActionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Missing holder authority"
// @Failure 404 {object} ErrorResponse "Unknown symbol or no balance"
// @Failure 409 {object} ErrorResponse "Quantity exceeds supply or balance"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/burn [post]
func (h *ledgerHandler) burn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Burn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requestActor(c, logger)
	if !ok {
		return
	}
	quantity, ok := parseQuantity(c, logger, "quantity", req.Quantity)
	if !ok {
		return
	}

	actions, err := h.ledgerService.Burn(c.Request.Context(), req.From, quantity, req.Memo, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to burn tokens")
		return
	}
	respondApplied(c, actions)
}

// signup godoc
// @Summary Open a balance record
// @Description Opens a zero balance record for the owner, paid for by the owner.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   signup body dto.SignupRequest true "Signup details"
// @Success 200 {object} dto.AppliedActionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Missing owner authority"
// @Failure 404 {object} ErrorResponse "Unknown symbol"
// @Failure 409 {object} ErrorResponse "Already signed up"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/signup [post]
func (h *ledgerHandler) signup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Signup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requestActor(c, logger)
	if !ok {
		return
	}
	quantity, ok := parseQuantity(c, logger, "quantity", req.Quantity)
	if !ok {
		return
	}

	actions, err := h.ledgerService.Signup(c.Request.Context(), req.Owner, quantity, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to sign up")
		return
	}
	respondApplied(c, actions)
}

// transfer godoc
// @Summary Transfer tokens
// @Description Moves quantity between accounts. The transferfree variant refuses to create the recipient's balance record.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.AppliedActionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Missing sender authority"
// @Failure 404 {object} ErrorResponse "Unknown symbol, account or balance record"
// @Failure 409 {object} ErrorResponse "Overdrawn balance"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/transfer [post]
// @Router /ledger/transferfree [post]
func (h *ledgerHandler) transfer(fundNewRecords bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		var req dto.TransferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
		actor, ok := requestActor(c, logger)
		if !ok {
			return
		}
		quantity, ok := parseQuantity(c, logger, "quantity", req.Quantity)
		if !ok {
			return
		}

		actions, err := h.ledgerService.Transfer(c.Request.Context(), req.From, req.To, quantity, req.Memo, fundNewRecords, actor)
		if err != nil {
			respondError(c, logger, err, "Failed to transfer tokens")
			return
		}
		respondApplied(c, actions)
	}
}

// listTokens godoc
// @Summary List registered tokens
// @Tags ledger
// @Produce  json
// @Success 200 {array} dto.TokenStatResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/tokens [get]
func (h *ledgerHandler) listTokens(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	stats, err := h.ledgerService.ListTokenStats(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list tokens")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTokenStatResponse(stats))
}

// getToken godoc
// @Summary Get a registered token
// @Tags ledger
// @Produce  json
// @Param   code path string true "Symbol code"
// @Success 200 {object} dto.TokenStatResponse
// @Failure 404 {object} ErrorResponse "Unknown symbol"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/tokens/{code} [get]
func (h *ledgerHandler) getToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := strings.ToUpper(c.Param("code"))

	stat, err := h.ledgerService.GetTokenStat(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve token")
		return
	}
	c.JSON(http.StatusOK, dto.ToTokenStatResponse(stat))
}

// auditSupply godoc
// @Summary Audit a token's supply
// @Description Compares the recorded supply with the sum of all balances of the symbol.
// @Tags ledger
// @Produce  json
// @Param   code path string true "Symbol code"
// @Success 200 {object} dto.SupplyAuditResponse
// @Failure 404 {object} ErrorResponse "Unknown symbol"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/tokens/{code}/audit [get]
func (h *ledgerHandler) auditSupply(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := strings.ToUpper(c.Param("code"))

	audit, err := h.ledgerService.AuditSupply(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger, err, "Failed to audit supply")
		return
	}
	c.JSON(http.StatusOK, dto.ToSupplyAuditResponse(audit))
}

// listActions godoc
// @Summary List applied actions
// @Description Lists the action log newest first, optionally only actions involving an account.
// @Tags ledger
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Token from a previous page"
// @Param   account query string false "Only actions involving this account"
// @Success 200 {object} dto.ListActionsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/actions [get]
func (h *ledgerHandler) listActions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListActionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListActions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListActions(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list actions")
		return
	}
	c.JSON(http.StatusOK, resp)
}
