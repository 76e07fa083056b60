package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nusantara-construction/ledger-backend/internal/apperrors"
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portsrepo "github.com/nusantara-construction/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/nusantara-construction/ledger-backend/internal/core/ports/services"
	"github.com/nusantara-construction/ledger-backend/internal/dto"
	"github.com/nusantara-construction/ledger-backend/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers the chart-of-accounts routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	coa := rg.Group("/coa")
	{
		coa.POST("", h.createAccount)
		coa.GET("", h.listAccounts)
		coa.GET("/hierarchy", h.getHierarchy)
		coa.GET("/cash-accounts", h.listCashAccounts)
		coa.GET("/types/summary", h.typeSummary)
		coa.GET("/:id", h.getAccount)
		coa.PUT("/:id", h.updateAccount)
		coa.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a chart-of-accounts entry
// @Tags coa
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Account code already in use"
// @Router /coa [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}

	respondCreated(c, dto.ToAccountResponse(account), "Account created successfully")
}

// getAccount godoc
// @Summary Get an account by ID or code
// @Tags coa
// @Produce json
// @Param id path string true "Account ID (COA-n) or account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /coa/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	id := c.Param("id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), id)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Fall back to a code lookup so dotted codes resolve too.
		account, err = h.accountService.GetAccountByCode(c.Request.Context(), id)
	}
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}

	respondOK(c, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags coa
// @Produce json
// @Param account_type query string false "Filter by account type"
// @Param level query int false "Filter by level"
// @Param is_active query bool false "Filter by active flag"
// @Param parent_id query string false "Filter by parent account"
// @Param construction_specific query bool false "Filter construction-specific accounts"
// @Param search query string false "Substring match over code and name"
// @Success 200 {array} dto.AccountResponse
// @Router /coa [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listAccounts", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	filter := portsrepo.AccountFilter{
		Level:                params.Level,
		IsActive:             params.IsActive,
		ConstructionSpecific: params.ConstructionSpecific,
		Search:               params.Search,
	}
	if params.AccountType != "" {
		accountType := domain.AccountType(params.AccountType)
		filter.AccountType = &accountType
	}
	if params.ParentAccountID != "" {
		parentID := params.ParentAccountID
		filter.ParentAccountID = &parentID
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}

	respondOK(c, dto.ToAccountResponses(accounts))
}

// getHierarchy godoc
// @Summary Get the active account tree
// @Tags coa
// @Produce json
// @Success 200 {array} dto.AccountNodeResponse
// @Router /coa/hierarchy [get]
func (h *accountHandler) getHierarchy(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.HierarchyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for getHierarchy", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	filter := portsrepo.AccountFilter{
		Level:                params.Level,
		ConstructionSpecific: params.ConstructionSpecific,
	}
	if params.AccountType != "" {
		accountType := domain.AccountType(params.AccountType)
		filter.AccountType = &accountType
	}

	roots, err := h.accountService.GetHierarchy(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to build account hierarchy")
		return
	}

	nodes := make([]dto.AccountNodeResponse, len(roots))
	for i, root := range roots {
		nodes[i] = dto.ToAccountNodeResponse(root)
	}
	respondOK(c, nodes)
}

// listCashAccounts godoc
// @Summary List active cash/bank detail accounts with balances
// @Tags coa
// @Produce json
// @Success 200 {object} domain.CashBalances
// @Router /coa/cash-accounts [get]
func (h *accountHandler) listCashAccounts(c *gin.Context) {
	balances, err := h.accountService.ListCashAccounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list cash accounts")
		return
	}
	respondOK(c, balances)
}

// typeSummary godoc
// @Summary Count active accounts per type
// @Tags coa
// @Produce json
// @Success 200 {array} dto.AccountTypeCountResponse
// @Router /coa/types/summary [get]
func (h *accountHandler) typeSummary(c *gin.Context) {
	summary, err := h.accountService.GetTypeSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to summarize accounts")
		return
	}

	rows := make([]dto.AccountTypeCountResponse, len(summary))
	for i, row := range summary {
		rows[i] = dto.AccountTypeCountResponse{
			AccountType: string(row.AccountType),
			Count:       row.Count,
		}
	}
	respondOK(c, rows)
}

// updateAccount godoc
// @Summary Update an account
// @Description Applies a partial update. The account code is immutable.
// @Tags coa
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /coa/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update account")
		return
	}

	respondMessage(c, dto.ToAccountResponse(account), "Account updated successfully")
}

// deleteAccount godoc
// @Summary Deactivate an account
// @Description Soft delete. Accounts with active children are rejected.
// @Tags coa
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Account has active children"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /coa/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	userID := c.Query("deleted_by")

	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "Failed to deactivate account")
		return
	}

	respondMessage(c, nil, "Account deactivated successfully")
}
