package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	portssvc "github.com/nusantara-construction/ledger-backend/internal/core/ports/services"
	"github.com/nusantara-construction/ledger-backend/internal/dto"
	"github.com/nusantara-construction/ledger-backend/internal/middleware"
)

// financialHandler handles the dashboard and statement read endpoints.
type financialHandler struct {
	reportingService portssvc.ReportingService
	trendService     portssvc.TrendService
	accountService   portssvc.AccountReaderSvc
}

// registerFinancialRoutes registers the financial dashboard routes.
func registerFinancialRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, trendService portssvc.TrendService, accountService portssvc.AccountReaderSvc) {
	h := &financialHandler{
		reportingService: reportingService,
		trendService:     trendService,
		accountService:   accountService,
	}

	dashboard := rg.Group("/financial/dashboard")
	{
		dashboard.GET("/overview", h.overview)
		dashboard.GET("/income-statement", h.incomeStatement)
		dashboard.GET("/cash-flow", h.cashFlow)
		dashboard.GET("/balance-sheet", h.balanceSheet)
		dashboard.GET("/trends", h.trends)
		dashboard.GET("/cash-balances", h.cashBalances)
	}
}

// bindDateRange parses the optional start_date/end_date query parameters.
func bindDateRange(c *gin.Context) (dto.DateRangeParams, bool) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind date range params", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return params, false
	}
	return params, true
}

// overview godoc
// @Summary Dashboard overview of revenue, expenses and cash
// @Tags financial
// @Produce json
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} domain.DashboardOverview
// @Router /financial/dashboard/overview [get]
func (h *financialHandler) overview(c *gin.Context) {
	params, ok := bindDateRange(c)
	if !ok {
		return
	}
	start, end, err := params.ParseDateRange()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	overview, err := h.reportingService.DashboardOverview(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err, "Failed to generate dashboard overview")
		return
	}

	respondOK(c, overview)
}

// incomeStatement godoc
// @Summary Income statement for a period
// @Tags financial
// @Produce json
// @Param start_date query string true "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string true "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} domain.IncomeStatement
// @Router /financial/dashboard/income-statement [get]
func (h *financialHandler) incomeStatement(c *gin.Context) {
	params, ok := bindDateRange(c)
	if !ok {
		return
	}
	start, end, err := params.ParseDateRange()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	statement, err := h.reportingService.IncomeStatement(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err, "Failed to generate income statement")
		return
	}

	respondOK(c, statement)
}

// cashFlow godoc
// @Summary Cash flow statement for a period
// @Tags financial
// @Produce json
// @Param start_date query string true "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string true "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} domain.CashFlowStatement
// @Router /financial/dashboard/cash-flow [get]
func (h *financialHandler) cashFlow(c *gin.Context) {
	params, ok := bindDateRange(c)
	if !ok {
		return
	}
	start, end, err := params.ParseDateRange()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	statement, err := h.reportingService.CashFlowStatement(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err, "Failed to generate cash flow statement")
		return
	}

	respondOK(c, statement)
}

// balanceSheet godoc
// @Summary Balance sheet snapshot
// @Tags financial
// @Produce json
// @Param as_of_date query string false "Report date (YYYY-MM-DD), default today"
// @Success 200 {object} domain.BalanceSheet
// @Router /financial/dashboard/balance-sheet [get]
func (h *financialHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var asOf *time.Time
	if raw := c.Query("as_of_date"); raw != "" {
		parsed, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			logger.Warn("Invalid as_of_date for balanceSheet", slog.String("as_of_date", raw))
			respondError(c, http.StatusBadRequest, "Invalid as_of_date, expected YYYY-MM-DD")
			return
		}
		asOf = &parsed
	}

	sheet, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to generate balance sheet")
		return
	}

	respondOK(c, sheet)
}

// trends godoc
// @Summary Revenue/expense trend buckets
// @Tags financial
// @Produce json
// @Param period_type query string false "monthly, quarterly or yearly" default(monthly)
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} domain.TrendReport
// @Router /financial/dashboard/trends [get]
func (h *financialHandler) trends(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.TrendParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for trends", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}
	start, end, err := params.ParseDateRange()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	report, err := h.trendService.Trends(c.Request.Context(), domain.PeriodType(params.PeriodType), start, end)
	if err != nil {
		respondServiceError(c, err, "Failed to generate trend report")
		return
	}

	respondOK(c, report)
}

// cashBalances godoc
// @Summary Cash and bank balances
// @Tags financial
// @Produce json
// @Success 200 {object} domain.CashBalances
// @Router /financial/dashboard/cash-balances [get]
func (h *financialHandler) cashBalances(c *gin.Context) {
	balances, err := h.accountService.ListCashAccounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list cash balances")
		return
	}

	respondOK(c, balances)
}
