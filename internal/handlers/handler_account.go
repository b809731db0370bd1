package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/SscSPs/site_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler serves ledger account reads and company-level funding.
type accountHandler struct {
	accounts portssvc.AccountRegistrySvcFacade
}

func newAccountHandler(accounts portssvc.AccountRegistrySvcFacade) *accountHandler {
	return &accountHandler{accounts: accounts}
}

// registerAccountRoutes registers routes related to ledger accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accounts portssvc.AccountRegistrySvcFacade) {
	h := newAccountHandler(accounts)

	company := rg.Group("/company")
	{
		company.POST("/initialize", h.initializeCompany)
		company.GET("", h.getCompany)
	}

	rg.GET("/accounts/:accountID/entries", h.listEntries)
	rg.GET("/sites/:siteID/balances", h.getSiteBalances)
	rg.GET("/contractors/:contractorID/sites/:siteID", h.getContractorAccount)
	rg.GET("/vendors/:vendorID/credit", h.getVendorCredit)

	allowance := rg.Group("/users/:userID/allowance")
	{
		allowance.POST("", h.fundAllowance)
		allowance.GET("", h.getAllowance)
	}
}

// initializeCompany godoc
// @Summary Initialize the company account
// @Description Opens the singleton company account with an opening balance. Admin only.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   request body dto.InitializeCompanyRequest true "Opening balance"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Already initialized"
// @Security BearerAuth
// @Router /company/initialize [post]
func (h *accountHandler) initializeCompany(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.InitializeCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accounts.InitializeCompany(c.Request.Context(), req.OpeningBalance, req.Description, actor)
	if err != nil {
		respondError(c, err, "Failed to initialize company account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Company account initialized", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getCompany godoc
// @Summary Get the company account
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Company account not initialized"
// @Security BearerAuth
// @Router /company [get]
func (h *accountHandler) getCompany(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		respondError(c, fmt.Errorf("company account is admin only: %w", apperrors.ErrForbidden), "Forbidden")
		return
	}

	account, err := h.accounts.GetCompanyAccount(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve company account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listEntries godoc
// @Summary List ledger entries of an account
// @Description Newest first. Admins may read any account; other users only their own allowance.
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/entries [get]
func (h *accountHandler) listEntries(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	if !actor.IsAdmin() {
		own, err := h.accounts.GetUserExpenseAccount(c.Request.Context(), actor.UserID)
		if err != nil || own.AccountID != accountID {
			respondError(c, fmt.Errorf("account %s: %w", accountID, apperrors.ErrForbidden), "Forbidden")
			return
		}
	}

	entries, next, err := h.accounts.ListEntries(c.Request.Context(), accountID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	c.JSON(http.StatusOK, dto.ListEntriesResponse{Entries: entries, NextToken: next})
}

// getSiteBalances godoc
// @Summary Get a site's budget and expenses
// @Tags accounts
// @Produce  json
// @Param   siteID path string true "Site ID"
// @Success 200 {object} domain.SiteBalances
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Site not found"
// @Security BearerAuth
// @Router /sites/{siteID}/balances [get]
func (h *accountHandler) getSiteBalances(c *gin.Context) {
	if !h.requireStaff(c) {
		return
	}
	balances, err := h.accounts.GetSiteBalances(c.Request.Context(), c.Param("siteID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve site balances")
		return
	}
	c.JSON(http.StatusOK, balances)
}

// getContractorAccount godoc
// @Summary Get a contractor's balance on a site
// @Tags accounts
// @Produce  json
// @Param   contractorID path string true "Contractor ID"
// @Param   siteID path string true "Site ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Contractor not enrolled on site"
// @Security BearerAuth
// @Router /contractors/{contractorID}/sites/{siteID} [get]
func (h *accountHandler) getContractorAccount(c *gin.Context) {
	if !h.requireStaff(c) {
		return
	}
	account, err := h.accounts.GetContractorAccount(c.Request.Context(), c.Param("contractorID"), c.Param("siteID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve contractor account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getVendorCredit godoc
// @Summary Get a vendor's outstanding credit
// @Description Sums the vendor's unpaid credit purchases. Admin only.
// @Tags accounts
// @Produce  json
// @Param   vendorID path string true "Vendor ID"
// @Success 200 {object} dto.VendorCreditResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /vendors/{vendorID}/credit [get]
func (h *accountHandler) getVendorCredit(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		respondError(c, fmt.Errorf("vendor credit is admin only: %w", apperrors.ErrForbidden), "Forbidden")
		return
	}

	vendorID := c.Param("vendorID")
	outstanding, purchases, err := h.accounts.VendorOutstandingCredit(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, err, "Failed to compute vendor credit")
		return
	}
	ids := make([]string, len(purchases))
	for i, p := range purchases {
		ids[i] = p.PurchaseID
	}
	c.JSON(http.StatusOK, dto.VendorCreditResponse{VendorID: vendorID, Outstanding: outstanding, PurchaseIDs: ids})
}

// fundAllowance godoc
// @Summary Fund a site manager's allowance
// @Description Moves company money into the user's allowance. Admin only.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   userID path string true "Site manager user ID"
// @Param   request body dto.FundAllowanceRequest true "Amount"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "Insufficient company funds"
// @Security BearerAuth
// @Router /users/{userID}/allowance [post]
func (h *accountHandler) fundAllowance(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.FundAllowanceRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accounts.FundUserAllowance(c.Request.Context(), actor, c.Param("userID"), req.Amount, req.Description)
	if err != nil {
		respondError(c, err, "Failed to fund allowance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAllowance godoc
// @Summary Get a site manager's allowance
// @Tags accounts
// @Produce  json
// @Param   userID path string true "Site manager user ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "No allowance yet"
// @Security BearerAuth
// @Router /users/{userID}/allowance [get]
func (h *accountHandler) getAllowance(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	userID := c.Param("userID")
	if !actor.IsAdmin() && actor.UserID != userID {
		respondError(c, fmt.Errorf("allowance of %s: %w", userID, apperrors.ErrForbidden), "Forbidden")
		return
	}

	account, err := h.accounts.GetUserExpenseAccount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve allowance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// requireStaff admits admins and site managers.
func (h *accountHandler) requireStaff(c *gin.Context) bool {
	actor, ok := actorOrAbort(c)
	if !ok {
		return false
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleSiteManager {
		respondError(c, fmt.Errorf("role %s: %w", actor.Role, apperrors.ErrForbidden), "Forbidden")
		return false
	}
	return true
}
