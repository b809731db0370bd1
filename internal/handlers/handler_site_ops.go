package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/SscSPs/site_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// siteOpsHandler serves phases and the postings that skip verification.
type siteOpsHandler struct {
	workflow portssvc.VerificationWorkflowSvcFacade
}

func registerSiteOpsRoutes(rg *gin.RouterGroup, workflow portssvc.VerificationWorkflowSvcFacade) {
	h := &siteOpsHandler{workflow: workflow}

	phases := rg.Group("/phases/:phaseID")
	{
		phases.POST("/request", h.requestPhaseCompletion)
		phases.POST("/resolve", h.resolvePhase)
	}

	rg.POST("/attendance", h.recordAttendance)
	rg.POST("/contractor-transactions", h.recordContractorTransaction)
	rg.POST("/vendors/:vendorID/settle", h.settleVendorCredit)
}

// requestPhaseCompletion godoc
// @Summary Request completion of a phase
// @Description Moves a not-started phase to pending and notifies admins.
// @Tags phases
// @Produce  json
// @Param   phaseID path string true "Phase ID"
// @Success 200 {object} domain.Phase
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Phase not requestable"
// @Security BearerAuth
// @Router /phases/{phaseID}/request [post]
func (h *siteOpsHandler) requestPhaseCompletion(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	phase, err := h.workflow.RequestPhaseCompletion(c.Request.Context(), actor, c.Param("phaseID"))
	if err != nil {
		respondError(c, err, "Failed to request phase completion")
		return
	}
	c.JSON(http.StatusOK, phase)
}

// resolvePhase godoc
// @Summary Approve or reject a phase completion request
// @Tags phases
// @Accept  json
// @Produce  json
// @Param   phaseID path string true "Phase ID"
// @Param   request body dto.ResolveRequest true "Decision"
// @Success 200 {object} domain.Phase
// @Failure 409 {object} map[string]string "Already resolved"
// @Security BearerAuth
// @Router /phases/{phaseID}/resolve [post]
func (h *siteOpsHandler) resolvePhase(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.ResolveRequest
	if !bindJSON(c, &req) {
		return
	}

	phase, err := h.workflow.ResolvePhase(c.Request.Context(), actor, c.Param("phaseID"), req)
	if err != nil {
		respondError(c, err, "Failed to resolve phase")
		return
	}
	c.JSON(http.StatusOK, phase)
}

// recordAttendance godoc
// @Summary Record a day's attendance
// @Description Wages of present employees are booked to site expenses immediately.
// @Tags site-ops
// @Accept  json
// @Produce  json
// @Param   request body dto.RecordAttendanceRequest true "Attendance"
// @Success 201 {object} domain.Attendance
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /attendance [post]
func (h *siteOpsHandler) recordAttendance(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.RecordAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	attendance, err := h.workflow.RecordAttendance(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to record attendance")
		return
	}
	c.JSON(http.StatusCreated, attendance)
}

// recordContractorTransaction godoc
// @Summary Record a contractor transaction
// @Description Enrolls the contractor on the site on first use.
// @Tags site-ops
// @Accept  json
// @Produce  json
// @Param   request body dto.RecordContractorTransactionRequest true "Transaction"
// @Success 201 {object} domain.ContractorTransaction
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /contractor-transactions [post]
func (h *siteOpsHandler) recordContractorTransaction(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.RecordContractorTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.workflow.RecordContractorTransaction(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to record contractor transaction")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// settleVendorCredit godoc
// @Summary Settle a vendor's outstanding credit
// @Description Pays every unpaid credit purchase of the vendor from the company account. Admin only.
// @Tags site-ops
// @Produce  json
// @Param   vendorID path string true "Vendor ID"
// @Success 200 {object} dto.VendorCreditResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "Insufficient company funds"
// @Security BearerAuth
// @Router /vendors/{vendorID}/settle [post]
func (h *siteOpsHandler) settleVendorCredit(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	vendorID := c.Param("vendorID")

	settled, err := h.workflow.SettleVendorCredit(c.Request.Context(), actor, vendorID)
	if err != nil {
		respondError(c, err, "Failed to settle vendor credit")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Vendor credit settled",
		slog.String("vendor_id", vendorID), slog.String("amount", settled.String()))
	c.JSON(http.StatusOK, dto.VendorCreditResponse{VendorID: vendorID, Outstanding: settled, PurchaseIDs: []string{}})
}
