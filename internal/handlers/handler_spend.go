package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/SscSPs/site_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// spendHandler serves the pending spend and income documents.
type spendHandler struct {
	workflow portssvc.VerificationWorkflowSvcFacade
}

func newSpendHandler(workflow portssvc.VerificationWorkflowSvcFacade) *spendHandler {
	return &spendHandler{workflow: workflow}
}

func registerSpendRoutes(rg *gin.RouterGroup, workflow portssvc.VerificationWorkflowSvcFacade) {
	h := newSpendHandler(workflow)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("/:id", h.getPurchase)
		purchases.POST("/:id/verify", h.verifyPurchase)
	}

	rentals := rg.Group("/rentals")
	{
		rentals.POST("", h.createRental)
		rentals.GET("/:id", h.getRental)
		rentals.POST("/:id/verify", h.verifyRental)
	}

	payments := rg.Group("/client-payments")
	{
		payments.POST("", h.createClientPayment)
		payments.GET("/:id", h.getClientPayment)
		payments.POST("/:id/verify", h.verifyClientPayment)
	}
}

// createPurchase godoc
// @Summary Submit a purchase
// @Description Cash purchases are debited from the payer immediately; the purchase then waits for admin verification.
// @Tags spend
// @Accept  json
// @Produce  json
// @Param   request body dto.CreatePurchaseRequest true "Purchase"
// @Success 201 {object} domain.Purchase
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /purchases [post]
func (h *spendHandler) createPurchase(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	purchase, err := h.workflow.CreatePurchase(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create purchase")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Purchase submitted", slog.String("purchase_id", purchase.PurchaseID))
	c.JSON(http.StatusCreated, purchase)
}

// getPurchase godoc
// @Summary Get a purchase
// @Tags spend
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Success 200 {object} domain.Purchase
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *spendHandler) getPurchase(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}
	purchase, err := h.workflow.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve purchase")
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// verifyPurchase godoc
// @Summary Approve or reject a purchase
// @Description Approval books the expense and adds stock. Admin only.
// @Tags spend
// @Accept  json
// @Produce  json
// @Param   id path string true "Purchase ID"
// @Param   request body dto.ResolveRequest true "Decision"
// @Success 200 {object} domain.Purchase
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Already resolved"
// @Security BearerAuth
// @Router /purchases/{id}/verify [post]
func (h *spendHandler) verifyPurchase(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.ResolveRequest
	if !bindJSON(c, &req) {
		return
	}

	purchase, err := h.workflow.VerifyPurchase(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to verify purchase")
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// createRental godoc
// @Summary Submit a machinery rental
// @Tags spend
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateRentalRequest true "Rental"
// @Success 201 {object} domain.MachineryRental
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /rentals [post]
func (h *spendHandler) createRental(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateRentalRequest
	if !bindJSON(c, &req) {
		return
	}

	rental, err := h.workflow.CreateMachineryRental(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create rental")
		return
	}
	c.JSON(http.StatusCreated, rental)
}

// getRental godoc
// @Summary Get a machinery rental
// @Tags spend
// @Produce  json
// @Param   id path string true "Rental ID"
// @Success 200 {object} domain.MachineryRental
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /rentals/{id} [get]
func (h *spendHandler) getRental(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}
	rental, err := h.workflow.GetMachineryRental(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve rental")
		return
	}
	c.JSON(http.StatusOK, rental)
}

// verifyRental godoc
// @Summary Approve or reject a machinery rental
// @Tags spend
// @Accept  json
// @Produce  json
// @Param   id path string true "Rental ID"
// @Param   request body dto.ResolveRequest true "Decision"
// @Success 200 {object} domain.MachineryRental
// @Failure 409 {object} map[string]string "Already resolved"
// @Security BearerAuth
// @Router /rentals/{id}/verify [post]
func (h *spendHandler) verifyRental(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.ResolveRequest
	if !bindJSON(c, &req) {
		return
	}

	rental, err := h.workflow.VerifyMachineryRental(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to verify rental")
		return
	}
	c.JSON(http.StatusOK, rental)
}

// createClientPayment godoc
// @Summary Submit a client payment
// @Description The payment is credited to the company and the site budget only once an admin approves it.
// @Tags income
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateClientTransactionRequest true "Payment"
// @Success 201 {object} domain.ClientTransaction
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /client-payments [post]
func (h *spendHandler) createClientPayment(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateClientTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.workflow.CreateClientTransaction(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create client payment")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// getClientPayment godoc
// @Summary Get a client payment
// @Tags income
// @Produce  json
// @Param   id path string true "Client transaction ID"
// @Success 200 {object} domain.ClientTransaction
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /client-payments/{id} [get]
func (h *spendHandler) getClientPayment(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}
	txn, err := h.workflow.GetClientTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve client payment")
		return
	}
	c.JSON(http.StatusOK, txn)
}

// verifyClientPayment godoc
// @Summary Approve or reject a client payment
// @Tags income
// @Accept  json
// @Produce  json
// @Param   id path string true "Client transaction ID"
// @Param   request body dto.ResolveRequest true "Decision"
// @Success 200 {object} domain.ClientTransaction
// @Failure 409 {object} map[string]string "Already resolved"
// @Security BearerAuth
// @Router /client-payments/{id}/verify [post]
func (h *spendHandler) verifyClientPayment(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.ResolveRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.workflow.VerifyClientTransaction(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to verify client payment")
		return
	}
	c.JSON(http.StatusOK, txn)
}
