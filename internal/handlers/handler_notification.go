package handlers

import (
	"net/http"

	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

func registerNotificationRoutes(rg *gin.RouterGroup, notifications portssvc.NotificationDispatcherSvc) {
	rg.GET("/notifications", listNotifications(notifications))
}

// listNotifications godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Produce  json
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 400 {object} map[string]string "Invalid token"
// @Security BearerAuth
// @Router /notifications [get]
func listNotifications(notifications portssvc.NotificationDispatcherSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorOrAbort(c)
		if !ok {
			return
		}
		var params dto.ListNotificationsParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
			return
		}

		items, next, err := notifications.ListForUser(c.Request.Context(), actor.UserID, params.Limit, params.NextToken)
		if err != nil {
			respondError(c, err, "Failed to list notifications")
			return
		}
		if items == nil {
			items = []domain.Notification{}
		}
		c.JSON(http.StatusOK, dto.ListNotificationsResponse{Notifications: items, NextToken: next})
	}
}
