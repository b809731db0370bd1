package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/site_ledger_app/internal/dto"
	"github.com/SscSPs/site_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

func registerImportRoutes(rg *gin.RouterGroup, importer portssvc.BulkImportSvc) {
	rg.POST("/imports/sites", importSite(importer))
}

// importSite godoc
// @Summary Import a site with its history
// @Description Either every record is written or none is. Admin only.
// @Tags imports
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkImportRequest true "Site and history"
// @Success 201 {object} domain.ImportedRecords
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "Insufficient company funds"
// @Security BearerAuth
// @Router /imports/sites [post]
func importSite(importer portssvc.BulkImportSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorOrAbort(c)
		if !ok {
			return
		}
		var req dto.BulkImportRequest
		if !bindJSON(c, &req) {
			return
		}

		records, err := importer.ImportSite(c.Request.Context(), actor, req)
		if err != nil {
			respondError(c, err, "Failed to import site")
			return
		}

		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Site imported",
			slog.String("site_id", records.SiteID),
			slog.Int("purchases", len(records.PurchaseIDs)),
		)
		c.JSON(http.StatusCreated, records)
	}
}
