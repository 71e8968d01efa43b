package controllers

import (
	"net/http"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/gin-gonic/gin"
)

// LedgerController serves the cross-deal ledger and its exports.
type LedgerController struct {
	ledger services.LedgerService
}

func NewLedgerController(svc services.LedgerService) *LedgerController {
	return &LedgerController{ledger: svc}
}

func bindFilter(ctx *gin.Context) (models.LedgerFilter, bool) {
	var filter models.LedgerFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return filter, false
	}
	return filter, true
}

// Query handles GET /bff/ledger
func (lc *LedgerController) Query(ctx *gin.Context) {
	filter, ok := bindFilter(ctx)
	if !ok {
		return
	}

	res, svcErr := lc.ledger.Run(ctx.Request.Context(), filter)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// ExportCSV handles GET /bff/ledger/export.csv
func (lc *LedgerController) ExportCSV(ctx *gin.Context) { lc.export(ctx, services.FormatCSV) }

// ExportXLSX handles GET /bff/ledger/export.xlsx
func (lc *LedgerController) ExportXLSX(ctx *gin.Context) { lc.export(ctx, services.FormatXLSX) }

// export answers 204 when the filter matches nothing. With ?archive=true
// the file is stored and a download link returned instead of the file.
func (lc *LedgerController) export(ctx *gin.Context, format string) {
	filter, ok := bindFilter(ctx)
	if !ok {
		return
	}

	export, svcErr := lc.ledger.Export(ctx.Request.Context(), filter, format)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	if export == nil {
		ctx.Status(http.StatusNoContent)
		return
	}

	if ctx.Query("archive") == "true" {
		archived, svcErr := lc.ledger.Archive(ctx.Request.Context(), export)
		if svcErr != nil {
			respondError(ctx, svcErr)
			return
		}
		ctx.JSON(http.StatusOK, archived)
		return
	}
	sendBlob(ctx, export.Filename, export.ContentType, export.Data)
}

// ServerCSV handles GET /bff/ledger/server.csv
func (lc *LedgerController) ServerCSV(ctx *gin.Context) {
	filter, ok := bindFilter(ctx)
	if !ok {
		return
	}

	blob, svcErr := lc.ledger.ServerCSV(ctx.Request.Context(), filter)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	sendBlob(ctx, blob.Filename, blob.ContentType, blob.Data)
}

// ServerPDF handles GET /bff/ledger/server.pdf
func (lc *LedgerController) ServerPDF(ctx *gin.Context) {
	filter, ok := bindFilter(ctx)
	if !ok {
		return
	}

	blob, svcErr := lc.ledger.ServerPDF(ctx.Request.Context(), filter)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	sendBlob(ctx, blob.Filename, blob.ContentType, blob.Data)
}
