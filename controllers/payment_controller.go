package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/common/middleware"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/gin-gonic/gin"
)

// Multipart field names of the payment form.
const (
	fieldParties = "parties"
	fieldReceipt = "receipt"
	fieldProof   = "proof"
	fieldDocType = "doc_type"
)

// PaymentController handles the payments of one deal and their proofs.
type PaymentController struct {
	payments services.PaymentService
	proofs   services.ProofService
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(payments services.PaymentService, proofs services.ProofService) *PaymentController {
	return &PaymentController{payments: payments, proofs: proofs}
}

// List handles GET /bff/deals/:id/payments
func (pc *PaymentController) List(ctx *gin.Context) {
	views, svcErr := pc.payments.List(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"payments": views})
}

// Create handles POST /bff/deals/:id/payments. The body is either the
// payment form as JSON or a multipart form whose "parties" field holds the
// party rows as JSON and whose optional "receipt" file is attached after
// the payment is recorded.
func (pc *PaymentController) Create(ctx *gin.Context) {
	req := &services.SubmitRequest{
		DealID: ctx.Param("id"),
		Force:  ctx.Query("force") == "true",
	}
	if user, err := middleware.GetUser(ctx); err == nil {
		req.Username = user.Username
	}

	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		if err := bindPaymentMultipart(ctx, req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
	} else if err := ctx.ShouldBindJSON(&req.Form); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, err := pc.payments.Submit(ctx.Request.Context(), req)
	if err != nil {
		respondSubmitError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

func bindPaymentMultipart(ctx *gin.Context, req *services.SubmitRequest) error {
	if err := ctx.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		return err
	}
	if err := ctx.ShouldBind(&req.Form); err != nil {
		return err
	}
	if raw := ctx.PostForm(fieldParties); raw != "" {
		var parties []models.Party
		if err := json.Unmarshal([]byte(raw), &parties); err != nil {
			return err
		}
		req.Form.Parties = parties
	}
	req.DocType = ctx.PostForm(fieldDocType)

	fh, err := ctx.FormFile(fieldReceipt)
	if err == http.ErrMissingFile {
		return nil
	}
	if err != nil {
		return err
	}
	receipt, err := readFormFile(fh)
	if err != nil {
		return err
	}
	req.Receipt = &receipt
	return nil
}

// Annotate handles PUT /bff/deals/:id/payments/:pid/notes
func (pc *PaymentController) Annotate(ctx *gin.Context) {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := pc.payments.Annotate(ctx.Request.Context(), ctx.Param("id"), ctx.Param("pid"), body.Notes); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Payment updated"})
}

// Delete handles DELETE /bff/deals/:id/payments/:pid
func (pc *PaymentController) Delete(ctx *gin.Context) {
	if svcErr := pc.payments.Delete(ctx.Request.Context(), ctx.Param("id"), ctx.Param("pid")); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}

// ListProofs handles GET /bff/deals/:id/payments/:pid/proofs
func (pc *PaymentController) ListProofs(ctx *gin.Context) {
	views, svcErr := pc.proofs.List(ctx.Request.Context(), ctx.Param("id"), ctx.Param("pid"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"proofs": views})
}

// UploadProof handles POST /bff/deals/:id/payments/:pid/proofs
func (pc *PaymentController) UploadProof(ctx *gin.Context) {
	var file clients.File
	if fh, err := ctx.FormFile(fieldProof); err == nil {
		if file, err = readFormFile(fh); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
	}

	views, svcErr := pc.proofs.Upload(ctx.Request.Context(), ctx.Param("id"), ctx.Param("pid"), file, ctx.PostForm(fieldDocType))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"proofs": views})
}

// DeleteProof handles DELETE /bff/deals/:id/payments/:pid/proofs/:proof_id.
// The caller confirms with ?confirm=true.
func (pc *PaymentController) DeleteProof(ctx *gin.Context) {
	confirmed := ctx.Query("confirm") == "true"
	confirm := services.ConfirmFunc(func(context.Context, string) bool { return confirmed })

	views, svcErr := pc.proofs.Delete(ctx.Request.Context(), ctx.Param("id"), ctx.Param("pid"), ctx.Param("proof_id"), confirm)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"proofs": views})
}

// MarkProofFailed handles POST /bff/deals/:id/payments/:pid/proofs/:proof_id/failed.
// The front-end reports a preview that failed to render.
func (pc *PaymentController) MarkProofFailed(ctx *gin.Context) {
	if svcErr := pc.proofs.MarkFailed(ctx.Request.Context(), ctx.Param("id"), ctx.Param("pid"), ctx.Param("proof_id")); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.Status(http.StatusNoContent)
}
