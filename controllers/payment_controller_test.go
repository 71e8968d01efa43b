package controllers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/common/middleware"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/controllers"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaymentRouter(ps services.PaymentService, proofs services.ProofService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	c := controllers.NewPaymentController(ps, proofs)

	r.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.UserContextKey, models.User{ID: "3", Username: "ravi"})
		ctx.Next()
	})
	r.GET("/deals/:id/payments", c.List)
	r.POST("/deals/:id/payments", c.Create)
	r.PUT("/deals/:id/payments/:pid/notes", c.Annotate)
	r.DELETE("/deals/:id/payments/:pid", c.Delete)
	r.GET("/deals/:id/payments/:pid/proofs", c.ListProofs)
	r.POST("/deals/:id/payments/:pid/proofs", c.UploadProof)
	r.DELETE("/deals/:id/payments/:pid/proofs/:proof_id", c.DeleteProof)
	r.POST("/deals/:id/payments/:pid/proofs/:proof_id/failed", c.MarkProofFailed)
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreatePayment_JSON(t *testing.T) {
	svc := &mockPaymentSvc{result: &services.SubmitResult{PaymentID: "42", Message: "Payment recorded"}}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	body := `{"amount":"1500.50","payment_date":"2024-03-01","payment_mode":"UPI",
	 "parties":[{"party_type":"owner","party_id":1,"role":"payer","pay_to_type":"buyer","pay_to_id":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments?force=true", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(42), decodeBody(t, w)["payment_id"])
	require.NotNil(t, svc.submitted)
	assert.Equal(t, "7", svc.submitted.DealID)
	assert.True(t, svc.submitted.Force)
	assert.Equal(t, "ravi", svc.submitted.Username)
	assert.Equal(t, "1500.50", svc.submitted.Form.Amount)
	require.Len(t, svc.submitted.Form.Parties, 1)
	assert.Equal(t, models.ID("2"), svc.submitted.Form.Parties[0].PayToID)
}

func TestCreatePayment_NumericAmountAndBlankPartyAmount(t *testing.T) {
	svc := &mockPaymentSvc{result: &services.SubmitResult{PaymentID: "43"}}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	body := `{"amount":1500.50,"payment_date":"2024-03-01","payment_mode":"UPI",
	 "parties":[{"party_type":"owner","party_id":"1","role":"payer","amount":"","pay_to_type":"buyer","pay_to_id":"2","pay_to_name":""}]}`
	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.submitted)
	assert.Equal(t, "1500.50", svc.submitted.Form.Amount)
	require.Len(t, svc.submitted.Form.Parties, 1)
	assert.False(t, svc.submitted.Form.Parties[0].Amount.Valid)
}

func TestCreatePayment_UnreadableAmountReachesValidation(t *testing.T) {
	svc := &mockPaymentSvc{submitErr: &payments.ValidationError{Field: "amount", Message: "Enter a valid amount"}}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments", bytes.NewBufferString(`{"amount":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, svc.submitted)
	assert.Equal(t, "true", svc.submitted.Form.Amount)
}

func TestCreatePayment_MultipartBlankPartyAmount(t *testing.T) {
	svc := &mockPaymentSvc{result: &services.SubmitResult{PaymentID: "6"}}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	_ = mw.WriteField("amount", "900")
	_ = mw.WriteField("payment_mode", "Cash")
	_ = mw.WriteField("parties", `[{"party_type":"investor","party_id":4,"role":"payee","amount":""}]`)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.submitted)
	require.Len(t, svc.submitted.Form.Parties, 1)
	assert.Equal(t, models.ID("4"), svc.submitted.Form.Parties[0].PartyID)
}

func TestCreatePayment_MultipartWithReceipt(t *testing.T) {
	svc := &mockPaymentSvc{result: &services.SubmitResult{PaymentID: "5", ProofUploaded: true}}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	_ = mw.WriteField("amount", "900")
	_ = mw.WriteField("payment_mode", "Cash")
	_ = mw.WriteField("parties", `[{"party_type":"investor","party_id":4,"role":"payee"}]`)
	_ = mw.WriteField("doc_type", "receipt")
	fw, _ := mw.CreateFormFile("receipt", "r.pdf")
	_, _ = fw.Write([]byte("%PDF"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	req2 := svc.submitted
	require.NotNil(t, req2)
	assert.False(t, req2.Force)
	assert.Equal(t, "900", req2.Form.Amount)
	assert.Equal(t, "Cash", req2.Form.PaymentMode)
	require.Len(t, req2.Form.Parties, 1)
	assert.Equal(t, models.PartyTypeInvestor, req2.Form.Parties[0].PartyType)
	require.NotNil(t, req2.Receipt)
	assert.Equal(t, "r.pdf", req2.Receipt.Name)
	assert.Equal(t, "%PDF", string(req2.Receipt.Data))
	assert.Equal(t, "receipt", req2.DocType)
}

func TestCreatePayment_ValidationError(t *testing.T) {
	svc := &mockPaymentSvc{submitErr: &payments.ValidationError{Field: "amount", Message: "Enter a valid amount"}}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments", bytes.NewBufferString(`{"amount":"0"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Enter a valid amount", resp["error"])
	assert.Equal(t, "validation", resp["kind"])
	assert.Equal(t, "amount", resp["field"])
}

func TestCreatePayment_AmountMismatch(t *testing.T) {
	svc := &mockPaymentSvc{submitErr: &payments.PartyAmountMismatchError{Status: 400, PaymentAmount: "1000", PartiesTotal: "900"}}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "party_amount_mismatch", resp["error"])
	assert.Equal(t, "900", resp["parties_total"])
	assert.Equal(t, "Party sum mismatch: payment 1000 vs parties 900", resp["message"])
}

func TestCreatePayment_TransportFailure(t *testing.T) {
	svc := &mockPaymentSvc{submitErr: &payments.SubmissionError{Err: errors.New("dial tcp: refused")}}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to record payment", decodeBody(t, w)["error"])
}

func TestCreatePayment_BadJSON(t *testing.T) {
	svc := &mockPaymentSvc{}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments", bytes.NewBufferString("not-json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.submitted)
}

func TestListPayments_SessionExpired(t *testing.T) {
	svc := &mockPaymentSvc{svcErr: services.ErrSessionExpired}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	req := httptest.NewRequest(http.MethodGet, "/deals/7/payments", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", decodeBody(t, w)["redirect"])
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookie+"=;")
}

func TestAnnotatePayment(t *testing.T) {
	svc := &mockPaymentSvc{}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	req := httptest.NewRequest(http.MethodPut, "/deals/7/payments/11/notes", bytes.NewBufferString(`{"notes":"cleared"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cleared", svc.notes)
}

func TestDeletePayment_NotFound(t *testing.T) {
	svc := &mockPaymentSvc{svcErr: &services.ServiceError{StatusCode: http.StatusNotFound, Message: "Not found"}}
	r := setupPaymentRouter(svc, &mockProofSvc{})

	req := httptest.NewRequest(http.MethodDelete, "/deals/7/payments/11", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadProof_PassesFileAndDocType(t *testing.T) {
	proofs := &mockProofSvc{views: []payments.ProofView{{Kind: payments.RenderImage}}}
	r := setupPaymentRouter(&mockPaymentSvc{}, proofs)

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	_ = mw.WriteField("doc_type", "cheque")
	fw, _ := mw.CreateFormFile("proof", "cheque.jpg")
	_, _ = fw.Write([]byte("jpg"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments/11/proofs", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "cheque.jpg", proofs.uploaded.Name)
	assert.Equal(t, "cheque", proofs.docType)
}

func TestDeleteProof_RequiresConfirmation(t *testing.T) {
	proofs := &mockProofSvc{}
	r := setupPaymentRouter(&mockPaymentSvc{}, proofs)

	req := httptest.NewRequest(http.MethodDelete, "/deals/7/payments/11/proofs/3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.False(t, proofs.confirmed)

	req = httptest.NewRequest(http.MethodDelete, "/deals/7/payments/11/proofs/3?confirm=true", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, proofs.confirmed)
}

func TestMarkProofFailed(t *testing.T) {
	proofs := &mockProofSvc{}
	r := setupPaymentRouter(&mockPaymentSvc{}, proofs)

	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments/11/proofs/3/failed", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "3", proofs.markedFail)
}

func TestMarkProofFailed_UnknownProof(t *testing.T) {
	proofs := &mockProofSvc{markErr: &services.ServiceError{StatusCode: http.StatusNotFound, Message: "Proof not found"}}
	r := setupPaymentRouter(&mockPaymentSvc{}, proofs)

	req := httptest.NewRequest(http.MethodPost, "/deals/7/payments/11/proofs/999/failed", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Proof not found", decodeBody(t, w)["error"])
	assert.Empty(t, proofs.markedFail)
}
