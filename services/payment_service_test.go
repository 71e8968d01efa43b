package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validForm() models.PaymentForm {
	return models.PaymentForm{
		Amount:      "1500.50",
		PaymentDate: "2024-03-01",
		PaymentMode: models.ModeUPI,
		Parties: []models.Party{{
			PartyType: models.PartyTypeOwner,
			PartyID:   "1",
			Role:      models.RolePayer,
			PayToType: models.PartyTypeBuyer,
			PayToID:   "2",
		}},
	}
}

func newPaymentService(t *testing.T) (*fakeBackend, *mockAuditRepo, *mockSNS, *mockMetrics, services.PaymentService) {
	fb, client := newFakeBackend(t)
	audit := &mockAuditRepo{}
	sns := &mockSNS{}
	metrics := newMockMetrics()
	svc := services.NewPaymentService(client.Payments(), audit, sns, "arn:aws:sns:ap-south-1:000000000000:landdeals", metrics, zap.NewNop())
	return fb, audit, sns, metrics, svc
}

func TestSubmit_ValidationBlocksBackend(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *models.PaymentForm)
		msg    string
	}{
		{"zero amount", func(f *models.PaymentForm) { f.Amount = "0" }, "Enter a valid amount"},
		{"missing role", func(f *models.PaymentForm) { f.Parties[0].Role = "" }, "Please add at least one person with a role and payment target"},
		{"missing target", func(f *models.PaymentForm) { f.Parties[0].PayToID = "" }, "Please add at least one person with a role and payment target"},
		{"self target", func(f *models.PaymentForm) {
			f.Parties[0].PayToType = models.PartyTypeOwner
			f.Parties[0].PayToID = "1"
		}, "Party 1: A party cannot pay itself"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb, audit, _, _, svc := newPaymentService(t)
			form := validForm()
			tc.mutate(&form)

			_, err := svc.Submit(context.Background(), &services.SubmitRequest{DealID: "7", Form: form})

			var ve *payments.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.msg, ve.Message)
			assert.Equal(t, http.StatusUnprocessableEntity, payments.StatusOf(err))
			assert.Empty(t, fb.Calls())
			assert.Empty(t, audit.submissions)
		})
	}
}

func TestSubmit_SendsTotalAsEveryPartyAmount(t *testing.T) {
	fb, audit, sns, metrics, svc := newPaymentService(t)
	var body map[string]interface{}
	fb.on(http.MethodPost, "/payments/7", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"payment_id": 11}`))
	})

	form := validForm()
	form.Parties = append(form.Parties, models.Party{
		PartyType: models.PartyTypeInvestor,
		PartyID:   "4",
		Role:      models.RolePayee,
		PayToType: models.PartyTypeOwner,
		PayToID:   "1",
	})
	res, err := svc.Submit(context.Background(), &services.SubmitRequest{DealID: "7", Form: form, Username: "ravi"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("11"), res.PaymentID)
	assert.False(t, res.ProofUploaded)

	parties := body["parties"].([]interface{})
	require.Len(t, parties, 2)
	for _, p := range parties {
		assert.Equal(t, 1500.5, p.(map[string]interface{})["amount"])
	}

	require.Len(t, audit.submissions, 1)
	assert.Equal(t, models.OutcomeCreated, audit.submissions[0].Outcome)
	assert.Equal(t, "11", audit.submissions[0].PaymentID)
	assert.Equal(t, []string{models.EventPaymentRecorded}, sns.eventTypes())
	assert.Equal(t, 1, metrics.count("PaymentsRecorded"))
}

func TestSubmit_ForceAddsQuery(t *testing.T) {
	fb, audit, _, _, svc := newPaymentService(t)
	fb.json(http.MethodPost, "/payments/7", http.StatusCreated, map[string]int{"payment_id": 12})

	_, err := svc.Submit(context.Background(), &services.SubmitRequest{DealID: "7", Form: validForm(), Force: true})
	require.NoError(t, err)

	calls := fb.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "force=true", calls[0].Query)
	assert.True(t, audit.submissions[0].Forced)
}

func TestSubmit_AmountMismatchIsClassified(t *testing.T) {
	fb, audit, _, metrics, svc := newPaymentService(t)
	fb.json(http.MethodPost, "/payments/7", http.StatusBadRequest, map[string]interface{}{
		"error":          "party_amount_mismatch",
		"payment_amount": 1500.5,
		"parties_total":  900,
	})

	_, err := svc.Submit(context.Background(), &services.SubmitRequest{DealID: "7", Form: validForm()})

	var mismatch *payments.PartyAmountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Party sum mismatch: payment 1500.5 vs parties 900", mismatch.Error())
	assert.Equal(t, http.StatusBadRequest, payments.StatusOf(err))
	require.Len(t, audit.submissions, 1)
	assert.Equal(t, models.OutcomeRejected, audit.submissions[0].Outcome)
	assert.Equal(t, "party_amount_mismatch", audit.submissions[0].ErrorCode)
	assert.Equal(t, 1, metrics.count("PaymentsRejected"))
}

func TestSubmit_ReceiptFailureKeepsPayment(t *testing.T) {
	fb, audit, sns, _, svc := newPaymentService(t)
	fb.json(http.MethodPost, "/payments/7", http.StatusCreated, map[string]int{"payment_id": 13})
	fb.json(http.MethodPost, "/payments/7/13/proof", http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})

	receipt := &clients.File{Name: "receipt.pdf", Data: []byte("%PDF")}
	res, err := svc.Submit(context.Background(), &services.SubmitRequest{DealID: "7", Form: validForm(), Receipt: receipt, DocType: "receipt"})

	require.NoError(t, err)
	assert.Equal(t, models.ID("13"), res.PaymentID)
	assert.False(t, res.ProofUploaded)
	assert.NotEmpty(t, res.ProofError)
	assert.Equal(t, "failed", audit.submissions[0].ProofStatus)
	assert.Len(t, sns.eventTypes(), 1)

	for _, c := range fb.Calls() {
		assert.NotEqual(t, http.MethodDelete, c.Method)
	}
}

func TestSubmit_ReceiptUploadedUnderProofField(t *testing.T) {
	fb, _, _, _, svc := newPaymentService(t)
	fb.json(http.MethodPost, "/payments/7", http.StatusCreated, map[string]int{"payment_id": 14})
	var gotName, gotDocType string
	fb.on(http.MethodPost, "/payments/7/14/proof", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("proof")
		if err == nil {
			_, _ = io.ReadAll(f)
			gotName = hdr.Filename
		}
		gotDocType = r.FormValue("doc_type")
		w.Write([]byte(`{"message":"uploaded"}`))
	})

	receipt := &clients.File{Name: "upi.png", Data: []byte{0x89, 'P', 'N', 'G'}}
	res, err := svc.Submit(context.Background(), &services.SubmitRequest{DealID: "7", Form: validForm(), Receipt: receipt, DocType: "upi"})

	require.NoError(t, err)
	assert.True(t, res.ProofUploaded)
	assert.Equal(t, "upi.png", gotName)
	assert.Equal(t, "upi", gotDocType)
}

func TestSubmit_UnknownDocTypeBlocksBackend(t *testing.T) {
	fb, _, _, _, svc := newPaymentService(t)
	receipt := &clients.File{Name: "r.pdf", Data: []byte("x")}

	_, err := svc.Submit(context.Background(), &services.SubmitRequest{DealID: "7", Form: validForm(), Receipt: receipt, DocType: "selfie"})

	var ve *payments.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Empty(t, fb.Calls())
}

func TestSubmit_UnauthorizedIs401(t *testing.T) {
	fb, _, _, _, svc := newPaymentService(t)
	fb.json(http.MethodPost, "/payments/7", http.StatusUnauthorized, map[string]string{"error": "Token is invalid"})

	_, err := svc.Submit(context.Background(), &services.SubmitRequest{DealID: "7", Form: validForm()})
	assert.Equal(t, http.StatusUnauthorized, payments.StatusOf(err))
}

func TestListPayments_Views(t *testing.T) {
	fb, _, _, _, svc := newPaymentService(t)
	fb.on(http.MethodGet, "/payments/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":11,"deal_id":7,"amount":1500.5,"payment_date":"2024-03-01","payment_mode":"UPI","status":"paid",
			"parties":[{"party_type":"owner","party_id":1,"party_name":"Asha Patil","role":"payer"},
			           {"party_type":"buyer","party_id":2,"role":"payee"}]}]`))
	})

	views, serr := svc.List(context.Background(), "7")
	require.Nil(t, serr)
	require.Len(t, views, 1)
	assert.Equal(t, "₹1,500.5 paid by Asha Patil (owner #1) to buyer #2", views[0].Flow)
	assert.Equal(t, []string{"Asha Patil (owner #1)", "buyer #2"}, views[0].PartyLabels)
}

func TestListPayments_BackendDown(t *testing.T) {
	fb, _, _, _, svc := newPaymentService(t)
	fb.json(http.MethodGet, "/payments/7", http.StatusInternalServerError, map[string]string{"error": "boom"})

	_, serr := svc.List(context.Background(), "7")
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadGateway, serr.StatusCode)
}

func TestAnnotate_SendsNotes(t *testing.T) {
	fb, _, _, _, svc := newPaymentService(t)
	var body map[string]interface{}
	fb.on(http.MethodPut, "/payments/7/11", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"message":"updated"}`))
	})

	serr := svc.Annotate(context.Background(), "7", "11", "  stamp duty  ")
	assert.Nil(t, serr)
	assert.Equal(t, map[string]interface{}{"notes": "stamp duty"}, body)
}

func TestDeletePayment_NotFound(t *testing.T) {
	_, _, _, _, svc := newPaymentService(t)

	serr := svc.Delete(context.Background(), "7", "99")
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}
