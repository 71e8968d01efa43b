package controllers_test

import (
	"context"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/uploads"
)

// ---- mock services.PaymentService ----

type mockPaymentSvc struct {
	submitted *services.SubmitRequest
	result    *services.SubmitResult
	submitErr error
	views     []services.PaymentView
	svcErr    *services.ServiceError
	notes     string
}

func (m *mockPaymentSvc) Submit(_ context.Context, req *services.SubmitRequest) (*services.SubmitResult, error) {
	m.submitted = req
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.result, nil
}

func (m *mockPaymentSvc) List(context.Context, string) ([]services.PaymentView, *services.ServiceError) {
	return m.views, m.svcErr
}

func (m *mockPaymentSvc) Annotate(_ context.Context, _, _, notes string) *services.ServiceError {
	m.notes = notes
	return m.svcErr
}

func (m *mockPaymentSvc) Delete(context.Context, string, string) *services.ServiceError {
	return m.svcErr
}

// ---- mock services.ProofService ----

type mockProofSvc struct {
	views      []payments.ProofView
	svcErr     *services.ServiceError
	uploaded   clients.File
	docType    string
	confirmed  bool
	markedFail string
	markErr    *services.ServiceError
}

func (m *mockProofSvc) Upload(_ context.Context, _, _ string, file clients.File, docType string) ([]payments.ProofView, *services.ServiceError) {
	m.uploaded, m.docType = file, docType
	return m.views, m.svcErr
}

func (m *mockProofSvc) List(context.Context, string, string) ([]payments.ProofView, *services.ServiceError) {
	return m.views, m.svcErr
}

func (m *mockProofSvc) Delete(ctx context.Context, _, _, _ string, confirm services.Confirmer) ([]payments.ProofView, *services.ServiceError) {
	if !confirm.Confirm(ctx, "delete?") {
		return nil, services.ErrNotConfirmed
	}
	m.confirmed = true
	return m.views, m.svcErr
}

func (m *mockProofSvc) MarkFailed(_ context.Context, _, _, proofID string) *services.ServiceError {
	if m.markErr != nil {
		return m.markErr
	}
	m.markedFail = proofID
	return nil
}

// ---- mock services.LedgerService ----

type mockLedgerSvc struct {
	filter   models.LedgerFilter
	result   *services.LedgerResult
	export   *payments.Export
	archived *services.ArchivedExport
	blob     *clients.Blob
	svcErr   *services.ServiceError
}

func (m *mockLedgerSvc) Run(_ context.Context, f models.LedgerFilter) (*services.LedgerResult, *services.ServiceError) {
	m.filter = f
	return m.result, m.svcErr
}

func (m *mockLedgerSvc) Export(_ context.Context, f models.LedgerFilter, _ string) (*payments.Export, *services.ServiceError) {
	m.filter = f
	return m.export, m.svcErr
}

func (m *mockLedgerSvc) ServerCSV(context.Context, models.LedgerFilter) (*clients.Blob, *services.ServiceError) {
	return m.blob, m.svcErr
}

func (m *mockLedgerSvc) ServerPDF(context.Context, models.LedgerFilter) (*clients.Blob, *services.ServiceError) {
	return m.blob, m.svcErr
}

func (m *mockLedgerSvc) Archive(context.Context, *payments.Export) (*services.ArchivedExport, *services.ServiceError) {
	return m.archived, nil
}

// ---- mock services.DealService ----

type mockDealSvc struct {
	input    *models.DealInput
	docs     uploads.DealDocuments
	result   *services.DealCreateResult
	self     models.Participant
	options  []models.Participant
	svcErr   *services.ServiceError
	strategy string
	deals    []models.Deal
	dealID   string
	expense  *models.Expense
}

func (m *mockDealSvc) List(context.Context) ([]models.Deal, *services.ServiceError) {
	return m.deals, m.svcErr
}

func (m *mockDealSvc) Get(_ context.Context, dealID string) (*models.Deal, *services.ServiceError) {
	m.dealID = dealID
	if m.svcErr != nil {
		return nil, m.svcErr
	}
	return &models.Deal{ID: models.ID(dealID), ProjectName: "Wagholi plot"}, nil
}

func (m *mockDealSvc) Update(_ context.Context, dealID string, in *models.DealInput) *services.ServiceError {
	m.dealID, m.input = dealID, in
	return m.svcErr
}

func (m *mockDealSvc) Delete(_ context.Context, dealID string) *services.ServiceError {
	m.dealID = dealID
	return m.svcErr
}

func (m *mockDealSvc) AddExpense(_ context.Context, dealID string, expense *models.Expense) *services.ServiceError {
	m.dealID, m.expense = dealID, expense
	return m.svcErr
}

func (m *mockDealSvc) CreateWithDocuments(_ context.Context, in *models.DealInput, docs uploads.DealDocuments) (*services.DealCreateResult, *services.ServiceError) {
	m.input, m.docs = in, docs
	return m.result, m.svcErr
}

func (m *mockDealSvc) Participants(_ context.Context, _, strategy string) (*services.ImportResult, *services.ServiceError) {
	m.strategy = strategy
	if m.svcErr != nil {
		return nil, m.svcErr
	}
	return &services.ImportResult{}, nil
}

func (m *mockDealSvc) Targets(_ context.Context, _ string, self models.Participant, _ models.PartyType) ([]models.Participant, *services.ServiceError) {
	m.self = self
	return m.options, m.svcErr
}

// ---- mock services.SessionService ----

type mockSessionSvc struct {
	result    *services.LoginResult
	svcErr    *services.ServiceError
	loggedOut string
}

func (m *mockSessionSvc) Login(context.Context, *models.LoginRequest) (*services.LoginResult, *services.ServiceError) {
	return m.result, m.svcErr
}

func (m *mockSessionSvc) Logout(_ context.Context, sid string) *services.ServiceError {
	m.loggedOut = sid
	return nil
}

func (m *mockSessionSvc) Status(_ context.Context, sid string) *services.SessionStatus {
	return &services.SessionStatus{Authenticated: sid != ""}
}
