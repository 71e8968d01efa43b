package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	awspkg "github.com/Harshit-patil56/Land-deals-manager-sub000/pkg/aws"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/repository"
	"go.uber.org/zap"
)

// SubmitRequest is one payment submission, optionally with a receipt to
// attach once the payment exists.
type SubmitRequest struct {
	DealID   string
	Form     models.PaymentForm
	Receipt  *clients.File
	DocType  string
	Force    bool
	Username string
}

// SubmitResult reports a recorded payment. ProofError is set when the
// payment was created but its receipt could not be attached.
type SubmitResult struct {
	PaymentID     models.ID `json:"payment_id"`
	Message       string    `json:"message"`
	ProofUploaded bool      `json:"proof_uploaded"`
	ProofError    string    `json:"proof_error,omitempty"`
}

// PaymentView is a payment with its display fields filled in.
type PaymentView struct {
	models.Payment
	Flow        string   `json:"payment_flow"`
	Payers      string   `json:"payers"`
	Payees      string   `json:"payees"`
	PartyLabels []string `json:"party_labels"`
	IsDocument  bool     `json:"is_document_payment"`
}

// NewPaymentView labels p with the same functions the exports use.
func NewPaymentView(p models.Payment) PaymentView {
	labels := make([]string, 0, len(p.Parties))
	for _, party := range p.Parties {
		labels = append(labels, payments.ParticipantLabel(party))
	}
	return PaymentView{
		Payment:     p,
		Flow:        payments.PaymentFlow(p.Amount, p.Parties),
		Payers:      payments.PartyLabels(p.Parties, models.RolePayer),
		Payees:      payments.PartyLabels(p.Parties, models.RolePayee),
		PartyLabels: labels,
		IsDocument:  payments.IsDocumentPayment(p),
	}
}

func paymentViews(rows []models.Payment) []PaymentView {
	views := make([]PaymentView, 0, len(rows))
	for _, r := range rows {
		views = append(views, NewPaymentView(r))
	}
	return views
}

// PaymentService records and manages deal payments.
type PaymentService interface {
	// Submit validates locally and only then calls the backend. Its errors
	// are classified with payments.ClassifyError.
	Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error)
	List(ctx context.Context, dealID string) ([]PaymentView, *ServiceError)
	Annotate(ctx context.Context, dealID, paymentID, notes string) *ServiceError
	Delete(ctx context.Context, dealID, paymentID string) *ServiceError
}

type paymentServiceImpl struct {
	backend PaymentsBackend
	audit   repository.AuditRepository
	events  events
	metrics awspkg.MetricsRecorder
	logger  *zap.Logger
}

// NewPaymentService creates a new PaymentService. audit, sns and metrics
// may be nil.
func NewPaymentService(
	backend PaymentsBackend,
	audit repository.AuditRepository,
	sns awspkg.SNSPublisher,
	topicArn string,
	metrics awspkg.MetricsRecorder,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		backend: backend,
		audit:   audit,
		events:  events{sns: sns, topicArn: topicArn, logger: logger},
		metrics: metrics,
		logger:  logger,
	}
}

func (s *paymentServiceImpl) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	if err := payments.ValidateSubmission(req.Form); err != nil {
		return nil, err
	}
	payload, err := payments.PreparePayload(req.Form)
	if err != nil {
		return nil, err
	}
	if req.Receipt != nil && req.DocType != "" {
		if err := validateDocType(req.DocType); err != nil {
			return nil, &payments.ValidationError{Field: "doc_type", Message: err.Message}
		}
	}

	dims := map[string]string{"Mode": payload.PaymentMode}
	resp, err := s.backend.Create(ctx, req.DealID, payload, req.Force)
	if err != nil {
		classified := payments.ClassifyError(err)
		outcome := models.OutcomeFailed
		metric := awspkg.MetricPaymentsFailed
		if status := payments.StatusOf(classified); status >= 400 && status < 500 {
			outcome = models.OutcomeRejected
			metric = awspkg.MetricPaymentsRejected
		}
		s.logger.Warn("payment rejected",
			zap.String("deal_id", req.DealID),
			zap.Bool("force", req.Force),
			zap.Error(err),
		)
		count(ctx, s.metrics, metric, dims)
		s.recordAudit(ctx, req, payload, "", outcome, errorCode(err), "")
		return nil, classified
	}

	result := &SubmitResult{PaymentID: resp.PaymentID, Message: "Payment recorded"}
	proofStatus := ""
	if req.Receipt != nil && !resp.PaymentID.IsZero() {
		// The payment stays recorded even if its receipt fails to attach.
		if err := s.backend.UploadProof(ctx, req.DealID, resp.PaymentID.String(), *req.Receipt, req.DocType); err != nil {
			s.logger.Error("receipt upload failed after payment was created",
				zap.String("deal_id", req.DealID),
				zap.String("payment_id", resp.PaymentID.String()),
				zap.Error(err),
			)
			result.ProofError = "Payment recorded, but the receipt could not be uploaded"
			proofStatus = "failed"
			count(ctx, s.metrics, awspkg.MetricProofUploadFailed, dims)
		} else {
			result.ProofUploaded = true
			proofStatus = "uploaded"
			count(ctx, s.metrics, awspkg.MetricProofsUploaded, dims)
		}
	}

	s.logger.Info("payment recorded",
		zap.String("deal_id", req.DealID),
		zap.String("payment_id", resp.PaymentID.String()),
		zap.String("amount", payload.Amount.String()),
		zap.Int("parties", len(payload.Parties)),
	)
	count(ctx, s.metrics, awspkg.MetricPaymentsRecorded, dims)
	s.events.publish(ctx, models.PaymentRecordedEvent{
		EventType:     models.EventPaymentRecorded,
		DealID:        req.DealID,
		PaymentID:     resp.PaymentID.String(),
		Amount:        payload.Amount.String(),
		PaymentMode:   payload.PaymentMode,
		Parties:       len(payload.Parties),
		Forced:        req.Force,
		ProofUploaded: result.ProofUploaded,
		Timestamp:     time.Now(),
	})
	s.recordAudit(ctx, req, payload, resp.PaymentID.String(), models.OutcomeCreated, "", proofStatus)
	return result, nil
}

func (s *paymentServiceImpl) recordAudit(ctx context.Context, req *SubmitRequest, payload *models.PaymentPayload, paymentID, outcome, code, proofStatus string) {
	if s.audit == nil {
		return
	}
	err := s.audit.RecordSubmission(ctx, &models.SubmissionAudit{
		DealID:      req.DealID,
		PaymentID:   paymentID,
		Username:    req.Username,
		Amount:      payload.Amount.String(),
		PartyCount:  len(payload.Parties),
		Forced:      req.Force,
		Outcome:     outcome,
		ErrorCode:   code,
		ProofStatus: proofStatus,
	})
	if err != nil {
		s.logger.Warn("failed to write submission audit", zap.Error(err))
	}
}

func errorCode(err error) string {
	var apiErr *clients.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code != "" {
			return apiErr.Code
		}
		return http.StatusText(apiErr.StatusCode)
	}
	return "transport"
}

func (s *paymentServiceImpl) List(ctx context.Context, dealID string) ([]PaymentView, *ServiceError) {
	rows, err := s.backend.List(ctx, dealID)
	if err != nil {
		s.logger.Error("List payments failed", zap.String("deal_id", dealID), zap.Error(err))
		return nil, backendError(err, "Failed to load payments")
	}
	return paymentViews(rows), nil
}

func (s *paymentServiceImpl) Annotate(ctx context.Context, dealID, paymentID, notes string) *ServiceError {
	notes = strings.TrimSpace(notes)
	if err := s.backend.Update(ctx, dealID, paymentID, &models.PaymentUpdate{Notes: &notes}); err != nil {
		s.logger.Error("Annotate payment failed", zap.String("payment_id", paymentID), zap.Error(err))
		return backendError(err, "Failed to update payment")
	}
	return nil
}

func (s *paymentServiceImpl) Delete(ctx context.Context, dealID, paymentID string) *ServiceError {
	if err := s.backend.Delete(ctx, dealID, paymentID); err != nil {
		s.logger.Error("Delete payment failed", zap.String("payment_id", paymentID), zap.Error(err))
		return backendError(err, "Failed to delete payment")
	}
	s.logger.Info("payment deleted", zap.String("deal_id", dealID), zap.String("payment_id", paymentID))
	return nil
}
