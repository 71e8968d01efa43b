package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	awspkg "github.com/Harshit-patil56/Land-deals-manager-sub000/pkg/aws"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Confirmed approves every prompt.
var Confirmed = ConfirmFunc(func(context.Context, string) bool { return true })

// ErrNotConfirmed is returned when a delete was not approved. No request
// was sent.
var ErrNotConfirmed = &ServiceError{StatusCode: http.StatusPreconditionRequired, Message: "Deletion not confirmed"}

var validate = validator.New()

type proofUpload struct {
	DocType string `validate:"omitempty,oneof=receipt bank_transfer cheque cash upi contra other"`
}

func validateDocType(docType string) *ServiceError {
	if err := validate.Struct(proofUpload{DocType: docType}); err != nil {
		return &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: fmt.Sprintf("Unknown document type %q", docType)}
	}
	return nil
}

// ProofService manages the files attached to a payment. Every change is
// followed by a refetch; nothing is inserted optimistically.
type ProofService interface {
	Upload(ctx context.Context, dealID, paymentID string, file clients.File, docType string) ([]payments.ProofView, *ServiceError)
	List(ctx context.Context, dealID, paymentID string) ([]payments.ProofView, *ServiceError)
	Delete(ctx context.Context, dealID, paymentID, proofID string, confirm Confirmer) ([]payments.ProofView, *ServiceError)
	MarkFailed(ctx context.Context, dealID, paymentID, proofID string) *ServiceError
}

type proofServiceImpl struct {
	backend PaymentsBackend
	tracker *payments.RenderTracker
	events  events
	metrics awspkg.MetricsRecorder
	logger  *zap.Logger
}

// NewProofService creates a new ProofService.
func NewProofService(
	backend PaymentsBackend,
	tracker *payments.RenderTracker,
	sns awspkg.SNSPublisher,
	topicArn string,
	metrics awspkg.MetricsRecorder,
	logger *zap.Logger,
) ProofService {
	if tracker == nil {
		tracker = payments.NewRenderTracker()
	}
	return &proofServiceImpl{
		backend: backend,
		tracker: tracker,
		events:  events{sns: sns, topicArn: topicArn, logger: logger},
		metrics: metrics,
		logger:  logger,
	}
}

func (s *proofServiceImpl) Upload(ctx context.Context, dealID, paymentID string, file clients.File, docType string) ([]payments.ProofView, *ServiceError) {
	if len(file.Data) == 0 {
		return nil, &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Select a file to upload"}
	}
	if err := validateDocType(docType); err != nil {
		return nil, err
	}

	if err := s.backend.UploadProof(ctx, dealID, paymentID, file, docType); err != nil {
		s.logger.Error("Proof upload failed",
			zap.String("payment_id", paymentID),
			zap.String("file", file.Name),
			zap.Error(err),
		)
		count(ctx, s.metrics, awspkg.MetricProofUploadFailed, nil)
		return nil, backendError(err, "Failed to upload proof")
	}
	count(ctx, s.metrics, awspkg.MetricProofsUploaded, nil)
	s.events.publish(ctx, models.ProofEvent{
		EventType: models.EventProofUploaded,
		DealID:    dealID,
		PaymentID: paymentID,
		DocType:   docType,
		Timestamp: time.Now(),
	})

	s.tracker.Reset(paymentID)
	return s.List(ctx, dealID, paymentID)
}

func (s *proofServiceImpl) List(ctx context.Context, dealID, paymentID string) ([]payments.ProofView, *ServiceError) {
	proofs, err := s.backend.ListProofs(ctx, dealID, paymentID)
	if err != nil {
		s.logger.Error("List proofs failed", zap.String("payment_id", paymentID), zap.Error(err))
		return nil, backendError(err, "Failed to load proofs")
	}
	return s.tracker.Views(paymentID, proofs), nil
}

func (s *proofServiceImpl) Delete(ctx context.Context, dealID, paymentID, proofID string, confirm Confirmer) ([]payments.ProofView, *ServiceError) {
	if confirm == nil || !confirm.Confirm(ctx, fmt.Sprintf("Delete proof %s from payment %s?", proofID, paymentID)) {
		return nil, ErrNotConfirmed
	}

	if err := s.backend.DeleteProof(ctx, dealID, paymentID, proofID); err != nil {
		s.logger.Error("Delete proof failed", zap.String("proof_id", proofID), zap.Error(err))
		return nil, backendError(err, "Failed to delete proof")
	}
	s.events.publish(ctx, models.ProofEvent{
		EventType: models.EventProofDeleted,
		DealID:    dealID,
		PaymentID: paymentID,
		ProofID:   proofID,
		Timestamp: time.Now(),
	})
	return s.List(ctx, dealID, paymentID)
}

// MarkFailed records a preview failure for a proof the payment actually
// has. Unknown ids are a 404.
func (s *proofServiceImpl) MarkFailed(ctx context.Context, dealID, paymentID, proofID string) *ServiceError {
	proofs, err := s.backend.ListProofs(ctx, dealID, paymentID)
	if err != nil {
		s.logger.Error("List proofs failed", zap.String("payment_id", paymentID), zap.Error(err))
		return backendError(err, "Failed to load proofs")
	}
	for _, p := range proofs {
		if p.ID.String() == proofID {
			s.tracker.MarkFailed(paymentID, proofID)
			return nil
		}
	}
	return &ServiceError{StatusCode: http.StatusNotFound, Message: "Proof not found"}
}
