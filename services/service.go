package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	awspkg "github.com/Harshit-patil56/Land-deals-manager-sub000/pkg/aws"
	"go.uber.org/zap"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// ErrSessionExpired is returned whenever the backend rejected the token.
var ErrSessionExpired = &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Session expired"}

// backendError maps a backend failure to a ServiceError. msg describes what
// was being done and is used for everything but 401 and 404.
func backendError(err error, msg string) *ServiceError {
	var apiErr *clients.APIError
	if !errors.As(err, &apiErr) {
		return &ServiceError{StatusCode: http.StatusBadGateway, Message: msg}
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return ErrSessionExpired
	case http.StatusNotFound:
		return &ServiceError{StatusCode: http.StatusNotFound, Message: "Not found"}
	}
	if apiErr.StatusCode < 500 {
		text := apiErr.Code
		if text == "" {
			text = apiErr.Message
		}
		if text != "" {
			msg = msg + ": " + text
		}
		return &ServiceError{StatusCode: apiErr.StatusCode, Message: msg}
	}
	return &ServiceError{StatusCode: http.StatusBadGateway, Message: msg}
}

// PaymentsBackend is the slice of the backend payments API the services
// call. *clients.PaymentsAPI implements it.
type PaymentsBackend interface {
	List(ctx context.Context, dealID string) ([]models.Payment, error)
	Create(ctx context.Context, dealID string, payload *models.PaymentPayload, force bool) (*models.CreatePaymentResponse, error)
	Update(ctx context.Context, dealID, paymentID string, update *models.PaymentUpdate) error
	Delete(ctx context.Context, dealID, paymentID string) error
	UploadProof(ctx context.Context, dealID, paymentID string, file clients.File, docType string) error
	ListProofs(ctx context.Context, dealID, paymentID string) ([]models.Proof, error)
	DeleteProof(ctx context.Context, dealID, paymentID, proofID string) error
	Ledger(ctx context.Context, filter models.LedgerFilter) ([]models.Payment, error)
	LedgerCSV(ctx context.Context, filter models.LedgerFilter) (*clients.Blob, error)
	LedgerPDF(ctx context.Context, filter models.LedgerFilter) (*clients.Blob, error)
}

// DealsBackend is implemented by *clients.DealsAPI.
type DealsBackend interface {
	GetAll(ctx context.Context) ([]models.Deal, error)
	GetByID(ctx context.Context, id string) (*models.Deal, error)
	Create(ctx context.Context, in *models.DealInput) (*models.CreateDealResponse, error)
	Update(ctx context.Context, id string, in *models.DealInput) error
	Delete(ctx context.Context, id string) error
	AddExpense(ctx context.Context, dealID string, expense *models.Expense) error
	UploadDocument(ctx context.Context, dealID, documentType string, file clients.File) error
}

// LocationsBackend is implemented by *clients.LocationsAPI.
type LocationsBackend interface {
	States(ctx context.Context) ([]models.State, error)
	Districts(ctx context.Context, state string) ([]models.District, error)
}

// events publishes domain events to SNS. Publishing never fails the
// operation that caused it.
type events struct {
	sns      awspkg.SNSPublisher
	topicArn string
	logger   *zap.Logger
}

func (e events) publish(ctx context.Context, event interface{}) {
	if e.sns == nil || e.topicArn == "" {
		e.logger.Debug("SNS not configured, skipping event publish")
		return
	}
	b, err := json.Marshal(event)
	if err != nil {
		e.logger.Error("Failed to marshal SNS event", zap.Error(err))
		return
	}
	if err := e.sns.Publish(ctx, e.topicArn, b); err != nil {
		e.logger.Error("Failed to publish SNS event", zap.Error(err))
		return
	}
	e.logger.Info("Published SNS event", zap.String("topic", e.topicArn))
}

// count records a business metric when metrics are enabled.
func count(ctx context.Context, m awspkg.MetricsRecorder, name string, dims map[string]string) {
	if m == nil || !m.IsEnabled() {
		return
	}
	_ = m.RecordCount(ctx, name, dims)
}
