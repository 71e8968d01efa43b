package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	awspkg "github.com/Harshit-patil56/Land-deals-manager-sub000/pkg/aws"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/repository"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/uploads"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deal creation outcomes.
const (
	MsgDealCreated        = "Deal created successfully!"
	MsgDealPartialUploads = "Deal created, but some documents failed to upload."
)

// DealCreateResult reports a created deal and how its documents fared.
type DealCreateResult struct {
	DealID  models.ID       `json:"deal_id"`
	Message string          `json:"message"`
	Summary string          `json:"summary"`
	Report  *uploads.Report `json:"report"`
}

// ImportResult is a deal's participant pool allocated into party rows.
type ImportResult struct {
	Pool    []models.Participant `json:"pool"`
	Parties []models.Party       `json:"parties"`
	Labels  []string             `json:"labels"`
}

// DealService covers deal maintenance and the lookups the payment form
// depends on.
type DealService interface {
	List(ctx context.Context) ([]models.Deal, *ServiceError)
	Get(ctx context.Context, dealID string) (*models.Deal, *ServiceError)
	CreateWithDocuments(ctx context.Context, in *models.DealInput, docs uploads.DealDocuments) (*DealCreateResult, *ServiceError)
	Update(ctx context.Context, dealID string, in *models.DealInput) *ServiceError
	Delete(ctx context.Context, dealID string) *ServiceError
	AddExpense(ctx context.Context, dealID string, expense *models.Expense) *ServiceError
	Participants(ctx context.Context, dealID, strategy string) (*ImportResult, *ServiceError)
	// Targets lists who a party of the given identity may pay or receive
	// from, restricted to targetType.
	Targets(ctx context.Context, dealID string, self models.Participant, targetType models.PartyType) ([]models.Participant, *ServiceError)
}

type dealServiceImpl struct {
	backend  DealsBackend
	uploader *uploads.Sequential
	audit    repository.AuditRepository
	events   events
	metrics  awspkg.MetricsRecorder
	logger   *zap.Logger
}

// NewDealService creates a new DealService.
func NewDealService(
	backend DealsBackend,
	audit repository.AuditRepository,
	sns awspkg.SNSPublisher,
	topicArn string,
	metrics awspkg.MetricsRecorder,
	logger *zap.Logger,
) DealService {
	return &dealServiceImpl{
		backend:  backend,
		uploader: uploads.NewSequential(logger),
		audit:    audit,
		events:   events{sns: sns, topicArn: topicArn, logger: logger},
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *dealServiceImpl) CreateWithDocuments(ctx context.Context, in *models.DealInput, docs uploads.DealDocuments) (*DealCreateResult, *ServiceError) {
	if in.ProjectName == "" {
		return nil, &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Enter a project name"}
	}
	in.Documents = docs.GeneralNames()

	resp, err := s.backend.Create(ctx, in)
	if err != nil {
		s.logger.Error("Create deal failed", zap.Error(err))
		return nil, backendError(err, "Failed to create deal")
	}
	dealID := resp.Identifier()
	if dealID.IsZero() {
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: "Backend returned no deal id"}
	}

	items := uploads.PlanDealDocuments(docs)
	report := s.uploader.Run(ctx, items, func(ctx context.Context, item uploads.Item) error {
		return s.backend.UploadDocument(ctx, dealID.String(), item.Label, item.File)
	})

	msg := MsgDealCreated
	if !report.AllSucceeded() {
		msg = MsgDealPartialUploads
	}
	s.logger.Info("deal created",
		zap.String("deal_id", dealID.String()),
		zap.String("uploads", report.Summary()),
	)

	if len(report.Succeeded) > 0 {
		count(ctx, s.metrics, awspkg.MetricDocumentsUploaded, nil)
	}
	if len(report.Failed) > 0 {
		count(ctx, s.metrics, awspkg.MetricDocumentsFailed, nil)
	}
	s.recordUploads(ctx, dealID.String(), report)
	s.events.publish(ctx, models.DealCreatedEvent{
		EventType:      models.EventDealCreated,
		DealID:         dealID.String(),
		Uploaded:       len(report.Succeeded),
		FailedUploads:  len(report.Failed),
		AbandonedFiles: len(report.Abandoned),
		Timestamp:      time.Now(),
	})

	return &DealCreateResult{
		DealID:  dealID,
		Message: msg,
		Summary: report.Summary(),
		Report:  report,
	}, nil
}

func (s *dealServiceImpl) List(ctx context.Context) ([]models.Deal, *ServiceError) {
	deals, err := s.backend.GetAll(ctx)
	if err != nil {
		s.logger.Error("List deals failed", zap.Error(err))
		return nil, backendError(err, "Failed to load deals")
	}
	if deals == nil {
		deals = []models.Deal{}
	}
	return deals, nil
}

func (s *dealServiceImpl) Get(ctx context.Context, dealID string) (*models.Deal, *ServiceError) {
	deal, err := s.backend.GetByID(ctx, dealID)
	if err != nil {
		s.logger.Error("Load deal failed", zap.String("deal_id", dealID), zap.Error(err))
		return nil, backendError(err, "Failed to load deal")
	}
	return deal, nil
}

func (s *dealServiceImpl) Update(ctx context.Context, dealID string, in *models.DealInput) *ServiceError {
	if strings.TrimSpace(in.ProjectName) == "" {
		return &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Enter a project name"}
	}
	if err := s.backend.Update(ctx, dealID, in); err != nil {
		s.logger.Error("Update deal failed", zap.String("deal_id", dealID), zap.Error(err))
		return backendError(err, "Failed to update deal")
	}
	s.logger.Info("deal updated", zap.String("deal_id", dealID))
	return nil
}

func (s *dealServiceImpl) Delete(ctx context.Context, dealID string) *ServiceError {
	if err := s.backend.Delete(ctx, dealID); err != nil {
		s.logger.Error("Delete deal failed", zap.String("deal_id", dealID), zap.Error(err))
		return backendError(err, "Failed to delete deal")
	}
	s.logger.Info("deal deleted", zap.String("deal_id", dealID))
	s.events.publish(ctx, models.DealEvent{
		EventType: models.EventDealDeleted,
		DealID:    dealID,
		Timestamp: time.Now(),
	})
	return nil
}

// AddExpense records a cost against a deal. The type and a positive amount
// are required.
func (s *dealServiceImpl) AddExpense(ctx context.Context, dealID string, expense *models.Expense) *ServiceError {
	if strings.TrimSpace(expense.ExpenseType) == "" {
		return &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Select an expense type"}
	}
	if _, ok := payments.ParseAmount(expense.Amount); !ok {
		return &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Enter a valid amount"}
	}
	if err := s.backend.AddExpense(ctx, dealID, expense); err != nil {
		s.logger.Error("Add expense failed", zap.String("deal_id", dealID), zap.Error(err))
		return backendError(err, "Failed to add expense")
	}
	s.events.publish(ctx, models.DealEvent{
		EventType: models.EventExpenseAdded,
		DealID:    dealID,
		Amount:    expense.Amount,
		Timestamp: time.Now(),
	})
	return nil
}

func (s *dealServiceImpl) recordUploads(ctx context.Context, dealID string, report *uploads.Report) {
	if s.audit == nil {
		return
	}
	run := uuid.New()
	rows := make([]models.UploadAudit, 0, len(report.Succeeded)+len(report.Failed)+len(report.Abandoned))
	for _, it := range report.Succeeded {
		rows = append(rows, models.UploadAudit{RunID: run, DealID: dealID, Label: it.Label, FileName: it.File.Name, Status: "uploaded"})
	}
	for _, f := range report.Failed {
		rows = append(rows, models.UploadAudit{RunID: run, DealID: dealID, Label: f.Label, FileName: f.File, Status: "failed", Error: f.Err.Error()})
	}
	for _, it := range report.Abandoned {
		rows = append(rows, models.UploadAudit{RunID: run, DealID: dealID, Label: it.Label, FileName: it.File.Name, Status: "abandoned"})
	}
	// Audit writes must not hang on a cancelled request.
	if err := s.audit.RecordUploads(context.WithoutCancel(ctx), rows); err != nil {
		s.logger.Warn("failed to write upload audit", zap.Error(err))
	}
}

func (s *dealServiceImpl) pool(ctx context.Context, dealID string) ([]models.Participant, *ServiceError) {
	deal, err := s.backend.GetByID(ctx, dealID)
	if err != nil {
		s.logger.Error("Load deal failed", zap.String("deal_id", dealID), zap.Error(err))
		return nil, backendError(err, "Failed to load deal")
	}
	return payments.BuildParticipantPool(deal), nil
}

func (s *dealServiceImpl) Participants(ctx context.Context, dealID, strategy string) (*ImportResult, *ServiceError) {
	pool, serr := s.pool(ctx, dealID)
	if serr != nil {
		return nil, serr
	}

	parties, err := payments.ImportParticipants(pool, payments.StrategyByName(strategy))
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: err.Error()}
	}
	labels := make([]string, 0, len(parties))
	for _, p := range parties {
		labels = append(labels, payments.ParticipantLabel(p))
	}
	return &ImportResult{Pool: pool, Parties: parties, Labels: labels}, nil
}

func (s *dealServiceImpl) Targets(ctx context.Context, dealID string, self models.Participant, targetType models.PartyType) ([]models.Participant, *ServiceError) {
	if !targetType.Valid() {
		return nil, &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Please select a party type"}
	}
	pool, serr := s.pool(ctx, dealID)
	if serr != nil {
		return nil, serr
	}

	b := payments.NewPartyBuilder()
	if err := b.SetParty(0, self.Type, self.ID, self.Name); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: err.Error()}
	}
	options, err := b.TargetOptions(pool, 0, targetType)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: err.Error()}
	}
	return options, nil
}
