package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	awspkg "github.com/Harshit-patil56/Land-deals-manager-sub000/pkg/aws"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/payments"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Export formats built from ledger rows.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ArchiveLinkExpiry is how long a presigned archive link stays valid.
const ArchiveLinkExpiry = 15 * time.Minute

// LedgerResult is one ledger query and its rows.
type LedgerResult struct {
	Filter  models.LedgerFilter  `json:"filter"`
	Rows    []PaymentView        `json:"rows"`
	Summary models.LedgerSummary `json:"summary"`
}

// ArchivedExport points at an export stored in S3.
type ArchivedExport struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LedgerService queries the cross-deal ledger and exports it. Every query
// goes to the backend; rows are never filtered locally.
type LedgerService interface {
	Run(ctx context.Context, filter models.LedgerFilter) (*LedgerResult, *ServiceError)
	// Export builds a file from the rows the filter returns. A nil export
	// with a nil error means there was nothing to export.
	Export(ctx context.Context, filter models.LedgerFilter, format string) (*payments.Export, *ServiceError)
	ServerCSV(ctx context.Context, filter models.LedgerFilter) (*clients.Blob, *ServiceError)
	ServerPDF(ctx context.Context, filter models.LedgerFilter) (*clients.Blob, *ServiceError)
	Archive(ctx context.Context, export *payments.Export) (*ArchivedExport, *ServiceError)
}

type ledgerServiceImpl struct {
	backend PaymentsBackend
	store   awspkg.ObjectStore
	metrics awspkg.MetricsRecorder
	logger  *zap.Logger
	now     func() time.Time
}

// NewLedgerService creates a new LedgerService. store may be nil, which
// disables Archive.
func NewLedgerService(backend PaymentsBackend, store awspkg.ObjectStore, metrics awspkg.MetricsRecorder, logger *zap.Logger) LedgerService {
	return &ledgerServiceImpl{
		backend: backend,
		store:   store,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// ValidateFilter checks facet formats and that the amount range is ordered.
func ValidateFilter(filter models.LedgerFilter) *ServiceError {
	if err := validate.Struct(filter); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ServiceError{
				StatusCode: http.StatusUnprocessableEntity,
				Message:    fmt.Sprintf("Invalid %s", filterField(verrs[0].Field())),
			}
		}
		return &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Invalid ledger filter"}
	}
	if filter.MinAmount != "" && filter.MaxAmount != "" {
		lo, _ := decimal.NewFromString(filter.MinAmount)
		hi, _ := decimal.NewFromString(filter.MaxAmount)
		if lo.GreaterThan(hi) {
			return &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Minimum amount cannot exceed maximum amount"}
		}
	}
	if filter.StartDate != "" && filter.EndDate != "" && filter.StartDate > filter.EndDate {
		return &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Start date cannot be after end date"}
	}
	return nil
}

// filterField turns a struct field name into its query name.
func filterField(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func (s *ledgerServiceImpl) query(ctx context.Context, filter models.LedgerFilter) ([]models.Payment, *ServiceError) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}
	rows, err := s.backend.Ledger(ctx, filter)
	if err != nil {
		s.logger.Error("Ledger query failed", zap.Error(err))
		return nil, backendError(err, "Failed to load ledger")
	}
	return rows, nil
}

func (s *ledgerServiceImpl) Run(ctx context.Context, filter models.LedgerFilter) (*LedgerResult, *ServiceError) {
	rows, serr := s.query(ctx, filter)
	if serr != nil {
		return nil, serr
	}
	return &LedgerResult{
		Filter:  filter,
		Rows:    paymentViews(rows),
		Summary: models.Summarize(rows),
	}, nil
}

func (s *ledgerServiceImpl) Export(ctx context.Context, filter models.LedgerFilter, format string) (*payments.Export, *ServiceError) {
	if format != FormatCSV && format != FormatXLSX {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf("Unsupported export format %q", format)}
	}
	rows, serr := s.query(ctx, filter)
	if serr != nil {
		return nil, serr
	}

	var (
		export *payments.Export
		ok     bool
		err    error
	)
	if format == FormatCSV {
		export, ok = payments.ExportLedgerCSV(rows, filter.DealID, s.now())
	} else {
		export, ok, err = payments.ExportLedgerXLSX(rows, filter.DealID, s.now())
	}
	if err != nil {
		s.logger.Error("Ledger export failed", zap.String("format", format), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to build export"}
	}
	if !ok {
		return nil, nil
	}
	count(ctx, s.metrics, awspkg.MetricLedgerExports, map[string]string{"Format": format})
	return export, nil
}

func (s *ledgerServiceImpl) ServerCSV(ctx context.Context, filter models.LedgerFilter) (*clients.Blob, *ServiceError) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}
	blob, err := s.backend.LedgerCSV(ctx, filter)
	if err != nil {
		s.logger.Error("Server CSV export failed", zap.Error(err))
		return nil, backendError(err, "Failed to download ledger CSV")
	}
	return blob, nil
}

func (s *ledgerServiceImpl) ServerPDF(ctx context.Context, filter models.LedgerFilter) (*clients.Blob, *ServiceError) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}
	blob, err := s.backend.LedgerPDF(ctx, filter)
	if err != nil {
		s.logger.Error("Server PDF export failed", zap.Error(err))
		return nil, backendError(err, "Failed to download ledger PDF")
	}
	return blob, nil
}

func (s *ledgerServiceImpl) Archive(ctx context.Context, export *payments.Export) (*ArchivedExport, *ServiceError) {
	if s.store == nil {
		return nil, &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Export archive is not configured"}
	}
	key := fmt.Sprintf("ledgers/%s/%s", s.now().UTC().Format("2006/01/02"), export.Filename)
	if err := s.store.Put(ctx, key, export.ContentType, export.Data); err != nil {
		s.logger.Error("Archive upload failed", zap.String("key", key), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: "Failed to archive export"}
	}
	url, err := s.store.PresignGet(ctx, key, ArchiveLinkExpiry)
	if err != nil {
		s.logger.Error("Presign failed", zap.String("key", key), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: "Failed to create download link"}
	}
	s.logger.Info("ledger export archived", zap.String("key", key))
	return &ArchivedExport{Key: key, URL: url, ExpiresAt: s.now().Add(ArchiveLinkExpiry)}, nil
}
