package repository

import (
	"context"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"gorm.io/gorm"
)

// AuditRepository records what the BFF submitted to the backend. The
// backend stays the owner of payments; this is an operational trail only.
type AuditRepository interface {
	RecordSubmission(ctx context.Context, audit *models.SubmissionAudit) error
	RecordUploads(ctx context.Context, uploads []models.UploadAudit) error
	ListSubmissions(ctx context.Context, dealID string, limit int) ([]models.SubmissionAudit, error)
}

// GormAuditRepository implements AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository.
func NewGormAuditRepository(db *gorm.DB) AuditRepository {
	return &GormAuditRepository{db: db}
}

// Migrate creates the audit tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.SubmissionAudit{}, &models.UploadAudit{})
}

func (r *GormAuditRepository) RecordSubmission(ctx context.Context, audit *models.SubmissionAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *GormAuditRepository) RecordUploads(ctx context.Context, uploads []models.UploadAudit) error {
	if len(uploads) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&uploads).Error
}

func (r *GormAuditRepository) ListSubmissions(ctx context.Context, dealID string, limit int) ([]models.SubmissionAudit, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []models.SubmissionAudit
	if err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
