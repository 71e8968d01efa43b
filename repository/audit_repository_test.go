package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestRecordSubmission_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAuditRepository(gormDB)

	audit := &models.SubmissionAudit{
		DealID:     "7",
		PaymentID:  "11",
		Amount:     "1500.5",
		PartyCount: 2,
		Outcome:    models.OutcomeCreated,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "submission_audits"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := repo.RecordSubmission(context.Background(), audit)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSubmission_DBError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAuditRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "submission_audits"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.RecordSubmission(context.Background(), &models.SubmissionAudit{DealID: "7", Amount: "1", Outcome: models.OutcomeFailed})
	assert.Error(t, err)
}

func TestRecordUploads_BatchInsert(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAuditRepository(gormDB)

	run := uuid.New()
	uploads := []models.UploadAudit{
		{RunID: run, DealID: "7", Label: "general", FileName: "a.pdf", Status: "uploaded"},
		{RunID: run, DealID: "7", Label: "owner_1_aadhar", FileName: "b.pdf", Status: "failed", Error: "413"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "upload_audits"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := repo.RecordUploads(context.Background(), uploads)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordUploads_EmptyIsNoop(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAuditRepository(gormDB)

	assert.NoError(t, repo.RecordUploads(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSubmissions_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAuditRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "deal_id", "payment_id", "amount", "party_count", "forced", "outcome", "created_at"}).
		AddRow(uuid.New(), "7", "11", "1500.5", 2, false, models.OutcomeCreated, now).
		AddRow(uuid.New(), "7", "", "900", 1, true, models.OutcomeRejected, now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "submission_audits" WHERE deal_id = $1 ORDER BY created_at DESC`)).
		WillReturnRows(rows)

	got, err := repo.ListSubmissions(context.Background(), "7", 0)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, models.OutcomeRejected, got[1].Outcome)
	assert.True(t, got[1].Forced)
}
