package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/incident_reporter/internal/config"
	reporterrors "github.com/shenikar/incident_reporter/internal/errors"
	"github.com/shenikar/incident_reporter/internal/models"
	"github.com/shenikar/incident_reporter/internal/render"
	"github.com/shenikar/incident_reporter/internal/service"
	"github.com/shenikar/incident_reporter/internal/service/mocks"
	"github.com/shenikar/incident_reporter/internal/webhook"
	webhook_mocks "github.com/shenikar/incident_reporter/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

// newTestReportService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestReportService(t *testing.T) (service.ReportService, *mocks.MockExportRepository, *webhook_mocks.MockWebhookPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockExportRepository(ctrl)
	webhookMock := webhook_mocks.NewMockWebhookPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{ReportOrganisation: "Acme Facilities Ltd"}

	svc := service.NewReportService(repoMock, logger, cfg, webhookMock, nil, clockwork.NewFakeClockAt(now))
	return svc, repoMock, webhookMock
}

func boolPtr(b bool) *bool { return &b }

func injuryRecord() *models.IncidentRecord {
	return &models.IncidentRecord{
		ID:             uuid.New(),
		ReferenceCode:  "INC-2026-0042",
		Category:       models.CategoryPersonalInjury,
		DateOfIncident: "2026-10-19",
		TimeOfIncident: "14:30",
		Location:       models.Location{ManualAddress: "Unit 4, Riverside Trading Estate, Leeds"},
		ReportedBy:     models.Person{Name: "Alex Morgan", Email: "alex@example.com", Phone: "+44 113 496 0000"},
		IncidentDescription: models.IncidentDescription{
			WhatHappened: "Operative slipped on a wet floor near the loading bay.",
		},
		PersonInvolved: &models.PersonInvolved{FullName: "Jamie Patel"},
		InjuryDetails: &models.InjuryDetails{
			NatureOfInjury:    "Sprained wrist",
			Severity:          models.SeverityMinor,
			BodyPartsAffected: []string{"Right wrist"},
			PPEUsed:           &models.PPEUsage{Worn: true},
		},
		Attachments: []models.Attachment{{URI: "file:///photos/1.jpg", Type: models.AttachmentTypePhoto}},
	}
}

func investigationRecord() *models.IncidentRecord {
	r := injuryRecord()
	r.RootCauseAnalysis = &models.RootCauseAnalysis{
		DirectCause:      "Wet floor",
		UnderlyingCause:  "Leaking roof not reported",
		ControlsAdequate: boolPtr(false),
	}
	r.CorrectiveActions = []models.CorrectiveAction{{
		Description:       "Repair roof",
		ResponsiblePerson: "Facilities manager",
		DueDate:           "2026-11-01",
		Status:            models.ActionStatusOpen,
	}}
	r.Signatures = &models.SignatureSet{
		Reporter:     &models.Signature{Name: "Alex Morgan", SignedAt: now, ImageRef: "sig://reporter"},
		Investigator: &models.Signature{Name: "Dana Lee", Role: "H&S Lead", SignedAt: now},
	}
	return r
}

var fullInvestigation = models.ExportOptions{
	IncludeSignatures:        true,
	IncludePhotos:            true,
	IncludeRootCause:         true,
	IncludeCorrectiveActions: true,
	IncludeAttachments:       true,
}

func TestGenerate_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, webhookMock := newTestReportService(t)
	ctx := context.Background()
	record := investigationRecord()
	sink := render.NewMemorySink()

	// Ожидания
	repoMock.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec *models.ExportRecord) error {
			assert.Equal(t, record.ID, rec.IncidentID)
			assert.Equal(t, "Investigation", rec.Profile)
			assert.Equal(t, "success", rec.Outcome)
			assert.True(t, rec.Valid)
			assert.Equal(t, int64(sink.Len()), rec.ByteSize)
			assert.Positive(t, rec.PageCount)
			return nil
		}).Times(1)

	webhookMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, event webhook.ReportGeneratedEvent) error {
			assert.Equal(t, webhook.EventReportGenerated, event.Type)
			assert.Equal(t, "INC-2026-0042", event.ReferenceCode)
			assert.Equal(t, "Investigation_INC-2026-0042_2026-10-19.pdf", event.Filename)
			assert.Equal(t, now, event.GeneratedAt)
			return nil
		}).Times(1)

	// Действие
	report, err := svc.Generate(ctx, record, fullInvestigation, sink)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "Investigation_INC-2026-0042_2026-10-19.pdf", report.Filename)
	assert.True(t, report.Validation.Valid)
	require.NotNil(t, report.Render)
	assert.Equal(t, 1, report.Render.SignatureImagesOmitted)
	assert.Equal(t, 1, report.Render.AttachmentsNotEmbedded)
	assert.True(t, bytes.HasPrefix(sink.Bytes(), []byte("%PDF")))
}

func TestGenerate_ValidationFailureDoesNotRender(t *testing.T) {
	// Подготовка
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	record := injuryRecord()
	sink := render.NewMemorySink()

	// Ожидания: попытка попадает в журнал, события нет
	repoMock.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec *models.ExportRecord) error {
			assert.Equal(t, "rejected", rec.Outcome)
			assert.False(t, rec.Valid)
			assert.Positive(t, rec.ErrorCount)
			return nil
		}).Times(1)

	// Действие: полный профиль расследования без анализа причин и действий
	report, err := svc.Generate(ctx, record, fullInvestigation, sink)

	// Проверки
	require.Error(t, err)
	assert.True(t, reporterrors.IsCategory(err, reporterrors.CategoryValidation))
	require.NotNil(t, report)
	assert.False(t, report.Validation.Valid)
	assert.Nil(t, report.Render)
	assert.Zero(t, sink.Len())
}

func TestGenerate_SummaryProfile(t *testing.T) {
	svc, repoMock, webhookMock := newTestReportService(t)
	ctx := context.Background()

	repoMock.EXPECT().Save(ctx, gomock.Any()).Return(nil).Times(1)
	webhookMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	report, err := svc.Generate(ctx, injuryRecord(), models.ExportOptions{SummaryOnly: true}, render.NewMemorySink())

	require.NoError(t, err)
	assert.Equal(t, "Summary_INC-2026-0042_2026-10-19.pdf", report.Filename)
}

func TestGenerate_SideEffectFailuresAreSwallowed(t *testing.T) {
	svc, repoMock, webhookMock := newTestReportService(t)
	ctx := context.Background()

	repoMock.EXPECT().Save(ctx, gomock.Any()).Return(fmt.Errorf("connection refused")).Times(1)
	webhookMock.EXPECT().Publish(ctx, gomock.Any()).Return(fmt.Errorf("redis down")).Times(1)

	report, err := svc.Generate(ctx, investigationRecord(), fullInvestigation, render.NewMemorySink())

	require.NoError(t, err)
	assert.NotNil(t, report.Render)
}

type brokenSink struct{}

func (brokenSink) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (brokenSink) Close() error              { return nil }

func TestGenerate_SinkFailureIsIOFailure(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec *models.ExportRecord) error {
			assert.Equal(t, "failed", rec.Outcome)
			return nil
		}).Times(1)

	_, err := svc.Generate(ctx, investigationRecord(), fullInvestigation, brokenSink{})

	require.Error(t, err)
	assert.ErrorContains(t, err, "could not render report")
	assert.True(t, reporterrors.IsCategory(err, reporterrors.CategoryIO))
}

func TestGenerate_WithoutAuditOrPublisher(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	svc := service.NewReportService(nil, logger, &config.Config{}, nil, nil, clockwork.NewFakeClockAt(now))

	report, err := svc.Generate(context.Background(), investigationRecord(), fullInvestigation, render.NewMemorySink())

	require.NoError(t, err)
	assert.NotNil(t, report.Render)

	_, err = svc.ListExports(context.Background(), uuid.New(), 1, 20)
	assert.ErrorIs(t, err, service.ErrAuditDisabled)
}

func TestGenerate_WarnsAboutUnsupportedCharacters(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	svc := service.NewReportService(nil, logger, &config.Config{}, nil, nil, clockwork.NewFakeClockAt(now))
	record := injuryRecord()
	record.PersonInvolved.FullName = "李雷"

	report, err := svc.Generate(context.Background(), record, models.ExportOptions{SummaryOnly: true}, render.NewMemorySink())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Render.UnsupportedCharacters)
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["unsupported_characters"] == 2 {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestValidateForExport_EmptyCorrectiveActions(t *testing.T) {
	svc, _, _ := newTestReportService(t)
	record := investigationRecord()
	record.CorrectiveActions = nil

	result := svc.ValidateForExport(context.Background(), record, fullInvestigation)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "correctiveActions", result.Errors[0].Field)
}

func TestValidate_Success(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	result := svc.Validate(context.Background(), injuryRecord())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestListExports_NormalisesPagination(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expected := []*models.ExportRecord{{ID: uuid.New(), IncidentID: incidentID}}

	repoMock.EXPECT().ListByIncident(ctx, incidentID, 1, 20).Return(expected, nil).Times(1)

	records, err := svc.ListExports(ctx, incidentID, 0, 500)

	require.NoError(t, err)
	assert.Equal(t, expected, records)
}

func TestListExports_RepositoryError(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	repoMock.EXPECT().ListByIncident(ctx, incidentID, 2, 10).Return(nil, fmt.Errorf("timeout")).Times(1)

	records, err := svc.ListExports(ctx, incidentID, 2, 10)

	require.Error(t, err)
	assert.Nil(t, records)
	assert.ErrorContains(t, err, "could not list exports")
}

func TestReportFilename(t *testing.T) {
	tests := []struct {
		name string
		opts models.ExportOptions
		ref  string
		want string
	}{
		{"investigation", models.ExportOptions{}, "INC-1", "Investigation_INC-1_2026-10-19.pdf"},
		{"summary", models.ExportOptions{SummaryOnly: true}, "INC-1", "Summary_INC-1_2026-10-19.pdf"},
		{"unsafe characters", models.ExportOptions{}, " INC/2026 #7 ", "Investigation_INC-2026-7_2026-10-19.pdf"},
		{"empty reference", models.ExportOptions{}, "", "Investigation_incident_2026-10-19.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.ReportFilename(tt.opts, tt.ref, now))
		})
	}
}
