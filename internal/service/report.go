package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/incident_reporter/internal/config"
	reporterrors "github.com/shenikar/incident_reporter/internal/errors"
	"github.com/shenikar/incident_reporter/internal/mapper"
	"github.com/shenikar/incident_reporter/internal/metrics"
	"github.com/shenikar/incident_reporter/internal/models"
	"github.com/shenikar/incident_reporter/internal/render"
	"github.com/shenikar/incident_reporter/internal/validation"
	"github.com/shenikar/incident_reporter/internal/webhook"
	"github.com/sirupsen/logrus"
)

// ErrAuditDisabled - журнал выгрузок не настроен (DATABASE_URL пуст)
var ErrAuditDisabled = errors.New("service: export audit is not configured")

const CreatorName = "incident_reporter"

// ExportRepository определяет контракт журнала выгрузок
type ExportRepository interface {
	Save(ctx context.Context, record *models.ExportRecord) error
	ListByIncident(ctx context.Context, incidentID uuid.UUID, page, pageSize int) ([]*models.ExportRecord, error)
}

// ReportService определяет контракт валидации и генерации отчетов
type ReportService interface {
	Validate(ctx context.Context, record *models.IncidentRecord) models.ValidationResult
	ValidateForExport(ctx context.Context, record *models.IncidentRecord, opts models.ExportOptions) models.ValidationResult
	Generate(ctx context.Context, record *models.IncidentRecord, opts models.ExportOptions, sink render.Sink) (*GeneratedReport, error)
	ListExports(ctx context.Context, incidentID uuid.UUID, page, pageSize int) ([]*models.ExportRecord, error)
}

// GeneratedReport - итог генерации. Validation заполнен и при отказе валидации.
type GeneratedReport struct {
	Filename   string
	Validation models.ValidationResult
	Render     *render.Result
}

type reportService struct {
	engine    *validation.Engine
	mapper    *mapper.Mapper
	repo      ExportRepository
	publisher webhook.WebhookPublisher
	metrics   metrics.Recorder
	clock     clockwork.Clock
	logger    *logrus.Logger
	cfg       *config.Config
}

// NewReportService создает сервис. repo и publisher могут быть nil: тогда аудит
// и события отключены.
func NewReportService(repo ExportRepository, logger *logrus.Logger, cfg *config.Config, publisher webhook.WebhookPublisher, recorder metrics.Recorder, clock clockwork.Clock) ReportService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &reportService{
		engine:    validation.NewEngine(clock),
		mapper:    mapper.New(clock),
		repo:      repo,
		publisher: publisher,
		metrics:   recorder,
		clock:     clock,
		logger:    logger,
		cfg:       cfg,
	}
}

// Validate проверяет запись базовыми и категорийными правилами
func (s *reportService) Validate(ctx context.Context, record *models.IncidentRecord) models.ValidationResult {
	result := s.engine.Validate(record)
	s.logValidation("Validate", record, "", result)
	s.metrics.ObserveValidation("base", result.Valid, len(result.Errors), len(result.Warnings))
	return result
}

// ValidateForExport проверяет запись для профиля выгрузки
func (s *reportService) ValidateForExport(ctx context.Context, record *models.IncidentRecord, opts models.ExportOptions) models.ValidationResult {
	result := s.engine.ValidateForExport(record, opts)
	s.logValidation("ValidateForExport", record, opts.ProfileName(), result)
	s.metrics.ObserveValidation(opts.ProfileName(), result.Valid, len(result.Errors), len(result.Warnings))
	return result
}

func (s *reportService) logValidation(method string, record *models.IncidentRecord, profile string, result models.ValidationResult) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "report",
		"method":   method,
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
	})
	if record != nil {
		log = log.WithField("reference_code", record.ReferenceCode)
	}
	if profile != "" {
		log = log.WithField("profile", profile)
	}
	if !result.Valid {
		log.Warn("Incident record failed validation")
		return
	}
	log.Info("Incident record validated")
}

// Generate валидирует запись для профиля, строит документ и пишет PDF в sink.
// Невалидная запись не рендерится: возвращается ошибка категории validation.
// Ошибки аудита и публикации события логируются и не влияют на результат.
func (s *reportService) Generate(ctx context.Context, record *models.IncidentRecord, opts models.ExportOptions, sink render.Sink) (*GeneratedReport, error) {
	if record == nil {
		record = &models.IncidentRecord{}
	}
	now := s.clock.Now()
	profile := opts.ProfileName()
	log := s.logger.WithFields(logrus.Fields{
		"service":        "report",
		"method":         "Generate",
		"reference_code": record.ReferenceCode,
		"profile":        profile,
	})
	log.Info("Attempting to generate report")

	report := &GeneratedReport{
		Filename:   ReportFilename(opts, record.ReferenceCode, now),
		Validation: s.ValidateForExport(ctx, record, opts),
	}
	audit := &models.ExportRecord{
		ID:            uuid.New(),
		IncidentID:    record.ID,
		ReferenceCode: record.ReferenceCode,
		Profile:       profile,
		Valid:         report.Validation.Valid,
		ErrorCount:    len(report.Validation.Errors),
		WarningCount:  len(report.Validation.Warnings),
		Filename:      report.Filename,
		CreatedAt:     now,
	}

	if !report.Validation.Valid {
		discardSink(sink)
		audit.Outcome = string(metrics.OutcomeRejected)
		s.metrics.ObserveRender(metrics.OutcomeRejected, 0, 0)
		s.saveAudit(ctx, log, audit)
		return report, reporterrors.ValidationFailed(len(report.Validation.Errors))
	}

	doc := s.mapper.Map(record, opts)
	started := time.Now()
	result, err := render.Render(ctx, doc, sink, render.Metadata{
		Author:    s.cfg.ReportOrganisation,
		Creator:   CreatorName,
		CreatedAt: now,
	})
	elapsed := time.Since(started)
	if err != nil {
		log.WithError(err).WithField("category", reporterrors.GetCategory(err)).Error("Failed to render report")
		audit.Outcome = string(metrics.OutcomeFailed)
		s.metrics.ObserveRender(metrics.OutcomeFailed, elapsed, 0)
		s.saveAudit(ctx, log, audit)
		return report, fmt.Errorf("service: could not render report: %w", err)
	}

	report.Render = result
	audit.Outcome = string(metrics.OutcomeSuccess)
	audit.PageCount = result.PageCount
	audit.ByteSize = result.Bytes
	s.metrics.ObserveRender(metrics.OutcomeSuccess, elapsed, result.PageCount)
	s.saveAudit(ctx, log, audit)
	s.publish(ctx, log, record, profile, report, now)

	if result.UnsupportedCharacters > 0 {
		log.WithField("unsupported_characters", result.UnsupportedCharacters).
			Warn("Report font has no glyphs for some characters, they were replaced")
	}
	log.WithFields(logrus.Fields{
		"filename":                 report.Filename,
		"pages":                    result.PageCount,
		"bytes":                    result.Bytes,
		"signature_images_omitted": result.SignatureImagesOmitted,
		"attachments_not_embedded": result.AttachmentsNotEmbedded,
	}).Info("Report generated successfully")
	return report, nil
}

func (s *reportService) saveAudit(ctx context.Context, log *logrus.Entry, audit *models.ExportRecord) {
	if s.repo == nil {
		return
	}
	if audit.IncidentID == uuid.Nil {
		log.Debug("Incident record has no id, export not audited")
		return
	}
	// журнал не должен ронять генерацию
	if err := s.repo.Save(ctx, audit); err != nil {
		log.WithError(err).Warn("Failed to save export audit record")
	}
}

func (s *reportService) publish(ctx context.Context, log *logrus.Entry, record *models.IncidentRecord, profile string, report *GeneratedReport, now time.Time) {
	if s.publisher == nil {
		return
	}
	event := webhook.ReportGeneratedEvent{
		EventID:       uuid.New(),
		Type:          webhook.EventReportGenerated,
		IncidentID:    record.ID,
		ReferenceCode: record.ReferenceCode,
		Category:      string(record.Category),
		Profile:       profile,
		Filename:      report.Filename,
		PageCount:     report.Render.PageCount,
		ByteSize:      report.Render.Bytes,
		WarningCount:  len(report.Validation.Warnings),
		GeneratedAt:   now.UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish report generated event")
	}
}

// ListExports возвращает журнал выгрузок инцидента с пагинацией
func (s *reportService) ListExports(ctx context.Context, incidentID uuid.UUID, page, pageSize int) ([]*models.ExportRecord, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":     "report",
		"method":      "ListExports",
		"incident_id": incidentID,
		"page":        page,
		"page_size":   pageSize,
	})

	if s.repo == nil {
		log.Warn("Export audit requested but not configured")
		return nil, ErrAuditDisabled
	}

	log.Info("Listing exports")
	records, err := s.repo.ListByIncident(ctx, incidentID, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list exports from repository")
		return nil, fmt.Errorf("service: could not list exports: %w", err)
	}

	log.WithField("count", len(records)).Info("Exports listed successfully")
	return records, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9-]+`)

// ReportFilename - {Summary|Investigation}_{reference}_{YYYY-MM-DD}.pdf
func ReportFilename(opts models.ExportOptions, referenceCode string, exportedAt time.Time) string {
	ref := strings.Trim(unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(referenceCode), "-"), "-")
	if ref == "" {
		ref = "incident"
	}
	return fmt.Sprintf("%s_%s_%s.pdf", opts.ProfileName(), ref, exportedAt.UTC().Format("2006-01-02"))
}

func discardSink(sink render.Sink) {
	if sink == nil {
		return
	}
	if a, ok := sink.(interface{ Abort() error }); ok {
		_ = a.Abort()
		return
	}
	_ = sink.Close()
}
