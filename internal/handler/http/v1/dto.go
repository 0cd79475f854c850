package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_reporter/internal/models"
)

// ExportOptionsRequest DTO профиля выгрузки
// @Description Флаги профиля выгрузки
type ExportOptionsRequest struct {
	SummaryOnly              bool `json:"summaryOnly"`
	IncludeSignatures        bool `json:"includeSignatures"`
	IncludePhotos            bool `json:"includePhotos"`
	IncludeRootCause         bool `json:"includeRootCause"`
	IncludeCorrectiveActions bool `json:"includeCorrectiveActions"`
	IncludeAttachments       bool `json:"includeAttachments"`
}

// GenerateReportRequest DTO для генерации отчета
// @Description DTO для генерации отчета
type GenerateReportRequest struct {
	Incident *models.IncidentRecord `json:"incident" validate:"required"`
	Options  ExportOptionsRequest   `json:"options"`
}

// ValidateQuery - необязательные флаги профиля в строке запроса. Если задан хотя бы
// один, запись проверяется для выгрузки.
type ValidateQuery struct {
	SummaryOnly              *bool `form:"summaryOnly"`
	IncludeSignatures        *bool `form:"includeSignatures"`
	IncludePhotos            *bool `form:"includePhotos"`
	IncludeRootCause         *bool `form:"includeRootCause"`
	IncludeCorrectiveActions *bool `form:"includeCorrectiveActions"`
	IncludeAttachments       *bool `form:"includeAttachments"`
}

// FindingResponse DTO находки валидации
// @Description Находка валидации
type FindingResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Section string `json:"section"`
}

// ValidationResponse DTO для ответа с результатом валидации
// @Description DTO для ответа с результатом валидации
type ValidationResponse struct {
	Valid    bool              `json:"valid"`
	Errors   []FindingResponse `json:"errors"`
	Warnings []FindingResponse `json:"warnings"`
}

// ValidationErrorResponse DTO отказа в генерации из-за ошибок валидации
// @Description DTO отказа в генерации из-за ошибок валидации
type ValidationErrorResponse struct {
	Error      string             `json:"error"`
	Validation ValidationResponse `json:"validation"`
}

// ExportRecordResponse DTO записи журнала выгрузок
// @Description DTO записи журнала выгрузок
type ExportRecordResponse struct {
	ID            uuid.UUID `json:"id"`
	IncidentID    uuid.UUID `json:"incident_id"`
	ReferenceCode string    `json:"reference_code"`
	Profile       string    `json:"profile"`
	Outcome       string    `json:"outcome"`
	Valid         bool      `json:"valid"`
	ErrorCount    int       `json:"error_count"`
	WarningCount  int       `json:"warning_count"`
	PageCount     int       `json:"page_count"`
	ByteSize      int64     `json:"byte_size"`
	Filename      string    `json:"filename,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
