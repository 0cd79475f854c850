package models

import (
	"time"

	"github.com/google/uuid"
)

// ExportOptions - профиль выгрузки: флаги, определяющие набор правил и секций
type ExportOptions struct {
	SummaryOnly              bool `json:"summaryOnly" yaml:"summaryOnly"`
	IncludeSignatures        bool `json:"includeSignatures" yaml:"includeSignatures"`
	IncludePhotos            bool `json:"includePhotos" yaml:"includePhotos"`
	IncludeRootCause         bool `json:"includeRootCause" yaml:"includeRootCause"`
	IncludeCorrectiveActions bool `json:"includeCorrectiveActions" yaml:"includeCorrectiveActions"`
	IncludeAttachments       bool `json:"includeAttachments" yaml:"includeAttachments"`
}

// ProfileName возвращает имя вида отчета для имени файла и аудита
func (o ExportOptions) ProfileName() string {
	if o.SummaryOnly {
		return "Summary"
	}
	return "Investigation"
}

// ExportRecord представляет запись аудита о попытке генерации отчета
type ExportRecord struct {
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
