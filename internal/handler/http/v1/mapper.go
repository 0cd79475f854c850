package v1

import "github.com/shenikar/incident_reporter/internal/models"

// DTOToExportOptions преобразует DTO профиля в доменную модель
func DTOToExportOptions(dto ExportOptionsRequest) models.ExportOptions {
	return models.ExportOptions{
		SummaryOnly:              dto.SummaryOnly,
		IncludeSignatures:        dto.IncludeSignatures,
		IncludePhotos:            dto.IncludePhotos,
		IncludeRootCause:         dto.IncludeRootCause,
		IncludeCorrectiveActions: dto.IncludeCorrectiveActions,
		IncludeAttachments:       dto.IncludeAttachments,
	}
}

// QueryToExportOptions возвращает профиль и признак того, что хотя бы один флаг задан
func QueryToExportOptions(q ValidateQuery) (models.ExportOptions, bool) {
	var opts models.ExportOptions
	set := false
	flag := func(src *bool, dst *bool) {
		if src != nil {
			*dst = *src
			set = true
		}
	}
	flag(q.SummaryOnly, &opts.SummaryOnly)
	flag(q.IncludeSignatures, &opts.IncludeSignatures)
	flag(q.IncludePhotos, &opts.IncludePhotos)
	flag(q.IncludeRootCause, &opts.IncludeRootCause)
	flag(q.IncludeCorrectiveActions, &opts.IncludeCorrectiveActions)
	flag(q.IncludeAttachments, &opts.IncludeAttachments)
	return opts, set
}

func findingsToResponse(list []models.Finding) []FindingResponse {
	out := make([]FindingResponse, len(list))
	for i, f := range list {
		out[i] = FindingResponse{Field: f.Field, Message: f.Message, Section: f.Section}
	}
	return out
}

// ModelToValidationResponse преобразует результат валидации в DTO; списки всегда не nil
func ModelToValidationResponse(result models.ValidationResult) ValidationResponse {
	return ValidationResponse{
		Valid:    result.Valid,
		Errors:   findingsToResponse(result.Errors),
		Warnings: findingsToResponse(result.Warnings),
	}
}

// ModelToExportRecordResponse преобразует запись журнала в DTO для ответа
func ModelToExportRecordResponse(model *models.ExportRecord) *ExportRecordResponse {
	return &ExportRecordResponse{
		ID:            model.ID,
		IncidentID:    model.IncidentID,
		ReferenceCode: model.ReferenceCode,
		Profile:       model.Profile,
		Outcome:       model.Outcome,
		Valid:         model.Valid,
		ErrorCount:    model.ErrorCount,
		WarningCount:  model.WarningCount,
		PageCount:     model.PageCount,
		ByteSize:      model.ByteSize,
		Filename:      model.Filename,
		CreatedAt:     model.CreatedAt,
	}
}

// ModelsToExportRecordResponses преобразует слайс моделей в слайс DTO
func ModelsToExportRecordResponses(models []*models.ExportRecord) []*ExportRecordResponse {
	responses := make([]*ExportRecordResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToExportRecordResponse(model)
	}
	return responses
}
