// Package validation проверяет полноту записи об инциденте для профиля выгрузки.
// Движок никогда не возвращает ошибок: любое отсутствие данных оформляется находкой.
// Результат детерминирован и зависит только от записи, профиля и текущего времени из clock.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/incident_reporter/internal/category"
	"github.com/shenikar/incident_reporter/internal/docmodel"
	"github.com/shenikar/incident_reporter/internal/findings"
	"github.com/shenikar/incident_reporter/internal/models"
)

// MinDescriptionLength - минимальная длина описания "что произошло" в символах
const MinDescriptionLength = 20

var (
	timePattern  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{6,19}$`)
)

// Engine - движок правил. Без изменяемого состояния, безопасен для конкурентного использования.
type Engine struct {
	clock clockwork.Clock
}

// NewEngine создает движок; clock задает "сейчас" для проверки даты инцидента
func NewEngine(clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{clock: clock}
}

// Validate проверяет базовые и категорийные правила без учета профиля выгрузки
func (e *Engine) Validate(r *models.IncidentRecord) models.ValidationResult {
	r = orEmpty(r)
	c := findings.NewCollector()
	e.baseRules(r, c)
	categoryRules(r, c)
	warnings(r, c)
	return c.Result()
}

// ValidateForExport дополнительно применяет правила профиля выгрузки
func (e *Engine) ValidateForExport(r *models.IncidentRecord, opts models.ExportOptions) models.ValidationResult {
	r = orEmpty(r)
	c := findings.NewCollector()
	e.baseRules(r, c)
	categoryRules(r, c)
	if !opts.SummaryOnly {
		exportRules(r, c)
	}
	flagRules(r, opts, c)
	warnings(r, c)
	return c.Result()
}

func orEmpty(r *models.IncidentRecord) *models.IncidentRecord {
	if r == nil {
		return &models.IncidentRecord{}
	}
	return r
}

func (e *Engine) baseRules(r *models.IncidentRecord, c *findings.Collector) {
	if strings.TrimSpace(string(r.Category)) == "" {
		c.Error("category", "Incident category is required", findings.SectionDetails)
	}

	e.checkDate(r.DateOfIncident, c)

	switch {
	case strings.TrimSpace(r.TimeOfIncident) == "":
		c.Error("timeOfIncident", "Time of incident is required", findings.SectionDetails)
	case !timePattern.MatchString(strings.TrimSpace(r.TimeOfIncident)):
		c.Error("timeOfIncident", "Time of incident must be in 24-hour HH:mm format", findings.SectionDetails)
	}

	if r.Location.Coordinates == nil && strings.TrimSpace(r.Location.ManualAddress) == "" {
		c.Error("location", "Either GPS coordinates or a manual address is required", findings.SectionLocation)
	}

	whatHappened := strings.TrimSpace(r.IncidentDescription.WhatHappened)
	field := findings.Field("incidentDescription", "whatHappened")
	switch {
	case whatHappened == "":
		c.Error(field, "Description of what happened is required", findings.SectionDescription)
	case utf8.RuneCountInString(whatHappened) < MinDescriptionLength:
		c.Error(field, "Description of what happened must be at least 20 characters", findings.SectionDescription)
	}

	c.Require(r.ReportedBy.Name, findings.Field("reportedBy", "name"),
		"Name of the person reporting is required", findings.SectionReporter)
}

func (e *Engine) checkDate(value string, c *findings.Collector) {
	if strings.TrimSpace(value) == "" {
		c.Error("dateOfIncident", "Date of incident is required", findings.SectionDetails)
		return
	}
	date, ok := docmodel.ParseDate(value)
	if !ok {
		c.Error("dateOfIncident", "Date of incident must be a valid date", findings.SectionDetails)
		return
	}
	now := e.clock.Now()
	future := date.After(now)
	if len(strings.TrimSpace(value)) == len("2006-01-02") {
		// дата без времени сравнивается с сегодняшней датой, а не с моментом
		y, m, d := now.Date()
		future = date.After(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	}
	if future {
		c.Error("dateOfIncident", "Date of incident cannot be in the future", findings.SectionDetails)
	}
}

// categoryRules выбирает правила через реестр; категории вне набора правил не добавляют
func categoryRules(r *models.IncidentRecord, c *findings.Collector) {
	h, ok := category.Lookup(r.Category)
	if !ok {
		return
	}
	h.Validate(r, c)
}

func exportRules(r *models.IncidentRecord, c *findings.Collector) {
	rca := r.RootCauseAnalysis
	if rca == nil {
		rca = &models.RootCauseAnalysis{}
	}
	c.Require(rca.DirectCause, findings.Field("rootCauseAnalysis", "directCause"),
		"Direct cause is required for an investigation report", findings.SectionRootCause)
	c.Require(rca.UnderlyingCause, findings.Field("rootCauseAnalysis", "underlyingCause"),
		"Underlying root cause is required for an investigation report", findings.SectionRootCause)
	if rca.ControlsAdequate == nil {
		c.Error(findings.Field("rootCauseAnalysis", "controlsAdequate"),
			"Please assess whether existing controls were adequate", findings.SectionRootCause)
	}

	if len(r.CorrectiveActions) == 0 {
		c.Error("correctiveActions", "At least one corrective action is required for an investigation report",
			findings.SectionCorrectiveActions)
		return
	}
	for i, a := range r.CorrectiveActions {
		base := findings.Index("correctiveActions", i)
		c.Require(a.Description, findings.Field(base, "description"),
			"Corrective action description is required", findings.SectionCorrectiveActions)
		c.Require(a.ResponsiblePerson, findings.Field(base, "responsiblePerson"),
			"Responsible person is required", findings.SectionCorrectiveActions)
	}
}

func flagRules(r *models.IncidentRecord, opts models.ExportOptions, c *findings.Collector) {
	if opts.IncludeSignatures {
		sigs := r.Signatures
		if sigs == nil {
			sigs = &models.SignatureSet{}
		}
		if !signed(sigs.Reporter) {
			c.Error(findings.Field("signatures", "reporter"),
				"Reporter signature is required", findings.SectionSignatures)
		}
		if !opts.SummaryOnly && !signed(sigs.Investigator) {
			c.Error(findings.Field("signatures", "investigator"),
				"Investigator signature is required for an investigation report", findings.SectionSignatures)
		}
	}
	if opts.IncludePhotos && !hasPhoto(r.Attachments) {
		c.Error("attachments", "At least one photo is required when photos are included", findings.SectionAttachments)
	}
}

func signed(s *models.Signature) bool {
	return s != nil && strings.TrimSpace(s.Name) != ""
}

func hasPhoto(attachments []models.Attachment) bool {
	for _, a := range attachments {
		if a.Type == models.AttachmentTypePhoto {
			return true
		}
	}
	return false
}

// warnings - рекомендательные находки, на валидность не влияют
func warnings(r *models.IncidentRecord, c *findings.Collector) {
	checkContact(r.ReportedBy.Email, r.ReportedBy.Phone, "reportedBy", findings.SectionReporter, c)

	for i, w := range r.Witnesses {
		base := findings.Index("witnesses", i)
		checkContact(w.Email, w.Phone, base, findings.SectionWitnesses, c)
		if strings.TrimSpace(w.Statement) == "" {
			c.Warning(findings.Field(base, "statement"),
				"Witness statement has not been recorded", findings.SectionWitnesses)
		}
	}

	if len(r.Attachments) == 0 {
		c.Warning("attachments", "No attachments added; photos or documents help support the report",
			findings.SectionAttachments)
	}

	if p := r.Location.Coordinates; p != nil && !docmodel.ValidCoordinates(p.Latitude, p.Longitude) {
		c.Warning(findings.Field("location", "coordinates"),
			"GPS coordinates are outside the valid latitude/longitude range", findings.SectionLocation)
	}

	if injury := relevantInjury(r); injury != nil {
		if (injury.Severity == models.SeveritySevere || injury.Severity == models.SeverityFatal) &&
			r.RegulatorAssessment == nil {
			c.Warning("regulatorAssessment",
				"Severe or fatal injuries may be reportable under RIDDOR; record a regulator assessment",
				findings.SectionCompliance)
		}
		if injury.FirstAidGiven != nil && *injury.FirstAidGiven && strings.TrimSpace(injury.FirstAiderName) == "" {
			c.Warning(findings.Field("injuryDetails", "firstAiderName"),
				"First aid was given but the first aider is not named", findings.SectionInjury)
		}
	}

	for _, field := range category.Mismatched(r) {
		c.Warning(field, "Details were supplied for a different category and will be ignored",
			findings.SectionDetails)
	}
}

// relevantInjury возвращает сведения о травме, если их читают правила категории записи
func relevantInjury(r *models.IncidentRecord) *models.InjuryDetails {
	switch r.Category {
	case models.CategoryPersonalInjury, models.CategoryPublicLiability:
		return r.InjuryDetails
	}
	return nil
}

func checkContact(email, phone, base, section string, c *findings.Collector) {
	if e := strings.TrimSpace(email); e != "" && !emailPattern.MatchString(e) {
		c.Warning(findings.Field(base, "email"), "Email address looks malformed", section)
	}
	if p := strings.TrimSpace(phone); p != "" && !phonePattern.MatchString(p) {
		c.Warning(findings.Field(base, "phone"), "Phone number looks malformed", section)
	}
}
