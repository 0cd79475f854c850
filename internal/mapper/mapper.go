// Package mapper преобразует запись об инциденте в модель документа.
//
// Предусловие: запись уже прошла валидацию для того же профиля, либо вызывающий
// сознательно строит черновик. Маппер не перепроверяет запись и не падает на
// неполных данных: отсутствующие значения выводятся как "N/A".
package mapper

import (
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/incident_reporter/internal/category"
	"github.com/shenikar/incident_reporter/internal/docmodel"
	"github.com/shenikar/incident_reporter/internal/models"
)

const DocumentTitle = "Workplace Incident Report"

// CorrectiveActionHeaders - заголовки таблицы корректирующих действий
var CorrectiveActionHeaders = []string{"Action", "Responsible Person", "Due Date", "Status"}

// Mapper не хранит изменяемого состояния; единственный недетерминированный вход - clock
type Mapper struct {
	clock clockwork.Clock
}

func New(clock clockwork.Clock) *Mapper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Mapper{clock: clock}
}

// Map строит документ в фиксированном порядке секций
func (m *Mapper) Map(r *models.IncidentRecord, opts models.ExportOptions) docmodel.Document {
	if r == nil {
		r = &models.IncidentRecord{}
	}
	doc := docmodel.Document{
		Title:         DocumentTitle,
		ReportKind:    opts.ProfileName() + " Report",
		ReferenceCode: docmodel.Text(r.ReferenceCode),
		GeneratedAt:   docmodel.Timestamp(m.clock.Now()),
		Sections:      make([]docmodel.Section, 0, 10),
	}

	doc.Append(detailsSection(r))
	doc.Append(reporterSection(r.ReportedBy))
	if r.PersonInvolved != nil {
		doc.Append(personSection(r.PersonInvolved))
	}
	if h, ok := category.Lookup(r.Category); ok {
		doc.Append(h.Section(r))
	}
	if hasNarrative(r.IncidentDescription) {
		doc.Append(narrativeSection(r.IncidentDescription))
	}
	if len(r.Witnesses) > 0 {
		doc.Append(witnessSection(r.Witnesses))
	}

	if !opts.SummaryOnly && opts.IncludeRootCause && r.RootCauseAnalysis != nil {
		doc.Append(rootCauseSection(r.RootCauseAnalysis))
	}
	if !opts.SummaryOnly && opts.IncludeCorrectiveActions && len(r.CorrectiveActions) > 0 {
		doc.Append(correctiveActionsSection(r.CorrectiveActions))
	}
	if opts.IncludeAttachments && len(r.Attachments) > 0 {
		doc.Append(attachmentSection(r.Attachments))
	}
	if opts.IncludeSignatures {
		if sec, ok := signatureSection(r.Signatures); ok {
			doc.Append(sec)
		}
	}
	return doc
}

func detailsSection(r *models.IncidentRecord) docmodel.Section {
	coords := docmodel.NotAvailable
	if p := r.Location.Coordinates; p != nil {
		coords = docmodel.Coordinates(p.Latitude, p.Longitude)
	}
	return docmodel.LabelValueSection{
		Title: "Incident Details",
		Rows: []docmodel.Row{
			{Label: "Reference", Value: docmodel.Text(r.ReferenceCode)},
			{Label: "Category", Value: docmodel.Label(string(r.Category))},
			{Label: "Date of Incident", Value: docmodel.Date(r.DateOfIncident)},
			{Label: "Time of Incident", Value: docmodel.Text(r.TimeOfIncident)},
			{Label: "Site", Value: docmodel.Text(r.Location.SiteName)},
			{Label: "Address", Value: docmodel.Text(r.Location.ManualAddress)},
			{Label: "GPS Coordinates", Value: coords},
			{Label: "People Present", Value: docmodel.List(r.PeoplePresent)},
			{Label: "Record Created", Value: docmodel.Timestamp(r.CreatedAt)},
			{Label: "Last Updated", Value: docmodel.Timestamp(r.UpdatedAt)},
		},
	}
}

func reporterSection(p models.Person) docmodel.Section {
	return docmodel.LabelValueSection{
		Title: "Reported By",
		Rows: []docmodel.Row{
			{Label: "Name", Value: docmodel.Text(p.Name)},
			{Label: "Job Title", Value: docmodel.Text(p.JobTitle)},
			{Label: "Department", Value: docmodel.Text(p.Department)},
			{Label: "Email", Value: docmodel.Text(p.Email)},
			{Label: "Phone", Value: docmodel.Text(p.Phone)},
		},
	}
}

func personSection(p *models.PersonInvolved) docmodel.Section {
	return docmodel.LabelValueSection{
		Title: "Person Involved",
		Rows: []docmodel.Row{
			{Label: "Full Name", Value: docmodel.Text(p.FullName)},
			{Label: "Job Title", Value: docmodel.Text(p.JobTitle)},
			{Label: "Employment Status", Value: docmodel.Label(p.EmploymentStatus)},
			{Label: "Contact Number", Value: docmodel.Text(p.ContactNumber)},
			{Label: "Address", Value: docmodel.Text(p.Address)},
		},
	}
}

func hasNarrative(d models.IncidentDescription) bool {
	for _, s := range []string{d.WhatHappened, d.ActivityAtTime, d.ImmediateActionsTaken, d.EquipmentInvolved, d.WeatherConditions} {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

func narrativeSection(d models.IncidentDescription) docmodel.Section {
	return docmodel.LabelValueSection{
		Title: "Incident Description",
		Rows: []docmodel.Row{
			{Label: "What Happened", Value: docmodel.Text(d.WhatHappened)},
			{Label: "Activity at the Time", Value: docmodel.Text(d.ActivityAtTime)},
			{Label: "Immediate Actions", Value: docmodel.Text(d.ImmediateActionsTaken)},
			{Label: "Equipment Involved", Value: docmodel.Text(d.EquipmentInvolved)},
			{Label: "Weather Conditions", Value: docmodel.Text(d.WeatherConditions)},
		},
	}
}

// witnessSection раскладывает каждого свидетеля в три пронумерованные строки
func witnessSection(witnesses []models.Witness) docmodel.Section {
	rows := make([]docmodel.Row, 0, len(witnesses)*3)
	for i, w := range witnesses {
		prefix := "Witness " + strconv.Itoa(i+1)
		rows = append(rows,
			docmodel.Row{Label: prefix + " Name", Value: docmodel.Text(w.Name)},
			docmodel.Row{Label: prefix + " Contact", Value: contact(w.Email, w.Phone)},
			docmodel.Row{Label: prefix + " Statement", Value: docmodel.Text(w.Statement)},
		)
	}
	return docmodel.LabelValueSection{Title: "Witnesses", Rows: rows}
}

func contact(email, phone string) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{email, phone} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return docmodel.NotAvailable
	}
	return strings.Join(parts, " / ")
}

func rootCauseSection(a *models.RootCauseAnalysis) docmodel.Section {
	return docmodel.LabelValueSection{
		Title: "Root Cause Analysis",
		Rows: []docmodel.Row{
			{Label: "Direct Cause", Value: docmodel.Text(a.DirectCause)},
			{Label: "Underlying Root Cause", Value: docmodel.Text(a.UnderlyingCause)},
			{Label: "Existing Controls Adequate", Value: docmodel.YesNo(a.ControlsAdequate)},
			{Label: "Contributing Factors", Value: docmodel.List(a.ContributingFactors)},
			{Label: "Analysis Method", Value: docmodel.Text(a.Method)},
		},
	}
}

func correctiveActionsSection(actions []models.CorrectiveAction) docmodel.Section {
	rows := make([][]string, 0, len(actions))
	for _, a := range actions {
		rows = append(rows, []string{
			docmodel.Text(a.Description),
			docmodel.Text(a.ResponsiblePerson),
			docmodel.Date(a.DueDate),
			docmodel.Label(string(a.Status)),
		})
	}
	headers := make([]string, len(CorrectiveActionHeaders))
	copy(headers, CorrectiveActionHeaders)
	return docmodel.TableSection{Title: "Corrective Actions", Headers: headers, Rows: rows}
}

func attachmentSection(attachments []models.Attachment) docmodel.Section {
	items := make([]docmodel.AttachmentItem, 0, len(attachments))
	for _, a := range attachments {
		items = append(items, docmodel.AttachmentItem{
			URI:     a.URI,
			Type:    docmodel.Label(a.Type),
			Caption: strings.TrimSpace(a.Caption),
		})
	}
	return docmodel.AttachmentSection{Title: "Attachments", Attachments: items}
}

func signatureSection(set *models.SignatureSet) (docmodel.Section, bool) {
	if set == nil {
		return nil, false
	}
	slots := []struct {
		name string
		sig  *models.Signature
	}{
		{"Reporter", set.Reporter},
		{"Investigator", set.Investigator},
		{"Witness", set.Witness},
	}
	items := make([]docmodel.SignatureItem, 0, len(slots))
	for _, s := range slots {
		if s.sig == nil {
			continue
		}
		role := strings.TrimSpace(s.sig.Role)
		if role == "" {
			role = s.name
		}
		items = append(items, docmodel.SignatureItem{
			Slot:     s.name,
			Name:     docmodel.Text(s.sig.Name),
			Role:     role,
			SignedAt: docmodel.Timestamp(s.sig.SignedAt),
			ImageRef: s.sig.ImageRef,
		})
	}
	if len(items) == 0 {
		return nil, false
	}
	return docmodel.SignatureSection{Title: "Signatures", Signatures: items}, true
}
