package category

import (
	"github.com/shenikar/incident_reporter/internal/docmodel"
	"github.com/shenikar/incident_reporter/internal/findings"
	"github.com/shenikar/incident_reporter/internal/models"
)

const injuryField = "injuryDetails"

// ValidSeverity сообщает, входит ли тяжесть в допустимый набор
func ValidSeverity(s models.Severity) bool {
	switch s {
	case models.SeverityMinor, models.SeverityModerate, models.SeveritySevere, models.SeverityFatal:
		return true
	}
	return false
}

func validateInjury(r *models.IncidentRecord, c *findings.Collector) {
	personName := ""
	if r.PersonInvolved != nil {
		personName = r.PersonInvolved.FullName
	}
	c.Require(personName, findings.Field("personInvolved", "fullName"),
		"Name of the injured person is required", findings.SectionPersonInvolved)

	d := r.InjuryDetails
	if d == nil {
		d = &models.InjuryDetails{}
	}
	c.Require(d.NatureOfInjury, findings.Field(injuryField, "natureOfInjury"),
		"Nature of injury is required", findings.SectionInjury)
	checkSeverity(d.Severity, c)
	if len(d.BodyPartsAffected) == 0 {
		c.Error(findings.Field(injuryField, "bodyPartsAffected"),
			"At least one affected body part is required", findings.SectionInjury)
	}
	if d.PPEUsed == nil {
		c.Error(findings.Field(injuryField, "ppeUsed"),
			"Please indicate whether PPE was being used", findings.SectionInjury)
	}
}

func checkSeverity(s models.Severity, c *findings.Collector) {
	field := findings.Field(injuryField, "severity")
	if s == "" {
		c.Error(field, "Injury severity is required", findings.SectionInjury)
		return
	}
	if !ValidSeverity(s) {
		c.Error(field, "Injury severity must be one of minor, moderate, severe or fatal", findings.SectionInjury)
	}
}

func injurySection(r *models.IncidentRecord) docmodel.Section {
	d := r.InjuryDetails
	if d == nil {
		return nil
	}
	rows := injuryRows(d)
	rows = append(rows, regulatorRows(r.RegulatorAssessment)...)
	return docmodel.LabelValueSection{Title: "Injury Details", Rows: rows}
}

func injuryRows(d *models.InjuryDetails) []docmodel.Row {
	ppeWorn, ppeItems := docmodel.NotAvailable, docmodel.NotAvailable
	if d.PPEUsed != nil {
		ppeWorn = docmodel.Bool(d.PPEUsed.Worn)
		ppeItems = docmodel.List(d.PPEUsed.Items)
	}
	return []docmodel.Row{
		{Label: "Nature of Injury", Value: docmodel.Text(d.NatureOfInjury)},
		{Label: "Severity", Value: docmodel.Upper(string(d.Severity))},
		{Label: "Body Parts Affected", Value: docmodel.List(d.BodyPartsAffected)},
		{Label: "PPE Worn", Value: ppeWorn},
		{Label: "PPE Items", Value: ppeItems},
		{Label: "First Aid Given", Value: docmodel.YesNo(d.FirstAidGiven)},
		{Label: "First Aider", Value: docmodel.Text(d.FirstAiderName)},
		{Label: "Hospital Attendance", Value: docmodel.YesNo(d.HospitalAttendance)},
		{Label: "Time Off Work", Value: docmodel.YesNo(d.TimeOffWork)},
	}
}

func regulatorRows(a *models.RegulatorAssessment) []docmodel.Row {
	if a == nil {
		return nil
	}
	return []docmodel.Row{
		{Label: "RIDDOR Reportable", Value: docmodel.YesNo(a.Reportable)},
		{Label: "Assessed By", Value: docmodel.Text(a.AssessedBy)},
		{Label: "Reported to Regulator", Value: docmodel.TimestampPtr(a.ReportedAt)},
		{Label: "Regulator Reference", Value: docmodel.Text(a.ReferenceNumber)},
	}
}
