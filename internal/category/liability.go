package category

import (
	"strings"

	"github.com/shenikar/incident_reporter/internal/docmodel"
	"github.com/shenikar/incident_reporter/internal/findings"
	"github.com/shenikar/incident_reporter/internal/models"
)

const liabilityField = "publicLiabilityDetails"

func validatePublicLiability(r *models.IncidentRecord, c *findings.Collector) {
	personName := ""
	if r.PersonInvolved != nil {
		personName = r.PersonInvolved.FullName
	}
	c.Require(personName, findings.Field("personInvolved", "fullName"),
		"Name of the member of the public is required", findings.SectionPersonInvolved)

	reason := ""
	if r.PublicLiabilityDetails != nil {
		reason = r.PublicLiabilityDetails.ReasonForBeingOnSite
	}
	c.Require(reason, findings.Field(liabilityField, "reasonForBeingOnSite"),
		"Reason for being on site is required", findings.SectionPublicLiability)

	// Если описана травма, тяжесть становится обязательной, как для personal_injury
	if d := r.InjuryDetails; d != nil && strings.TrimSpace(d.NatureOfInjury) != "" {
		checkSeverity(d.Severity, c)
	}
}

func publicLiabilitySection(r *models.IncidentRecord) docmodel.Section {
	d := r.PublicLiabilityDetails
	if d == nil {
		return nil
	}
	rows := []docmodel.Row{
		{Label: "Reason for Being on Site", Value: docmodel.Text(d.ReasonForBeingOnSite)},
		{Label: "Contact Details", Value: docmodel.Text(d.ContactDetails)},
		{Label: "Claim Indicated", Value: docmodel.YesNo(d.ClaimIndicated)},
	}
	if inj := r.InjuryDetails; inj != nil {
		rows = append(rows,
			docmodel.Row{Label: "Nature of Injury", Value: docmodel.Text(inj.NatureOfInjury)},
			docmodel.Row{Label: "Severity", Value: docmodel.Upper(string(inj.Severity))},
		)
	}
	return docmodel.LabelValueSection{Title: "Public Liability Details", Rows: rows}
}
