package category

import (
	"github.com/shenikar/incident_reporter/internal/docmodel"
	"github.com/shenikar/incident_reporter/internal/findings"
	"github.com/shenikar/incident_reporter/internal/models"
)

const propertyField = "propertyDamageDetails"

func validatePropertyDamage(r *models.IncidentRecord, c *findings.Collector) {
	d := r.PropertyDamageDetails
	if d == nil {
		d = &models.PropertyDamageDetails{}
	}
	c.Require(d.AssetDescription, findings.Field(propertyField, "assetDescription"),
		"Description of the damaged asset is required", findings.SectionPropertyDamage)
	c.Require(d.ExtentOfDamage, findings.Field(propertyField, "extentOfDamage"),
		"Extent of damage is required", findings.SectionPropertyDamage)
	c.Require(d.AssetType, findings.Field(propertyField, "assetType"),
		"Asset type is required", findings.SectionPropertyDamage)
	// false - допустимый ответ, ошибка только если флаг не задан вовсе
	if d.UrgentRepairRequired == nil {
		c.Error(findings.Field(propertyField, "urgentRepairRequired"),
			"Please indicate whether an urgent repair is required", findings.SectionPropertyDamage)
	}
}

func propertyDamageSection(r *models.IncidentRecord) docmodel.Section {
	d := r.PropertyDamageDetails
	if d == nil {
		return nil
	}
	return docmodel.LabelValueSection{
		Title: "Property Damage",
		Rows: []docmodel.Row{
			{Label: "Asset Description", Value: docmodel.Text(d.AssetDescription)},
			{Label: "Asset Type", Value: docmodel.Label(d.AssetType)},
			{Label: "Extent of Damage", Value: docmodel.Text(d.ExtentOfDamage)},
			{Label: "Estimated Cost", Value: docmodel.Money(d.EstimatedCost)},
			{Label: "Urgent Repair Required", Value: docmodel.YesNo(d.UrgentRepairRequired)},
			{Label: "Asset Owner", Value: docmodel.Text(d.OwnerName)},
		},
	}
}
