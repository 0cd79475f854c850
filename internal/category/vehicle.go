package category

import (
	"regexp"
	"strings"

	"github.com/shenikar/incident_reporter/internal/docmodel"
	"github.com/shenikar/incident_reporter/internal/findings"
	"github.com/shenikar/incident_reporter/internal/models"
)

const vehicleField = "vehicleDetails"

// Текущий формат (AB12CDE) и префиксный формат (A123BCD)
var ukPlatePattern = regexp.MustCompile(`^(?:[A-Z]{2}[0-9]{2}[A-Z]{3}|[A-Z][0-9]{1,3}[A-Z]{3})$`)

// NormalizeRegistration убирает пробелы и приводит номер к верхнему регистру
func NormalizeRegistration(reg string) string {
	return strings.ToUpper(strings.Join(strings.Fields(reg), ""))
}

// ValidUKRegistration проверяет номер по британским форматам без учета регистра и пробелов
func ValidUKRegistration(reg string) bool {
	return ukPlatePattern.MatchString(NormalizeRegistration(reg))
}

func validateVehicle(r *models.IncidentRecord, c *findings.Collector) {
	d := r.VehicleDetails
	if d == nil {
		d = &models.VehicleDetails{}
	}
	regField := findings.Field(vehicleField, "registration")
	if c.Require(d.Registration, regField, "Vehicle registration is required", findings.SectionVehicle) &&
		!ValidUKRegistration(d.Registration) {
		c.Error(regField, "Vehicle registration must be a valid UK format (e.g. AB12 CDE)", findings.SectionVehicle)
	}
	c.Require(d.DriverName, findings.Field(vehicleField, "driverName"),
		"Driver name is required", findings.SectionVehicle)
	if d.IsCompanyVehicle == nil {
		c.Error(findings.Field(vehicleField, "isCompanyVehicle"),
			"Please indicate whether this is a company vehicle", findings.SectionVehicle)
	}
	if d.PoliceNotified == nil {
		c.Error(findings.Field(vehicleField, "policeNotified"),
			"Please indicate whether the police were notified", findings.SectionVehicle)
	}
	if d.PoliceNotified != nil && *d.PoliceNotified && strings.TrimSpace(d.PoliceReferenceNumber) == "" {
		c.Warning(findings.Field(vehicleField, "policeReferenceNumber"),
			"A police reference number is strongly recommended when the police were notified", findings.SectionVehicle)
	}
}

func vehicleSection(r *models.IncidentRecord) docmodel.Section {
	d := r.VehicleDetails
	if d == nil {
		return nil
	}
	makeModel := strings.TrimSpace(strings.TrimSpace(d.Make) + " " + strings.TrimSpace(d.Model))
	registration := docmodel.NotAvailable
	if strings.TrimSpace(d.Registration) != "" {
		registration = NormalizeRegistration(d.Registration)
	}
	return docmodel.LabelValueSection{
		Title: "Vehicle Details",
		Rows: []docmodel.Row{
			{Label: "Registration", Value: registration},
			{Label: "Make / Model", Value: docmodel.Text(makeModel)},
			{Label: "Driver", Value: docmodel.Text(d.DriverName)},
			{Label: "Company Vehicle", Value: docmodel.YesNo(d.IsCompanyVehicle)},
			{Label: "Police Notified", Value: docmodel.YesNo(d.PoliceNotified)},
			{Label: "Police Reference", Value: docmodel.Text(d.PoliceReferenceNumber)},
			{Label: "Third Party Involved", Value: docmodel.YesNo(d.ThirdPartyInvolved)},
			{Label: "Third Party Details", Value: docmodel.Text(d.ThirdPartyDetails)},
			{Label: "Vehicle Damage", Value: docmodel.Text(d.DamageDescription)},
		},
	}
}
