// Package category - единый реестр категорийного поведения.
// Валидатор и маппер документа выбирают категорийные правила и секцию отчета
// только через этот реестр, поэтому добавление категории - это одна запись в нем.
package category

import (
	"github.com/shenikar/incident_reporter/internal/docmodel"
	"github.com/shenikar/incident_reporter/internal/findings"
	"github.com/shenikar/incident_reporter/internal/models"
)

// RuleFunc добавляет категорийные находки в коллектор
type RuleFunc func(r *models.IncidentRecord, c *findings.Collector)

// SectionFunc строит категорийную секцию документа; nil, если данных нет
type SectionFunc func(r *models.IncidentRecord) docmodel.Section

// Handler - поведение одной категории
type Handler struct {
	Category models.Category
	// DetailsField - JSON-имя подзаписи категории
	DetailsField string
	HasDetails   func(r *models.IncidentRecord) bool
	// AlsoReads - подзаписи других категорий, которые правила этой категории читают
	AlsoReads []string
	Validate  RuleFunc
	Section   SectionFunc
}

// order фиксирует порядок обхода реестра, чтобы результаты были детерминированными
var order = []models.Category{
	models.CategoryPersonalInjury,
	models.CategoryPropertyDamage,
	models.CategoryVehicleIncident,
	models.CategoryPublicLiability,
}

var registry = map[models.Category]Handler{
	models.CategoryPersonalInjury: {
		Category:     models.CategoryPersonalInjury,
		DetailsField: "injuryDetails",
		HasDetails:   func(r *models.IncidentRecord) bool { return r.InjuryDetails != nil },
		Validate:     validateInjury,
		Section:      injurySection,
	},
	models.CategoryPropertyDamage: {
		Category:     models.CategoryPropertyDamage,
		DetailsField: "propertyDamageDetails",
		HasDetails:   func(r *models.IncidentRecord) bool { return r.PropertyDamageDetails != nil },
		Validate:     validatePropertyDamage,
		Section:      propertyDamageSection,
	},
	models.CategoryVehicleIncident: {
		Category:     models.CategoryVehicleIncident,
		DetailsField: "vehicleDetails",
		HasDetails:   func(r *models.IncidentRecord) bool { return r.VehicleDetails != nil },
		Validate:     validateVehicle,
		Section:      vehicleSection,
	},
	models.CategoryPublicLiability: {
		Category:     models.CategoryPublicLiability,
		DetailsField: "publicLiabilityDetails",
		HasDetails:   func(r *models.IncidentRecord) bool { return r.PublicLiabilityDetails != nil },
		AlsoReads:    []string{"injuryDetails"},
		Validate:     validatePublicLiability,
		Section:      publicLiabilitySection,
	},
}

// Lookup возвращает поведение категории. Для значений вне закрытого набора ok == false.
func Lookup(c models.Category) (Handler, bool) {
	h, ok := registry[c]
	return h, ok
}

// Known сообщает, входит ли категория в закрытый набор
func Known(c models.Category) bool {
	_, ok := registry[c]
	return ok
}

// All возвращает обработчики в фиксированном порядке
func All() []Handler {
	handlers := make([]Handler, 0, len(order))
	for _, c := range order {
		handlers = append(handlers, registry[c])
	}
	return handlers
}

// Mismatched возвращает JSON-имена подзаписей, которые заполнены, но не относятся к категории записи
func Mismatched(r *models.IncidentRecord) []string {
	current, known := Lookup(r.Category)
	var out []string
	for _, h := range All() {
		if h.Category == r.Category || !h.HasDetails(r) {
			continue
		}
		if known && contains(current.AlsoReads, h.DetailsField) {
			continue
		}
		out = append(out, h.DetailsField)
	}
	return out
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
