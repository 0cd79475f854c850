// Package findings собирает находки валидации в стабильном порядке
// и строит пути к полям в едином формате: точка для вложенных объектов,
// индекс в квадратных скобках для элементов массива.
package findings

import (
	"fmt"
	"strings"

	"github.com/shenikar/incident_reporter/internal/models"
)

// Секции формы, к которым UI привязывает находки
const (
	SectionDetails           = "details"
	SectionLocation          = "location"
	SectionReporter          = "reporter"
	SectionDescription       = "description"
	SectionPersonInvolved    = "personInvolved"
	SectionInjury            = "injury"
	SectionPropertyDamage    = "propertyDamage"
	SectionVehicle           = "vehicle"
	SectionPublicLiability   = "publicLiability"
	SectionWitnesses         = "witnesses"
	SectionAttachments       = "attachments"
	SectionRootCause         = "rootCause"
	SectionCorrectiveActions = "correctiveActions"
	SectionSignatures        = "signatures"
	SectionCompliance        = "compliance"
)

// Field соединяет сегменты пути через точку: Field("a", "b") == "a.b"
func Field(segments ...string) string {
	return strings.Join(segments, ".")
}

// Index добавляет индекс элемента массива: Index("witnesses", 2) == "witnesses[2]"
func Index(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

// Collector накапливает ошибки и предупреждения в порядке добавления.
// Не потокобезопасен: один Collector на один вызов валидации.
type Collector struct {
	errors   []models.Finding
	warnings []models.Finding
}

func NewCollector() *Collector {
	return &Collector{
		errors:   make([]models.Finding, 0),
		warnings: make([]models.Finding, 0),
	}
}

// Error добавляет блокирующую ошибку
func (c *Collector) Error(field, message, section string) {
	c.errors = append(c.errors, models.Finding{Field: field, Message: message, Section: section})
}

// Warning добавляет предупреждение, которое не влияет на валидность
func (c *Collector) Warning(field, message, section string) {
	c.warnings = append(c.warnings, models.Finding{Field: field, Message: message, Section: section})
}

// Require добавляет ошибку, если строковое значение пустое после обрезки пробелов
func (c *Collector) Require(value, field, message, section string) bool {
	if strings.TrimSpace(value) == "" {
		c.Error(field, message, section)
		return false
	}
	return true
}

// HasErrors сообщает, были ли добавлены блокирующие ошибки
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Result возвращает итог; слайсы копируются, чтобы результат не менялся после построения
func (c *Collector) Result() models.ValidationResult {
	errs := make([]models.Finding, len(c.errors))
	copy(errs, c.errors)
	warns := make([]models.Finding, len(c.warnings))
	copy(warns, c.warnings)
	return models.ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
	}
}
