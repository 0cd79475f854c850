package docmodel

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang/geo/s2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// NotAvailable подставляется вместо отсутствующих необязательных значений
	NotAvailable = "N/A"

	CurrencyGlyph = "£"

	DateLayout     = "02 Jan 2006"
	DateTimeLayout = "02 Jan 2006 15:04"
	isoDateLayout  = "2006-01-02"
)

// Text возвращает значение или N/A для пустой строки
func Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return strings.TrimSpace(s)
}

// YesNo форматирует необязательный флаг
func YesNo(b *bool) string {
	if b == nil {
		return NotAvailable
	}
	if *b {
		return "Yes"
	}
	return "No"
}

// Bool форматирует обязательный флаг
func Bool(b bool) string {
	return YesNo(&b)
}

// Money форматирует сумму с двумя знаками и символом валюты
func Money(d *decimal.Decimal) string {
	if d == nil {
		return NotAvailable
	}
	if d.IsNegative() {
		return "-" + CurrencyGlyph + d.Abs().StringFixed(2)
	}
	return CurrencyGlyph + d.StringFixed(2)
}

// Upper переводит значение в верхний регистр (используется для тяжести травмы).
// cases.Caser хранит состояние, поэтому создается на каждый вызов.
func Upper(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return cases.Upper(language.BritishEnglish).String(strings.TrimSpace(s))
}

// Label превращает машинный тег в подпись: "personal_injury" -> "Personal Injury"
func Label(tag string) string {
	if strings.TrimSpace(tag) == "" {
		return NotAvailable
	}
	return cases.Title(language.BritishEnglish).String(strings.ReplaceAll(tag, "_", " "))
}

// List соединяет элементы через запятую
func List(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return NotAvailable
	}
	return strings.Join(cleaned, ", ")
}

// ParseDate разбирает дату в виде "2006-01-02" или RFC3339
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(isoDateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Date форматирует дату по фиксированному шаблону; неразборчивое значение выводится как есть
func Date(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	t, ok := ParseDate(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return t.Format(DateLayout)
}

// Timestamp форматирует момент времени; нулевое время - N/A
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.UTC().Format(DateTimeLayout)
}

// TimestampPtr - то же для необязательного значения
func TimestampPtr(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return Timestamp(*t)
}

// Coordinates форматирует GPS-точку в градусах с шестью знаками
func Coordinates(lat, lng float64) string {
	ll := s2.LatLngFromDegrees(lat, lng)
	if !ll.IsValid() {
		return fmt.Sprintf("%.6f, %.6f (out of range)", lat, lng)
	}
	return fmt.Sprintf("%.6f, %.6f", ll.Lat.Degrees(), ll.Lng.Degrees())
}

// ValidCoordinates сообщает, лежит ли точка в допустимом диапазоне широты и долготы
func ValidCoordinates(lat, lng float64) bool {
	return s2.LatLngFromDegrees(lat, lng).IsValid()
}
