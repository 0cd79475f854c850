package render

import (
	"strings"
	"unicode/utf8"
)

// TextMeasurer возвращает ширину строки в пунктах для заданного шрифта
type TextMeasurer interface {
	Width(text string, font Font) float64
}

// FixedWidthMeasurer считает каждый символ шириной Ratio * размер шрифта.
// Дает воспроизводимые переносы без метрик реального шрифта.
type FixedWidthMeasurer struct {
	Ratio float64
}

func (m FixedWidthMeasurer) Width(text string, font Font) float64 {
	ratio := m.Ratio
	if ratio <= 0 {
		ratio = 0.5
	}
	return float64(utf8.RuneCountInString(text)) * font.Size * ratio
}

// wrap разбивает текст на строки не шире width. Явные переводы строк сохраняются,
// слишком длинные слова режутся по символам.
func wrap(text string, width float64, font Font, m TextMeasurer) []string {
	var lines []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, w := range words {
			candidate := w
			if current != "" {
				candidate = current + " " + w
			}
			if m.Width(candidate, font) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			for m.Width(w, font) > width {
				head, tail := splitToWidth(w, width, font, m)
				lines = append(lines, head)
				w = tail
			}
			current = w
		}
		lines = append(lines, current)
	}
	// пустые строки по краям не занимают места
	for len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// splitToWidth отрезает от слова максимальный префикс, помещающийся в width (минимум один символ)
func splitToWidth(word string, width float64, font Font, m TextMeasurer) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && m.Width(string(runes[:n+1]), font) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
