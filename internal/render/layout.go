package render

// Геометрия страницы (пункты). Значения фиксированы и не выводятся из содержимого.
const (
	PageWidth  = 595.0
	PageHeight = 842.0

	MarginTop    = 50.0
	MarginBottom = 50.0
	MarginLeft   = 50.0
	MarginRight  = 50.0

	ContentWidth = PageWidth - MarginLeft - MarginRight

	// HeaderHeight - блок заголовка первой страницы: название, вид отчета, номер, дата выгрузки, разделитель
	HeaderHeight = 100.0
)

// FontFamily - встроенный Unicode-шрифт, см. font.go
const FontFamily = "DejaVu"

// Пять уровней размера шрифта
const (
	FontSizeTitle      = 20.0
	FontSizeHeading    = 14.0
	FontSizeSubheading = 11.0
	FontSizeBody       = 10.0
	FontSizeSmall      = 8.0
)

// Color - цвет RGB
type Color struct {
	R, G, B int
}

// Палитра, общая для заголовка, секций и таблиц
var (
	ColorPrimary     = Color{R: 26, G: 54, B: 93}
	ColorText        = Color{R: 33, G: 33, B: 33}
	ColorMuted       = Color{R: 110, G: 110, B: 110}
	ColorRule        = Color{R: 200, G: 200, B: 200}
	ColorTableHeader = Color{R: 228, G: 234, B: 242}
)

// ConfidentialityLegend печатается внизу каждой страницы
const ConfidentialityLegend = "CONFIDENTIAL - This report contains personal data and must be handled in line with data protection policy."

// Layout - настройки раскладки. Задаются один раз, в ходе рендера не пересчитываются.
type Layout struct {
	SectionTitleHeight float64
	SectionSpacing     float64

	// Строка "метка: значение"; каждая дополнительная строка переноса добавляет LineHeight
	RowHeight   float64
	LineHeight  float64
	LabelOffset float64
	ValueOffset float64

	TableHeaderHeight float64
	TableRowHeight    float64
	CellPadding       float64

	SignatureBlockHeight float64
	SignaturePlaceholder float64

	// Запас до нижнего края страницы, при пересечении которого начинается новая страница
	BreakMarginLabelValue float64
	BreakMarginTable      float64
	BreakMarginSignature  float64

	// Смещения от нижнего края страницы для проходов финальной отделки
	LegendOffset     float64
	PageNumberOffset float64
}

// DefaultLayout - раскладка по умолчанию
func DefaultLayout() Layout {
	return Layout{
		SectionTitleHeight: 26,
		SectionSpacing:     10,

		RowHeight:   18,
		LineHeight:  12,
		LabelOffset: 0,
		ValueOffset: 160,

		TableHeaderHeight: 22,
		TableRowHeight:    20,
		CellPadding:       4,

		SignatureBlockHeight: 96,
		SignaturePlaceholder: 40,

		BreakMarginLabelValue: 80,
		BreakMarginTable:      100,
		BreakMarginSignature:  130,

		LegendOffset:     34,
		PageNumberOffset: 20,
	}
}

// threshold - координата Y, достигнув которой элемент переносится на новую страницу
func (l Layout) threshold(breakMargin float64) float64 {
	return PageHeight - breakMargin
}
