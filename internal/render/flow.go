package render

import (
	"fmt"
	"math"

	"github.com/shenikar/incident_reporter/internal/docmodel"
	reporterrors "github.com/shenikar/incident_reporter/internal/errors"
)

const (
	AttachmentNotEmbedded      = "(not embedded)"
	AttachmentNote             = "Attachment content is listed by reference only and is not embedded in this report."
	NoAttachments              = "No attachments"
	SignatureImageNotEmbedded  = "Signature image not embedded"
	SignatureImageNotSupplied  = "No signature image"
	signaturePlaceholderWidth  = 200.0
	signatureLinesBeforeBox    = 3
	textBaselineOffset         = 12.0
	tableHeaderBaselineOffset  = 14.0
	sectionTitleBaselineOffset = 17.0
)

// Stats - счетчики явно не реализованного содержимого (изображения не встраиваются)
type Stats struct {
	SignatureImagesOmitted int
	AttachmentsNotEmbedded int
}

// Renderer раскладывает документ по страницам. Хранит список страниц и курсор,
// поэтому один экземпляр обслуживает ровно один документ.
type Renderer struct {
	layout  Layout
	measure TextMeasurer

	pages  []*Page
	page   *Page
	cursor float64
	fresh  bool
	used   bool
	stats  Stats
}

func NewRenderer(layout Layout, measure TextMeasurer) *Renderer {
	return &Renderer{layout: layout, measure: measure}
}

// Stats доступны после Paginate
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Paginate раскладывает все секции, затем выполняет два прохода отделки:
// легенда конфиденциальности и "Page i of N" на каждой странице.
func (r *Renderer) Paginate(doc docmodel.Document) ([]*Page, error) {
	if r.used {
		return nil, reporterrors.LayoutFailure("renderer instance already used for another document")
	}
	r.used = true

	r.newPage()
	r.drawHeader(doc)

	for i, s := range doc.Sections {
		var err error
		switch sec := s.(type) {
		case docmodel.LabelValueSection:
			r.drawLabelValue(sec)
		case docmodel.TableSection:
			r.drawTable(sec)
		case docmodel.AttachmentSection:
			r.drawAttachments(sec)
		case docmodel.SignatureSection:
			r.drawSignatures(sec)
		default:
			err = reporterrors.LayoutFailure(fmt.Sprintf("section %d: unsupported section type %T", i, s))
		}
		if err != nil {
			return nil, err
		}
		r.cursor += r.layout.SectionSpacing
	}

	r.stampLegend()
	r.stampPageNumbers()
	return r.pages, nil
}

func (r *Renderer) newPage() {
	r.page = &Page{Number: len(r.pages) + 1}
	r.pages = append(r.pages, r.page)
	r.cursor = MarginTop
	r.fresh = true
}

// ensure начинает новую страницу, если элемент высотой height достигает порога.
// Граница включительна: cursor+height == порог тоже переносится.
// На только что начатой странице перенос не делается, иначе слишком высокий элемент
// порождал бы пустые страницы.
func (r *Renderer) ensure(height, breakMargin float64) bool {
	if r.fresh {
		return false
	}
	if r.cursor+height >= r.layout.threshold(breakMargin) {
		r.newPage()
		return true
	}
	return false
}

func (r *Renderer) advance(height float64) {
	r.cursor += height
	r.fresh = false
}

func (r *Renderer) text(x, y float64, s string, font Font, color Color) {
	r.page.add(TextOp{X: x, Y: y, Text: s, Font: font, Color: color})
}

func (r *Renderer) rule(y float64) {
	r.page.add(LineOp{X1: MarginLeft, Y1: y, X2: PageWidth - MarginRight, Y2: y, Width: 0.5, Color: ColorRule})
}

func (r *Renderer) drawHeader(doc docmodel.Document) {
	top := r.cursor
	r.text(MarginLeft, top+20, doc.Title, Font{Bold: true, Size: FontSizeTitle}, ColorPrimary)
	r.text(MarginLeft, top+42, doc.ReportKind, Font{Size: FontSizeHeading}, ColorPrimary)
	r.text(MarginLeft, top+62, "Reference: "+doc.ReferenceCode, Font{Size: FontSizeBody}, ColorText)
	r.text(MarginLeft, top+78, "Exported: "+doc.GeneratedAt, Font{Size: FontSizeBody}, ColorMuted)
	r.rule(top + HeaderHeight - 10)
	r.advance(HeaderHeight)
}

// drawSectionTitle переносит заголовок на новую страницу, если под ним не останется
// места для первого элемента секции высотой next
func (r *Renderer) drawSectionTitle(title string, next, breakMargin float64) {
	r.ensure(r.layout.SectionTitleHeight+next, breakMargin)
	r.text(MarginLeft, r.cursor+sectionTitleBaselineOffset, title, Font{Bold: true, Size: FontSizeHeading}, ColorPrimary)
	r.advance(r.layout.SectionTitleHeight)
}

// keep - сколько места заголовок секции удерживает под первый элемент: весь элемент,
// а если он не помещается даже на пустую страницу, то его первую строку
func (r *Renderer) keep(first, firstLine, breakMargin float64) float64 {
	if MarginTop+r.layout.SectionTitleHeight+first < r.layout.threshold(breakMargin) {
		return first
	}
	return firstLine
}

// rowHeight - высота строки "метка: значение" с учетом переносов
func (r *Renderer) rowHeight(lines int) float64 {
	return r.blockHeight(r.layout.RowHeight, lines)
}

// blockHeight - высота блока из lines строк, где base - высота блока из одной строки
func (r *Renderer) blockHeight(base float64, lines int) float64 {
	if lines < 1 {
		lines = 1
	}
	return base + float64(lines-1)*r.layout.LineHeight
}

// block - многострочный элемент, который можно резать по строкам
type block struct {
	lines       int
	base        float64
	breakMargin float64
	// reserve - высота, которую onBreak занимает вверху новой страницы
	reserve float64
	onBreak func()
	// draw рисует строки [from, to) начиная с top
	draw func(from, to int, top float64)
}

// place размещает блок. Блок, который помещается на пустую страницу, переносится
// целиком. Более высокий режется по строкам: каждая часть заканчивается выше порога,
// остаток уходит на следующую страницу.
func (r *Renderer) place(b block) {
	lines := max(b.lines, 1)
	thr := r.layout.threshold(b.breakMargin)
	height := func(k int) float64 { return r.blockHeight(b.base, k) }

	if r.cursor+height(lines) >= thr && MarginTop+b.reserve+height(lines) < thr {
		r.breakPage(b.onBreak)
	}
	broke := false
	for from := 0; from < lines; {
		k := 0
		for from+k < lines && r.cursor+height(k+1) < thr {
			k++
		}
		if k == 0 {
			if !r.fresh && !broke {
				r.breakPage(b.onBreak)
				broke = true
				continue
			}
			// даже одна строка не помещается под верх новой страницы: рисуем ее как есть
			k = 1
		}
		b.draw(from, from+k, r.cursor)
		r.advance(height(k))
		from += k
		broke = false
		if from < lines {
			r.breakPage(b.onBreak)
			broke = true
		}
	}
}

func (r *Renderer) breakPage(onBreak func()) {
	r.newPage()
	if onBreak != nil {
		onBreak()
	}
}

// rowLines - строка "метка: значение" после переноса
type rowLines struct {
	label []string
	value []string
}

func (l rowLines) count() int {
	return max(len(l.label), len(l.value), 1)
}

var (
	rowLabelFont = Font{Bold: true, Size: FontSizeBody}
	rowValueFont = Font{Size: FontSizeBody}
)

func (r *Renderer) labelWidth() float64 {
	return r.layout.ValueOffset - r.layout.LabelOffset - r.layout.CellPadding
}

func (r *Renderer) wrapRow(label, value string) rowLines {
	return rowLines{
		label: wrap(label, r.labelWidth(), rowLabelFont, r.measure),
		value: wrap(value, ContentWidth-r.layout.ValueOffset, rowValueFont, r.measure),
	}
}

// ContinuedLabel - метка продолжения строки на новой странице
func ContinuedLabel(label string) string {
	return label + " (cont.)"
}

func (r *Renderer) drawRow(row rowLines, breakMargin float64) {
	cont := "(cont.)"
	if len(row.label) > 0 {
		if c := ContinuedLabel(row.label[0]); r.measure.Width(c, rowLabelFont) <= r.labelWidth() {
			cont = c
		}
	}
	r.place(block{
		lines:       row.count(),
		base:        r.layout.RowHeight,
		breakMargin: breakMargin,
		draw: func(from, to int, top float64) {
			for i := from; i < to; i++ {
				y := top + textBaselineOffset + float64(i-from)*r.layout.LineHeight
				switch {
				case i < len(row.label):
					r.text(MarginLeft+r.layout.LabelOffset, y, row.label[i], rowLabelFont, ColorText)
				case i == from && from > 0:
					r.text(MarginLeft+r.layout.LabelOffset, y, cont, rowLabelFont, ColorMuted)
				}
				if i < len(row.value) {
					r.text(MarginLeft+r.layout.ValueOffset, y, row.value[i], rowValueFont, ColorText)
				}
			}
		},
	})
}

// drawRows рисует секцию из строк "метка: значение" вместе с заголовком
func (r *Renderer) drawRows(title string, rows []docmodel.Row, breakMargin float64) {
	wrapped := make([]rowLines, len(rows))
	for i, row := range rows {
		wrapped[i] = r.wrapRow(row.Label, row.Value)
	}
	next := 0.0
	if len(wrapped) > 0 {
		next = r.keep(r.rowHeight(wrapped[0].count()), r.layout.RowHeight, breakMargin)
	}
	r.drawSectionTitle(title, next, breakMargin)
	for _, row := range wrapped {
		r.drawRow(row, breakMargin)
	}
}

func (r *Renderer) drawLabelValue(sec docmodel.LabelValueSection) {
	r.drawRows(sec.Title, sec.Rows, r.layout.BreakMarginLabelValue)
}

func (r *Renderer) drawTable(sec docmodel.TableSection) {
	margin := r.layout.BreakMarginTable
	columns := len(sec.Headers)
	for _, row := range sec.Rows {
		columns = max(columns, len(row))
	}
	if columns == 0 {
		r.drawSectionTitle(sec.Title, 0, margin)
		return
	}
	colWidth := ContentWidth / float64(columns)
	cellWidth := colWidth - 2*r.layout.CellPadding

	font := Font{Size: FontSizeBody}
	cells := make([][][]string, len(sec.Rows))
	counts := make([]int, len(sec.Rows))
	for i, row := range sec.Rows {
		cells[i] = make([][]string, columns)
		counts[i] = 1
		for c := 0; c < columns; c++ {
			value := ""
			if c < len(row) {
				value = row[c]
			}
			cells[i][c] = wrap(value, cellWidth, font, r.measure)
			counts[i] = max(counts[i], len(cells[i][c]))
		}
	}

	headerHeight := 0.0
	if len(sec.Headers) > 0 {
		headerHeight = r.layout.TableHeaderHeight
	}
	next := headerHeight
	if len(sec.Rows) > 0 {
		next = r.keep(headerHeight+r.blockHeight(r.layout.TableRowHeight, counts[0]), headerHeight+r.layout.TableRowHeight, margin)
	}
	r.drawSectionTitle(sec.Title, next, margin)
	r.drawTableHeader(sec.Headers, colWidth, cellWidth)

	// заголовок таблицы повторяется на каждой новой странице
	header := func() { r.drawTableHeader(sec.Headers, colWidth, cellWidth) }
	for i := range sec.Rows {
		rowCells := cells[i]
		r.place(block{
			lines:       counts[i],
			base:        r.layout.TableRowHeight,
			breakMargin: margin,
			reserve:     headerHeight,
			onBreak:     header,
			draw: func(from, to int, top float64) {
				for c, cellLines := range rowCells {
					x := MarginLeft + float64(c)*colWidth + r.layout.CellPadding
					for j := from; j < to && j < len(cellLines); j++ {
						r.text(x, top+tableHeaderBaselineOffset+float64(j-from)*r.layout.LineHeight, cellLines[j], font, ColorText)
					}
				}
			},
		})
		r.rule(r.cursor)
	}
}

func (r *Renderer) drawTableHeader(headers []string, colWidth, cellWidth float64) {
	if len(headers) == 0 {
		return
	}
	fill := ColorTableHeader
	r.page.add(RectOp{X: MarginLeft, Y: r.cursor, W: ContentWidth, H: r.layout.TableHeaderHeight, Fill: &fill})
	font := Font{Bold: true, Size: FontSizeBody}
	for c, h := range headers {
		// заголовок не переносится: высота строки заголовка фиксирована
		line := wrap(h, cellWidth, font, r.measure)[0]
		r.text(MarginLeft+float64(c)*colWidth+r.layout.CellPadding, r.cursor+tableHeaderBaselineOffset, line, font, ColorPrimary)
	}
	r.advance(r.layout.TableHeaderHeight)
}

func (r *Renderer) drawAttachments(sec docmodel.AttachmentSection) {
	margin := r.layout.BreakMarginLabelValue
	if len(sec.Attachments) == 0 {
		r.drawRows(sec.Title, []docmodel.Row{{Label: NoAttachments}}, margin)
		return
	}
	rows := make([]docmodel.Row, len(sec.Attachments))
	for i, a := range sec.Attachments {
		value := a.URI
		if a.Caption != "" {
			value = a.Caption + " - " + a.URI
		}
		if a.Type != "" {
			value += " [" + a.Type + "]"
		}
		rows[i] = docmodel.Row{Label: fmt.Sprintf("Attachment %d", i+1), Value: value + " " + AttachmentNotEmbedded}
		r.stats.AttachmentsNotEmbedded++
	}
	r.drawRows(sec.Title, rows, margin)
	r.drawNote(AttachmentNote)
}

func (r *Renderer) drawNote(note string) {
	font := Font{Size: FontSizeSmall}
	lines := wrap(note, ContentWidth, font, r.measure)
	r.place(block{
		lines:       len(lines),
		base:        r.layout.RowHeight,
		breakMargin: r.layout.BreakMarginLabelValue,
		draw: func(from, to int, top float64) {
			for i := from; i < to && i < len(lines); i++ {
				r.text(MarginLeft, top+textBaselineOffset+float64(i-from)*r.layout.LineHeight, lines[i], font, ColorMuted)
			}
		},
	})
}

func (r *Renderer) drawSignatures(sec docmodel.SignatureSection) {
	next := 0.0
	if len(sec.Signatures) > 0 {
		next = r.layout.SignatureBlockHeight
	}
	r.drawSectionTitle(sec.Title, next, r.layout.BreakMarginSignature)
	for _, s := range sec.Signatures {
		r.drawSignatureBlock(s)
	}
}

// drawSignatureBlock рисует блок фиксированной высоты: имя, роль, отметку времени
// и пустую область под изображение подписи. Изображение не встраивается, область
// подписывается явно.
func (r *Renderer) drawSignatureBlock(s docmodel.SignatureItem) {
	r.ensure(r.layout.SignatureBlockHeight, r.layout.BreakMarginSignature)
	top := r.cursor
	bold := Font{Bold: true, Size: FontSizeBody}
	body := Font{Size: FontSizeBody}

	r.text(MarginLeft, top+textBaselineOffset, s.Slot+": "+s.Name, bold, ColorText)
	r.text(MarginLeft, top+textBaselineOffset+r.layout.LineHeight, "Role: "+s.Role, body, ColorText)
	r.text(MarginLeft, top+textBaselineOffset+2*r.layout.LineHeight, "Signed: "+s.SignedAt, body, ColorMuted)

	boxTop := top + textBaselineOffset + signatureLinesBeforeBox*r.layout.LineHeight - 6
	stroke := ColorRule
	r.page.add(RectOp{X: MarginLeft, Y: boxTop, W: signaturePlaceholderWidth, H: r.layout.SignaturePlaceholder, Stroke: &stroke, Dashed: true})

	label := SignatureImageNotSupplied
	if s.ImageRef != "" {
		label = SignatureImageNotEmbedded
		r.stats.SignatureImagesOmitted++
	}
	small := Font{Size: FontSizeSmall}
	r.text(MarginLeft+r.layout.CellPadding*2, boxTop+r.layout.SignaturePlaceholder/2+FontSizeSmall/2, label, small, ColorMuted)

	r.advance(r.layout.SignatureBlockHeight)
}

// stampLegend - первый проход отделки: легенда над нижним краем каждой страницы
func (r *Renderer) stampLegend() {
	font := Font{Size: FontSizeSmall}
	y := PageHeight - r.layout.LegendOffset
	for _, p := range r.pages {
		p.add(LineOp{X1: MarginLeft, Y1: y - 10, X2: PageWidth - MarginRight, Y2: y - 10, Width: 0.5, Color: ColorRule})
		p.add(TextOp{X: MarginLeft, Y: y, Text: ConfidentialityLegend, Font: font, Color: ColorMuted})
	}
}

// stampPageNumbers - второй проход: "Page i of N", выравнивание по правому полю
func (r *Renderer) stampPageNumbers() {
	font := Font{Size: FontSizeSmall}
	y := PageHeight - r.layout.PageNumberOffset
	total := len(r.pages)
	for _, p := range r.pages {
		label := PageLabel(p.Number, total)
		x := PageWidth - MarginRight - r.measure.Width(label, font)
		p.add(TextOp{X: math.Max(MarginLeft, x), Y: y, Text: label, Font: font, Color: ColorMuted})
	}
}

// PageLabel - подпись номера страницы
func PageLabel(i, total int) string {
	return fmt.Sprintf("Page %d of %d", i, total)
}
