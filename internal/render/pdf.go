package render

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Metadata - свойства PDF-документа
type Metadata struct {
	Title     string
	Subject   string
	Author    string
	Creator   string
	CreatedAt time.Time
}

// pdfDocument - выходной документ fpdf. Он же служит измерителем текста для раскладки:
// ширина строк считается по тем же метрикам шрифта, которыми они будут нарисованы.
type pdfDocument struct {
	pdf    *fpdf.Fpdf
	glyphs *glyphs
	// replaced - символы без глифа, нарисованные как ReplacementRune
	replaced int
}

func newPDFDocument(meta Metadata) (*pdfDocument, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetMargins(MarginLeft, MarginTop, MarginRight)
	// разрывы страниц определяет только раскладка
	pdf.SetAutoPageBreak(false, MarginBottom)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreator(meta.Creator, true)
	if !meta.CreatedAt.IsZero() {
		pdf.SetCreationDate(meta.CreatedAt)
		pdf.SetModificationDate(meta.CreatedAt)
	}
	pdf.AddUTF8FontFromBytes(FontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(FontFamily, "B", fontBold)
	if pdf.Err() {
		return nil, fmt.Errorf("load font %s: %w", FontFamily, pdf.Error())
	}
	g, err := newGlyphs()
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", FontFamily, err)
	}
	return &pdfDocument{pdf: pdf, glyphs: g}, nil
}

func fontStyle(f Font) string {
	if f.Bold {
		return "B"
	}
	return ""
}

func (d *pdfDocument) Width(text string, font Font) float64 {
	d.pdf.SetFont(FontFamily, fontStyle(font), font.Size)
	clean, _ := d.glyphs.sanitize(text)
	return d.pdf.GetStringWidth(clean)
}

// draw переносит буфер страниц в fpdf. Вызывается после обоих проходов отделки.
func (d *pdfDocument) draw(pages []*Page) error {
	for _, p := range pages {
		d.pdf.AddPage()
		for _, op := range p.Ops {
			switch o := op.(type) {
			case TextOp:
				d.pdf.SetFont(FontFamily, fontStyle(o.Font), o.Font.Size)
				d.pdf.SetTextColor(o.Color.R, o.Color.G, o.Color.B)
				clean, n := d.glyphs.sanitize(o.Text)
				d.replaced += n
				d.pdf.Text(o.X, o.Y, clean)
			case LineOp:
				d.pdf.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
				d.pdf.SetLineWidth(o.Width)
				d.pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
			case RectOp:
				d.rect(o)
			default:
				return fmt.Errorf("page %d: unsupported draw op %T", p.Number, op)
			}
		}
	}
	if d.pdf.Err() {
		return d.pdf.Error()
	}
	return nil
}

func (d *pdfDocument) rect(o RectOp) {
	style := ""
	if o.Fill != nil {
		d.pdf.SetFillColor(o.Fill.R, o.Fill.G, o.Fill.B)
		style += "F"
	}
	if o.Stroke != nil {
		d.pdf.SetDrawColor(o.Stroke.R, o.Stroke.G, o.Stroke.B)
		d.pdf.SetLineWidth(0.75)
		style += "D"
	}
	if style == "" {
		return
	}
	if o.Dashed {
		d.pdf.SetDashPattern([]float64{4, 3}, 0)
		defer d.pdf.SetDashPattern([]float64{}, 0)
	}
	d.pdf.Rect(o.X, o.Y, o.W, o.H, style)
}

func (d *pdfDocument) output(w io.Writer) error {
	return d.pdf.Output(w)
}
