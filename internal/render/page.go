package render

// Font - начертание и размер текста
type Font struct {
	Bold bool
	Size float64
}

// Op - команда рисования на странице
type Op interface {
	op()
}

// TextOp - строка текста; Y - базовая линия
type TextOp struct {
	X, Y  float64
	Text  string
	Font  Font
	Color Color
}

type LineOp struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          Color
}

// RectOp - прямоугольник; Fill и Stroke необязательны
type RectOp struct {
	X, Y, W, H float64
	Fill       *Color
	Stroke     *Color
	Dashed     bool
}

func (TextOp) op() {}
func (LineOp) op() {}
func (RectOp) op() {}

// Page - страница в буфере рендерера, номер с единицы
type Page struct {
	Number int
	Ops    []Op
}

func (p *Page) add(op Op) {
	p.Ops = append(p.Ops, op)
}

// Texts возвращает все строки текста страницы в порядке рисования
func (p *Page) Texts() []string {
	var out []string
	for _, op := range p.Ops {
		if t, ok := op.(TextOp); ok {
			out = append(out, t.Text)
		}
	}
	return out
}
