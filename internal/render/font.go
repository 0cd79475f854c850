package render

import (
	_ "embed"
	"strings"
	"sync"

	"golang.org/x/image/font/sfnt"
)

// DejaVu Sans Condensed покрывает латиницу с диакритикой, кириллицу и греческий.
// Шрифты встраиваются в PDF подмножеством использованных символов.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

// ReplacementRune заменяет символы, для которых в шрифте нет глифа
const ReplacementRune = '?'

var parseFont = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(fontRegular)
})

// glyphs проверяет покрытие символов встроенным шрифтом.
// Жирное начертание покрывает тот же набор, проверяется только обычное.
type glyphs struct {
	font  *sfnt.Font
	buf   sfnt.Buffer
	cache map[rune]bool
}

func newGlyphs() (*glyphs, error) {
	f, err := parseFont()
	if err != nil {
		return nil, err
	}
	return &glyphs{font: f, cache: make(map[rune]bool)}, nil
}

func (g *glyphs) covers(r rune) bool {
	// fpdf хранит ширины только для базовой плоскости
	if r > 0xFFFF {
		return false
	}
	if ok, found := g.cache[r]; found {
		return ok
	}
	idx, err := g.font.GlyphIndex(&g.buf, r)
	ok := err == nil && idx != 0
	g.cache[r] = ok
	return ok
}

// sanitize возвращает строку, которую шрифт может нарисовать, и число замененных символов
func (g *glyphs) sanitize(s string) (string, int) {
	replaced := 0
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r < ' ':
			replaced++
			return ReplacementRune
		case !g.covers(r):
			replaced++
			return ReplacementRune
		}
		return r
	}, s)
	return clean, replaced
}
