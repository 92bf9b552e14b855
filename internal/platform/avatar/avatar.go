package avatar

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"image/color"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const Size = 256

var defaultPalette = []string{
	"#E57373", "#F06292", "#BA68C8", "#9575CD",
	"#7986CB", "#64B5F6", "#4FC3F7", "#4DD0E1",
	"#4DB6AC", "#81C784", "#AED581", "#FFB74D",
	"#FF8A65", "#A1887F", "#90A4AE",
}

// Renderer draws circular initials avatars on a palette background.
type Renderer struct {
	palette    []color.NRGBA
	colorByHex map[string]color.NRGBA
	hexes      []string
	face       font.Face
}

// NewRenderer loads fontPath when set, otherwise the bundled Go Regular face.
func NewRenderer(fontPath string) (*Renderer, error) {
	fontBytes := goregular.TTF
	if p := strings.TrimSpace(fontPath); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		fontBytes = b
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsed, &truetype.Options{
		Size:    Size * 0.4,
		DPI:     72,
		Hinting: font.HintingNone,
	})

	r := &Renderer{face: face, colorByHex: map[string]color.NRGBA{}}
	for _, h := range defaultPalette {
		c, err := parseHex(h)
		if err != nil {
			return nil, err
		}
		r.palette = append(r.palette, c)
		r.colorByHex[h] = c
		r.hexes = append(r.hexes, h)
	}
	return r, nil
}

// ColorFor keeps current when it is a palette color, otherwise picks one
// deterministically from seed.
func (r *Renderer) ColorFor(current, seed string) string {
	if h := NormalizeHex(current); h != "" {
		if _, ok := r.colorByHex[h]; ok {
			return h
		}
	}
	f := fnv.New32a()
	_, _ = f.Write([]byte(seed))
	return r.hexes[int(f.Sum32()%uint32(len(r.hexes)))]
}

// Render returns a PNG of the initials on colorHex.
func (r *Renderer) Render(first, last, colorHex string) ([]byte, error) {
	bg, ok := r.colorByHex[NormalizeHex(colorHex)]
	if !ok {
		bg = r.palette[0]
		if c, err := parseHex(NormalizeHex(colorHex)); err == nil {
			bg = c
		}
	}

	dc := gg.NewContext(Size, Size)
	dc.DrawCircle(Size/2, Size/2, Size/2)
	dc.Clip()
	dc.SetColor(bg)
	dc.DrawRectangle(0, 0, Size, Size)
	dc.Fill()

	dc.SetFontFace(r.face)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(Initials(first, last), Size/2, Size/2, 0.5, 0.35)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func Initials(first, last string) string {
	return initial(first) + initial(last)
}

func initial(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "?"
	}
	ch, _ := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(ch))
}

func NormalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	s = strings.ToUpper(s)
	if _, err := parseHex(s); err != nil {
		return ""
	}
	return s
}

func parseHex(s string) (color.NRGBA, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
	if err != nil || len(raw) != 3 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xFF}, nil
}
