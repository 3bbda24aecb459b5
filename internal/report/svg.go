package report

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/piwi3910/BoardCut/internal/model"
)

// DefaultScale is the SVG pixels per millimetre used by the HTML report.
const DefaultScale = 0.3

// palette cycles per piece index within a board.
var palette = []string{
	"#FFB6C1", "#87CEEB", "#98FB98", "#FFD700",
	"#DDA0DD", "#F0E68C", "#FFB347", "#B0E0E6",
}

// BoardSVG renders one board and its pieces as a standalone SVG element.
// Piece names are escaped.
func BoardSVG(board model.Board, scale float64) string {
	var sb strings.Builder
	w := board.Width * scale
	h := board.Height * scale

	fmt.Fprintf(&sb, `<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg">`, num(w), num(h))
	fmt.Fprintf(&sb, `<rect width="%s" height="%s" fill="#f5f5f5" stroke="#333" stroke-width="2"/>`, num(w), num(h))

	for i, p := range board.Pieces {
		x := p.X * scale
		y := p.Y * scale
		pw := p.PlacedWidth * scale
		ph := p.PlacedHeight * scale

		fmt.Fprintf(&sb, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="#333" stroke-width="1" opacity="0.8"/>`,
			num(x), num(y), num(pw), num(ph), palette[i%len(palette)])

		fontSize := math.Min(12, math.Min(pw/10, ph/5))
		cx := x + pw/2
		cy := y + ph/2

		fmt.Fprintf(&sb, `<text x="%s" y="%s" text-anchor="middle" font-size="%s" font-weight="bold" fill="#000">%s</text>`,
			num(cx), num(cy-5), num(fontSize), html.EscapeString(p.Piece.Name))
		fmt.Fprintf(&sb, `<text x="%s" y="%s" text-anchor="middle" font-size="%s" fill="#333">%g×%gmm</text>`,
			num(cx), num(cy+fontSize), num(fontSize*0.8), p.PlacedWidth, p.PlacedHeight)
		if p.Rotated {
			fmt.Fprintf(&sb, `<text x="%s" y="%s" text-anchor="middle" font-size="%s" fill="#d00">↻ rotated</text>`,
				num(cx), num(cy+fontSize*2), num(fontSize*0.7))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// num formats an SVG coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
