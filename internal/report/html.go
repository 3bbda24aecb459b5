// Package report renders packing results for people: a printable HTML cut
// plan with inline SVG layouts, a utilization chart and a terminal summary.
package report

import (
	"fmt"
	"html/template"
	"io"

	"github.com/piwi3910/BoardCut/internal/model"
)

type boardView struct {
	model.Board
	SVG template.HTML
}

type pageData struct {
	Result model.Result
	Boards []boardView
}

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"inc":   func(i int) int { return i + 1 },
}

var page = template.Must(template.New("report").Funcs(funcs).Parse(pageTemplate))

// WriteHTML writes the complete cut plan as a self-contained HTML page.
func WriteHTML(w io.Writer, result model.Result) error {
	data := pageData{Result: result}
	for _, b := range result.Boards {
		// BoardSVG escapes every piece name it embeds
		data.Boards = append(data.Boards, boardView{Board: b, SVG: template.HTML(BoardSVG(b, DefaultScale))})
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Optimized Cutting Plan</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #fff; }
        h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
        h2 { color: #34495e; margin-top: 0; }
        .summary { background: #ecf0f1; padding: 20px; border-radius: 8px; margin: 20px 0; }
        .summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; }
        .stat { background: white; padding: 15px; border-radius: 5px; border-left: 4px solid #3498db; }
        .stat-label { font-size: 0.9em; color: #7f8c8d; }
        .stat-value { font-size: 1.8em; font-weight: bold; color: #2c3e50; }
        .board { margin: 30px 0; padding: 20px; border: 2px solid #bdc3c7; border-radius: 8px; background: white; }
        .board-header { background: #3498db; color: white; padding: 10px; border-radius: 5px; margin-bottom: 15px; }
        .piece-item { padding: 8px; margin: 5px 0; background: #f8f9fa; }
        svg { border: 1px solid #ddd; border-radius: 5px; margin: 10px 0; background: white; }
        .print-button { background: #3498db; color: white; border: none; padding: 10px 20px; border-radius: 5px; cursor: pointer; font-size: 16px; margin: 10px 0; }
        .shopping-list { background: #fff3cd; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #ffc107; }
        .offcuts { background: #e8f6ef; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #27ae60; }
        .unplaced { background: #fdecea; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #e74c3c; }
        @media print {
            .print-button { display: none; }
            .board { page-break-after: always; }
        }
    </style>
</head>
<body>
    <h1>Optimized Cutting Plan</h1>
    <button class="print-button" onclick="window.print()">Print</button>

    <div class="shopping-list">
        <h2>Shopping list</h2>
        {{- range .Result.Stats.BoardsByType}}
        <div class="board-type"><strong>{{.Count}}x</strong> boards {{.Width}}×{{.Height}}mm, {{.Thickness}}mm thick @ {{money .Price}}/unit = <strong>{{money .Subtotal}}</strong></div>
        {{- end}}
        <div class="total"><strong>Total: {{money .Result.Stats.TotalCost}}</strong></div>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <div class="summary-grid">
            <div class="stat"><div class="stat-label">Boards</div><div class="stat-value">{{.Result.Stats.TotalBoards}}</div></div>
            <div class="stat"><div class="stat-label">Total cost</div><div class="stat-value">{{money .Result.Stats.TotalCost}}</div></div>
            <div class="stat"><div class="stat-label">Pieces to cut</div><div class="stat-value">{{.Result.Stats.TotalPieces}}</div></div>
            <div class="stat"><div class="stat-label">Utilization</div><div class="stat-value">{{pct .Result.Stats.Efficiency}}</div></div>
        </div>
    </div>
    {{- if .Result.Unplaced}}

    <div class="unplaced">
        <h2>Unplaced pieces ({{len .Result.Unplaced}})</h2>
        {{- range .Result.Unplaced}}
        <div class="piece-item">{{.Piece.Name}}: {{.Piece.Width}} × {{.Piece.Height}} mm, {{.Piece.Thickness}}mm thick ({{.Reason}})</div>
        {{- end}}
    </div>
    {{- end}}
    {{- if .Result.Offcuts}}

    <div class="offcuts">
        <h2>Reusable offcuts ({{len .Result.Offcuts}})</h2>
        {{- range .Result.Offcuts}}
        <div class="piece-item">Board #{{.BoardID}}: {{.Width}} × {{.Height}} mm, {{.Thickness}}mm thick at ({{.X}}, {{.Y}}), worth {{money .Value}}</div>
        {{- end}}
    </div>
    {{- end}}
    {{- range .Boards}}

    <div class="board">
        <div class="board-header">
            <h3>Board #{{.ID}}: {{.Width}}×{{.Height}}mm, {{.Thickness}}mm thick (utilization {{pct .Efficiency}})</h3>
        </div>
        {{.SVG}}
        <div class="piece-list">
            <h4>Cut list ({{len .Pieces}} pieces):</h4>
            {{- range $i, $p := .Pieces}}
            <div class="piece-item"><strong>{{inc $i}}. {{$p.Piece.Name}}</strong> - {{$p.PlacedWidth}} × {{$p.PlacedHeight}} mm{{if $p.Rotated}} ↻ <em>(rotated 90°)</em>{{end}} at ({{$p.X}}, {{$p.Y}})</div>
            {{- end}}
        </div>
    </div>
    {{- end}}
</body>
</html>
`
