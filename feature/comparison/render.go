package comparison

import (
	"html/template"
	"io"
	"strings"

	"table-reconciler/core/reconcile"
	"table-reconciler/core/utils"
)

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Source}} vs {{.Destination}}</title>
<style>
body {font-family: sans-serif;}
table {border-collapse: collapse;}
td, th {padding: 8px; border: 1px solid black;}
td.eq {background-color: #9be59b;}
td.diff {background-color: #f5e663;}
.side {flex: 1; padding-right: 20px;}
</style>
</head>
<body>
<p>Compared by <b>{{.CompareBy}}</b> ({{.Mode}}): {{.Summary.Exact}} exact, {{.Summary.Partial}} partial, {{.Summary.SourceOnly}} source only, {{.Summary.DestinationOnly}} destination only.</p>
<div style="display: flex;">
{{range .Sides}}<div class="side">
<h3>{{.Title}} (Matches on Top)</h3>
<table>
<tr><th>#</th>{{range $.Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr><th>{{.Index}}</th>{{range .Cells}}<td class="{{if .Differs}}diff{{else}}eq{{end}}">{{.Value}}</td>{{end}}</tr>
{{end}}</table>
</div>
{{end}}</div>
</body>
</html>
`))

type htmlCell struct {
	Value   string
	Differs bool
}

type htmlRow struct {
	Index int
	Cells []htmlCell
}

type htmlSide struct {
	Title string
	Rows  []htmlRow
}

type htmlPage struct {
	Source      string
	Destination string
	CompareBy   string
	Mode        reconcile.MatchMode
	Columns     []string
	Summary     reconcile.Summary
	Sides       []htmlSide
}

// RenderHTML writes the report as two side by side tables. Matched rows come
// first with each pair on the same line, followed by the unmatched rows of
// each side. Equal cells are green and differing cells yellow.
func RenderHTML(w io.Writer, r *reconcile.Report) error {
	var srcMatched, srcOnly, dstMatched, dstOnly []htmlRow
	for _, o := range r.Outcomes {
		switch o.Kind {
		case reconcile.KindMatched:
			srcMatched = append(srcMatched, htmlRowOf(r, o.Source, o.Diff))
			dstMatched = append(dstMatched, htmlRowOf(r, o.Destination, o.Diff))
		case reconcile.KindSourceOnly:
			srcOnly = append(srcOnly, htmlRowOf(r, o.Source, o.Diff))
		case reconcile.KindDestinationOnly:
			dstOnly = append(dstOnly, htmlRowOf(r, o.Destination, o.Diff))
		}
	}

	page := htmlPage{
		Source:      r.Source,
		Destination: r.Destination,
		CompareBy:   strings.Join(r.CompareBy, ", "),
		Mode:        r.Mode,
		Columns:     r.Columns,
		Summary:     r.Summary,
		Sides: []htmlSide{
			{Title: "Source Data: " + r.Source, Rows: append(srcMatched, srcOnly...)},
			{Title: "Destination Data: " + r.Destination, Rows: append(dstMatched, dstOnly...)},
		},
	}
	return pageTemplate.Execute(w, page)
}

func htmlRowOf(r *reconcile.Report, row *reconcile.Row, diff reconcile.DiffMask) htmlRow {
	values := r.Cells(row)
	cells := make([]htmlCell, len(values))
	for i, v := range values {
		cells[i] = htmlCell{Value: displayValue(v), Differs: i < len(diff) && diff[i]}
	}
	return htmlRow{Index: row.Index, Cells: cells}
}

func displayValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return utils.ToString(v)
}
