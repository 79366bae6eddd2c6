// Package tooltip renders the ranked HTML tooltip shown when hovering a
// participant's point on a star chart.
package tooltip

import (
	"html/template"
	"sort"
	"strings"

	"aoc-star-charts/internal/model"
	"aoc-star-charts/internal/timerange"
)

// Labels are the already-localized header cells.
type Labels struct {
	Day     string
	Hours   string
	Minutes string
	Seconds string
}

func DefaultLabels(dayLabel string) Labels {
	return Labels{Day: dayLabel, Hours: "h", Minutes: "min", Seconds: "s"}
}

// Row is one ranked line of a tooltip.
type Row struct {
	ID      model.MemberID
	Name    string
	Color   string
	Index   int
	TS      int64
	Seconds int64
	Elapsed Elapsed
}

// Input describes one (day, part) tooltip. Participants must already be in
// score order; their position selects the color.
type Input struct {
	Day          int
	Part         model.Part
	Start        int64
	Participants []model.Participant
	Colors       []string
	Highlight    model.MemberID
	Labels       Labels
}

// Rank lists every participant with a time for (part, day), fastest first.
// Ties keep score order.
func Rank(participants []model.Participant, part model.Part, day int, start int64, colors []string) []Row {
	rows := make([]Row, 0, len(participants))
	for i, p := range participants {
		ts, ok := p.Time(part, day)
		if !ok {
			continue
		}
		secs := timerange.Elapsed(ts, start)
		rows = append(rows, Row{
			ID:      p.ID,
			Name:    p.Name,
			Color:   colorAt(colors, i),
			Index:   i,
			TS:      ts,
			Seconds: secs,
			Elapsed: FormatElapsed(secs),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TS < rows[j].TS
	})
	return rows
}

func Build(in Input) (string, error) {
	rows := Rank(in.Participants, in.Part, in.Day, in.Start, in.Colors)
	return Render(rows, in.Highlight, in.Labels)
}

type tmplRow struct {
	Name    string
	Style   template.CSS
	Glow    bool
	Elapsed Elapsed
}

var tooltipTmpl = template.Must(template.New("tooltip").Parse(
	`<div style="width: 300px"><table>` +
		`<thead><tr><th></th><th style="text-align: left">{{.Labels.Day}}</th>` +
		`<th>{{.Labels.Hours}}</th><th>{{.Labels.Minutes}}</th><th>{{.Labels.Seconds}}</th></tr></thead>` +
		`<tbody>{{range .Rows}}<tr class="tooltip-item">` +
		`<td><div class="tooltip-square" style="{{.Style}}"></div></td>` +
		`<td class="{{if .Glow}}glow{{end}}">{{.Name}}</td>` +
		`<td class="right{{if .Glow}} glow{{end}}">{{.Elapsed.Hours}}</td>` +
		`<td class="right{{if .Glow}} glow{{end}}">{{.Elapsed.Minutes}}</td>` +
		`<td class="right{{if .Glow}} glow{{end}}">{{.Elapsed.Seconds}}</td>` +
		`</tr>{{end}}</tbody></table></div>`,
))

// Render produces the tooltip markup for pre-ranked rows, emphasizing the
// rows of highlight.
func Render(rows []Row, highlight model.MemberID, labels Labels) (string, error) {
	data := struct {
		Labels Labels
		Rows   []tmplRow
	}{Labels: labels, Rows: make([]tmplRow, 0, len(rows))}

	for _, r := range rows {
		data.Rows = append(data.Rows, tmplRow{
			Name:    r.Name,
			Style:   template.CSS("background-color: " + r.Color),
			Glow:    r.ID == highlight,
			Elapsed: r.Elapsed,
		})
	}

	var b strings.Builder
	if err := tooltipTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func colorAt(colors []string, i int) string {
	if len(colors) == 0 {
		return ""
	}
	return colors[i%len(colors)]
}
