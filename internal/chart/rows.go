package chart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"aoc-star-charts/internal/i18n"
	"aoc-star-charts/internal/ledger"
	"aoc-star-charts/internal/model"
	"aoc-star-charts/internal/timerange"
	"aoc-star-charts/internal/tooltip"
)

// Translator renders localized labels.
type Translator interface {
	T(locale, key string, data map[string]any) string
}

type Options struct {
	Location   *time.Location
	StartHour  int
	Locale     string
	Translator Translator
	Colors     []string
}

func DefaultOptions() Options {
	return Options{
		Location:  time.Local,
		StartHour: timerange.DefaultStartHour,
	}
}

func (o Options) colors() []string {
	if len(o.Colors) == 0 {
		return Palette
	}
	return o.Colors
}

func (o Options) label(key string, data map[string]any, fallback string) string {
	if o.Translator == nil {
		return fallback
	}
	return o.Translator.T(o.Locale, key, data)
}

// TooltipLabels returns the localized tooltip header for day.
func (o Options) TooltipLabels(day int) tooltip.Labels {
	d := map[string]any{"Day": day}
	return tooltip.Labels{
		Day:     o.label(i18n.TooltipDay, d, "day "+strconv.Itoa(day)),
		Hours:   o.label(i18n.TooltipHours, nil, "h"),
		Minutes: o.label(i18n.TooltipMinutes, nil, "min"),
		Seconds: o.label(i18n.TooltipSeconds, nil, "s"),
	}
}

// Column is one participant series.
type Column struct {
	ID    model.MemberID `json:"id"`
	Label string         `json:"label"`
	Color string         `json:"color"`
}

// Cell is one participant's value on one day. Seconds is nil when the
// participant has no time for the part that day.
type Cell struct {
	Seconds *int64 `json:"seconds"`
	Tooltip string `json:"tooltip"`
}

type Row struct {
	Day   int    `json:"day"`
	Label string `json:"label"`
	Start *int64 `json:"start,omitempty"`
	Cells []Cell `json:"cells"`
}

// Panel is everything needed to draw one part's chart.
type Panel struct {
	Part    model.Part `json:"part"`
	Title   string     `json:"title"`
	Axis    string     `json:"axis"`
	Columns []Column   `json:"columns"`
	Rows    []Row      `json:"rows"`
}

// Columns labels each participant "<score> <name>" in score order.
func Columns(l *ledger.Ledger, colors []string) []Column {
	out := make([]Column, 0, len(l.Participants))
	for i, p := range l.Participants {
		out = append(out, Column{
			ID:    p.ID,
			Label: fmt.Sprintf("%d %s", p.LocalScore, p.Name),
			Color: ColorAt(colors, i),
		})
	}
	return out
}

// BuildRows produces one row per tracked day, ascending.
func BuildRows(l *ledger.Ledger, part model.Part, o Options) ([]Row, error) {
	if !part.Valid() {
		return nil, ErrInvalidPart
	}
	loc := o.Location
	if loc == nil {
		loc = time.Local
	}
	colors := o.colors()

	days := l.Ranges.Days()
	rows := make([]Row, 0, len(days))
	for _, day := range days {
		row := Row{
			Day:   day,
			Label: o.label(i18n.ChartRow, map[string]any{"Day": day}, "day "+strconv.Itoa(day)),
			Cells: make([]Cell, 0, len(l.Participants)),
		}

		start, hasStart := l.Ranges.StartOffset(day, loc, o.StartHour)
		if hasStart {
			s := start
			row.Start = &s
		}

		ranked := tooltip.Rank(l.Participants, part, day, start, colors)
		labels := o.TooltipLabels(day)

		for _, p := range l.Participants {
			var cell Cell
			if ts, ok := p.Time(part, day); ok && hasStart {
				secs := timerange.Elapsed(ts, start)
				cell.Seconds = &secs
			}
			tip, err := tooltip.Render(ranked, p.ID, labels)
			if err != nil {
				return nil, fmt.Errorf("tooltip day %d part %d: %w", day, part, err)
			}
			cell.Tooltip = tip
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func BuildPanel(l *ledger.Ledger, part model.Part, o Options) (*Panel, error) {
	rows, err := BuildRows(l, part, o)
	if err != nil {
		return nil, err
	}
	return &Panel{
		Part:    part,
		Title:   o.label(i18n.ChartTitle, map[string]any{"Part": int(part)}, "Part "+part.Key()),
		Axis:    o.label(i18n.ChartAxisSeconds, nil, "s"),
		Columns: Columns(l, o.colors()),
		Rows:    rows,
	}, nil
}

// BuildPanels builds the panels of both parts.
func BuildPanels(l *ledger.Ledger, o Options) ([]*Panel, error) {
	out := make([]*Panel, 0, len(model.Parts))
	for _, part := range model.Parts {
		p, err := BuildPanel(l, part, o)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func WritePanel(path string, p *Panel) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
