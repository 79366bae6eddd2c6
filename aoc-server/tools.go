package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aoc-star-charts/internal/chart"
	"aoc-star-charts/internal/ledger"
	"aoc-star-charts/internal/model"
	"aoc-star-charts/internal/reconcile"
	"aoc-star-charts/internal/store"
	"aoc-star-charts/internal/timerange"
	"aoc-star-charts/internal/tooltip"
)

type ServerConfig struct {
	Leaderboard string
	Location    *time.Location
	StartHour   int
	Locale      string
	Translator  chart.Translator
}

func (cfg ServerConfig) options(locale string) chart.Options {
	if strings.TrimSpace(locale) == "" {
		locale = cfg.Locale
	}
	return chart.Options{
		Location:   cfg.Location,
		StartHour:  cfg.StartHour,
		Locale:     locale,
		Translator: cfg.Translator,
	}
}

func loadLedger(cfg ServerConfig, path string) (*model.Leaderboard, *ledger.Ledger, error) {
	if strings.TrimSpace(path) == "" {
		path = cfg.Leaderboard
	}
	if path == "" {
		return nil, nil, fmt.Errorf("leaderboard path is required")
	}
	board, err := store.NewJSONStore(".").ReadLeaderboard(path)
	if err != nil {
		return nil, nil, err
	}
	return board, ledger.Build(board), nil
}

func parsePart(p int) (model.Part, error) {
	part := model.Part(p)
	if !part.Valid() {
		return 0, fmt.Errorf("part must be 1 or 2, got %d", p)
	}
	return part, nil
}

type standingsEntry struct {
	Rank       int            `json:"rank"`
	ID         model.MemberID `json:"id"`
	Name       string         `json:"name"`
	LocalScore int            `json:"local_score"`
	Stars      int            `json:"stars"`
	Color      string         `json:"color"`
}

func buildStandings(cfg ServerConfig, path string) ([]byte, error) {
	board, l, err := loadLedger(cfg, path)
	if err != nil {
		return nil, err
	}
	out := make([]standingsEntry, 0, len(l.Participants))
	for i, p := range l.Participants {
		out = append(out, standingsEntry{
			Rank:       i + 1,
			ID:         p.ID,
			Name:       p.Name,
			LocalScore: p.LocalScore,
			Stars:      p.StarCount(),
			Color:      chart.ColorAt(chart.Palette, i),
		})
	}
	return json.MarshalIndent(map[string]any{
		"event":        board.Event,
		"participants": out,
	}, "", "  ")
}

type dayRangeOut struct {
	timerange.DayTimeRange
	Start *int64 `json:"start,omitempty"`
}

func buildDayRanges(cfg ServerConfig, path string) ([]byte, error) {
	_, l, err := loadLedger(cfg, path)
	if err != nil {
		return nil, err
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	ranges := l.Ranges.Ranges()
	out := make([]dayRangeOut, 0, len(ranges))
	for _, r := range ranges {
		d := dayRangeOut{DayTimeRange: r}
		if start, ok := l.Ranges.StartOffset(r.Day, loc, cfg.StartHour); ok {
			d.Start = &start
		}
		out = append(out, d)
	}
	return json.MarshalIndent(map[string]any{"days": out}, "", "  ")
}

func buildChartRows(cfg ServerConfig, args ChartRowsArgs) ([]byte, error) {
	part, err := parsePart(args.Part)
	if err != nil {
		return nil, err
	}
	_, l, err := loadLedger(cfg, args.Leaderboard)
	if err != nil {
		return nil, err
	}
	panel, err := chart.BuildPanel(l, part, cfg.options(args.Locale))
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(panel, "", "  ")
}

func buildTooltip(cfg ServerConfig, args TooltipArgs) ([]byte, error) {
	part, err := parsePart(args.Part)
	if err != nil {
		return nil, err
	}
	_, l, err := loadLedger(cfg, args.Leaderboard)
	if err != nil {
		return nil, err
	}
	if _, ok := l.Ranges.Range(args.Day); !ok {
		return nil, fmt.Errorf("day not found: %d", args.Day)
	}

	o := cfg.options(args.Locale)
	loc := o.Location
	if loc == nil {
		loc = time.Local
	}
	start, _ := l.Ranges.StartOffset(args.Day, loc, o.StartHour)

	html, err := tooltip.Build(tooltip.Input{
		Day:          args.Day,
		Part:         part,
		Start:        start,
		Participants: l.Participants,
		Colors:       chart.Palette,
		Highlight:    model.MemberID(args.MemberID),
		Labels:       o.TooltipLabels(args.Day),
	})
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(map[string]any{
		"day":   args.Day,
		"part":  args.Part,
		"start": start,
		"html":  html,
	}, "", "  ")
}

func buildReconcile(cfg ServerConfig, path string) ([]byte, error) {
	board, l, err := loadLedger(cfg, path)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(reconcile.BuildReport(board, l), "", "  ")
}

func formatElapsed(seconds int64) ([]byte, error) {
	e := tooltip.FormatElapsed(seconds)
	return json.MarshalIndent(map[string]any{
		"seconds":   seconds,
		"formatted": e.String(),
		"parts":     e,
	}, "", "  ")
}
