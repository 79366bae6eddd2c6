package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const starSymbol = "path://M50,0 L61,35 L98,35 L68,57 L79,91 L50,70 L21,91 L32,57 L2,35 L39,35 Z"

const tooltipCSS = `<style>
.tooltip-item td { padding: 0 4px; }
.tooltip-square { width: 10px; height: 10px; display: inline-block; }
.right { text-align: right; }
.glow { color: #ffffff; text-shadow: 0 0 5px #ffffff; font-weight: bold; }
</style>
`

// ChartID is the page element id of a part's chart.
func ChartID(p *Panel) string {
	return "chart" + p.Part.Key()
}

// RenderHTML writes a standalone page holding one interactive line chart per
// panel. Tooltip markup is shipped once in a script table and looked up by the
// hovered series and day.
func RenderHTML(w io.Writer, pageTitle string, panels []*Panel) error {
	if len(panels) == 0 {
		return ErrNoData
	}

	page := components.NewPage()
	page.PageTitle = pageTitle

	tooltips := make(map[string][][]string, len(panels))
	for _, p := range panels {
		id := ChartID(p)
		page.AddCharts(newLineChart(id, p))
		tooltips[id] = tooltipTable(p)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	table, err := json.Marshal(tooltips)
	if err != nil {
		return fmt.Errorf("encode tooltips: %w", err)
	}
	head := tooltipCSS + "<script>var aocTooltips = " + string(table) + ";</script>\n"
	html := strings.Replace(scriptSafe(buf.String(), panels), "</head>", head+"</head>", 1)

	_, err = io.WriteString(w, html)
	return err
}

func newLineChart(id string, p *Panel) *charts.Line {
	line := charts.NewLine()
	baseText := &opts.TextStyle{Color: textColor, FontSize: 16}

	colors := make([]string, 0, len(p.Columns))
	for _, c := range p.Columns {
		colors = append(colors, c.Color)
	}

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:         id,
			Width:           "100%",
			Height:          "900px",
			BackgroundColor: backgroundColor,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      p.Title,
			TitleStyle: baseText,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
			// Chart ids are plain identifiers; quotes would not survive
			// the function-string encoding.
			Formatter: opts.FuncOpts(fmt.Sprintf("function (p) { return aocTooltips.%s[p.seriesIndex][p.dataIndex]; }", id)),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Bottom:    "0",
			TextStyle: baseText,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:    p.Axis,
			Type:    "log",
			Inverse: opts.Bool(true),
		}),
		charts.WithColorsOpts(opts.Colors(colors)),
	)

	labels := make([]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		labels = append(labels, r.Label)
	}
	line.SetXAxis(labels)

	for i, col := range p.Columns {
		line.AddSeries(col.Label, seriesData(p, i),
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(true),
				ShowSymbol: opts.Bool(true),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: 3}),
		)
	}
	return line
}

// seriesData returns column i of the panel. Absent cells use echarts' "-"
// gap marker. A log axis cannot place zero, so zero is drawn at one second.
func seriesData(p *Panel, i int) []opts.LineData {
	out := make([]opts.LineData, 0, len(p.Rows))
	for _, r := range p.Rows {
		c := r.Cells[i]
		if c.Seconds == nil {
			out = append(out, opts.LineData{Value: "-"})
			continue
		}
		v := *c.Seconds
		if v < 1 {
			v = 1
		}
		out = append(out, opts.LineData{Value: v, Symbol: starSymbol, SymbolSize: 15})
	}
	return out
}

// tooltipTable indexes tooltips by [series][day].
func tooltipTable(p *Panel) [][]string {
	out := make([][]string, len(p.Columns))
	for i := range p.Columns {
		out[i] = make([]string, len(p.Rows))
		for j, r := range p.Rows {
			out[i][j] = r.Cells[i].Tooltip
		}
	}
	return out
}

// scriptSafe re-encodes the panel strings that go-echarts writes into its
// inline scripts without HTML escaping. A member named "</script>" would
// otherwise close the chart script.
func scriptSafe(page string, panels []*Panel) string {
	for _, p := range panels {
		for _, s := range panelStrings(p) {
			raw, err := jsonString(s, false)
			if err != nil {
				continue
			}
			safe, err := jsonString(s, true)
			if err != nil || raw == safe {
				continue
			}
			page = strings.ReplaceAll(page, raw, safe)
		}
	}
	return page
}

func panelStrings(p *Panel) []string {
	out := []string{p.Title, p.Axis}
	for _, c := range p.Columns {
		out = append(out, c.Label)
	}
	for _, r := range p.Rows {
		out = append(out, r.Label)
	}
	return out
}

func jsonString(s string, escapeHTML bool) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(escapeHTML)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
