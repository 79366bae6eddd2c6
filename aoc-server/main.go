package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"aoc-star-charts/internal/config"
	"aoc-star-charts/internal/i18n"
)

type LeaderboardArgs struct {
	Leaderboard string `json:"leaderboard,omitempty" jsonschema:"Leaderboard JSON path (default from server config)"`
}

type ChartRowsArgs struct {
	Leaderboard string `json:"leaderboard,omitempty" jsonschema:"Leaderboard JSON path (default from server config)"`
	Part        int    `json:"part" jsonschema:"Puzzle part: 1 or 2 (required)"`
	Locale      string `json:"locale,omitempty" jsonschema:"Label locale: en|fr (default from server config)"`
}

type TooltipArgs struct {
	Leaderboard string `json:"leaderboard,omitempty" jsonschema:"Leaderboard JSON path (default from server config)"`
	Day         int    `json:"day" jsonschema:"Puzzle day (required)"`
	Part        int    `json:"part" jsonschema:"Puzzle part: 1 or 2 (required)"`
	MemberID    string `json:"member_id,omitempty" jsonschema:"Member to emphasize"`
	Locale      string `json:"locale,omitempty" jsonschema:"Label locale: en|fr (default from server config)"`
}

type FormatElapsedArgs struct {
	Seconds int64 `json:"seconds" jsonschema:"Elapsed seconds"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var (
		boardPath = flag.String("leaderboard", cfg.Leaderboard, "default leaderboard JSON export")
		tz        = flag.String("tz", cfg.Timezone, "time zone for day start anchors (empty = local)")
		startHour = flag.Int("start-hour", cfg.StartHour, "hour of day elapsed times are measured from")
		locale    = flag.String("locale", cfg.Locale, "default label locale (en|fr)")
	)
	flag.Parse()

	cfg.Leaderboard = *boardPath
	cfg.Timezone = *tz
	cfg.StartHour = *startHour
	cfg.Locale = *locale
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	sc := ServerConfig{
		Leaderboard: cfg.Leaderboard,
		Location:    cfg.Location,
		StartHour:   cfg.StartHour,
		Locale:      cfg.Locale,
		Translator:  i18n.NewTranslator(cfg.Locale),
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "aoc-star-charts",
			Version: "0.1.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 8)

	addTool(server, &registry, &mcp.Tool{
		Name:        "standings",
		Description: "Participants in chart order (descending local score) with recorded star counts",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeaderboardArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildStandings(sc, args.Leaderboard))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "day_ranges",
		Description: "Per-day min/max completion timestamps per part and the derived day start",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeaderboardArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildDayRanges(sc, args.Leaderboard))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "chart_rows",
		Description: "Chart-ready rows of elapsed seconds and tooltip markup for one part",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ChartRowsArgs) (*mcp.CallToolResult, any, error) {
		if args.Part == 0 {
			return toolError(fmt.Errorf("part is required")), nil, nil
		}
		return toolJSON(buildChartRows(sc, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "tooltip",
		Description: "Ranked tooltip markup for one day and part",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TooltipArgs) (*mcp.CallToolResult, any, error) {
		if args.Day == 0 || args.Part == 0 {
			return toolError(fmt.Errorf("day and part are required")), nil, nil
		}
		return toolJSON(buildTooltip(sc, args))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "reconcile",
		Description: "Members whose reported stars disagree with parsed timestamps",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeaderboardArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(buildReconcile(sc, args.Leaderboard))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "format_elapsed",
		Description: "Format elapsed seconds the way tooltips show them",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FormatElapsedArgs) (*mcp.CallToolResult, any, error) {
		return toolJSON(formatElapsed(args.Seconds))
	})

	log.Printf("MCP stdio server ready with %d tools (leaderboard=%s)", len(registry), sc.Leaderboard)
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(res), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
