package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"

	"aoc-star-charts/internal/chart"
	"aoc-star-charts/internal/config"
	"aoc-star-charts/internal/i18n"
	"aoc-star-charts/internal/ledger"
	"aoc-star-charts/internal/reconcile"
	"aoc-star-charts/internal/store"
)

var errNoLeaderboard = errors.New("leaderboard export not found; pass --leaderboard or set AOC_LEADERBOARD")

type stages struct {
	derived   bool
	png       bool
	pngWidth  int
	pngHeight int
	reconcile bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var (
		boardPath   = flag.String("leaderboard", cfg.Leaderboard, "leaderboard JSON export")
		outDir      = flag.String("out", cfg.OutDir, "output directory")
		tz          = flag.String("tz", cfg.Timezone, "time zone for day start anchors (empty = local)")
		startHour   = flag.Int("start-hour", cfg.StartHour, "hour of day elapsed times are measured from")
		locale      = flag.String("locale", cfg.Locale, "label locale (en|fr)")
		writeJSON   = flag.Bool("derived", true, "write ledger and chart rows JSON next to the page")
		writePNG    = flag.Bool("png", false, "also write static PNG snapshots")
		pngWidth    = flag.Int("png-width", 1600, "PNG width in pixels")
		pngHeight   = flag.Int("png-height", 900, "PNG height in pixels")
		reconcileOn = flag.Bool("reconcile", true, "compare reported star counts with parsed timestamps")
	)
	flag.Parse()

	cfg.Leaderboard = *boardPath
	cfg.OutDir = *outDir
	cfg.Timezone = *tz
	cfg.StartHour = *startHour
	cfg.Locale = *locale
	must(cfg.Validate())

	must(run(cfg, stages{
		derived:   *writeJSON,
		png:       *writePNG,
		pngWidth:  *pngWidth,
		pngHeight: *pngHeight,
		reconcile: *reconcileOn,
	}))
	log.Println("Done.")
}

// run reads the leaderboard named by cfg and writes the page plus the
// enabled derived outputs into cfg.OutDir.
func run(cfg *config.Config, st stages) error {
	in := store.NewJSONStore(".")
	if !in.Exists(cfg.Leaderboard) {
		return errNoLeaderboard
	}
	board, err := in.ReadLeaderboard(cfg.Leaderboard)
	if err != nil {
		return err
	}

	l := ledger.Build(board)
	log.Printf("Loaded %d participants over %d days\n", len(l.Participants), len(l.Ranges.Days()))

	tr := i18n.NewTranslator(cfg.Locale)
	opts := chart.Options{
		Location:   cfg.Location,
		StartHour:  cfg.StartHour,
		Locale:     cfg.Locale,
		Translator: tr,
	}

	panels, err := chart.BuildPanels(l, opts)
	if err != nil {
		return err
	}

	out := store.NewJSONStore(cfg.OutDir)
	var page bytes.Buffer
	title := tr.T(cfg.Locale, i18n.PageTitle, map[string]any{"Event": board.Event})
	if err := chart.RenderHTML(&page, title, panels); err != nil {
		return err
	}
	if err := out.WriteRaw("index.html", page.Bytes()); err != nil {
		return err
	}
	log.Printf("Wrote %s\n", out.Path("index.html"))

	if st.derived {
		if err := ledger.WriteLedger(out.Path("ledger.json"), l); err != nil {
			return err
		}
		for _, p := range panels {
			if err := chart.WritePanel(out.Path(fmt.Sprintf("rows_part%d.json", p.Part)), p); err != nil {
				return err
			}
		}
	}

	if st.png {
		for _, p := range panels {
			if err := writePanelPNG(out, p, st.pngWidth, st.pngHeight); err != nil {
				if errors.Is(err, chart.ErrNoData) {
					log.Printf("part %d: no completions, PNG skipped\n", p.Part)
					continue
				}
				return err
			}
		}
	}

	if st.reconcile {
		report := reconcile.BuildReport(board, l)
		for _, e := range report.Entries {
			log.Printf("reconcile: %s (%s) reported=%d counted=%d p2-before-p1=%v p2-only=%v\n",
				e.Name, e.ID, e.ReportedStars, e.CountedStars, e.Part2BeforePart1, e.Part2WithoutPart1)
		}
		if st.derived {
			if err := reconcile.WriteReport(out.Path("reconcile.json"), report); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePanelPNG(out *store.JSONStore, p *chart.Panel, width, height int) error {
	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, p, width, height); err != nil {
		return fmt.Errorf("part %d png: %w", p.Part, err)
	}
	return out.WriteRaw(fmt.Sprintf("part%d.png", p.Part), buf.Bytes())
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
