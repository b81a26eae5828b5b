// Command session-report prints a terminal summary of one race session:
// per-driver pace statistics and reconstructed tyre stints.
//
// Usage:
//
//	go run ./cmd/tools/session-report [flags]
//
// Flags:
//
//	-provider  Base URL of the timing-data provider (default: http://localhost:8765)
//	-year      Season year (required)
//	-round     Round number (required)
//	-session   Session identifier (default: R)
//	-driver    Restrict the stint table to one driver code
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pitwall-data/pitwall.report/internal/f1"
	"github.com/pitwall-data/pitwall.report/internal/httputil"
	"github.com/pitwall-data/pitwall.report/internal/laps"
	"github.com/pitwall-data/pitwall.report/internal/provider"
	"github.com/pitwall-data/pitwall.report/internal/stints"
	"github.com/pitwall-data/pitwall.report/internal/units"
)

func main() {
	providerURL := flag.String("provider", "http://localhost:8765", "Base URL of the timing-data provider")
	year := flag.Int("year", 0, "Season year (required)")
	round := flag.Int("round", 0, "Round number (required)")
	session := flag.String("session", "R", "Session identifier (FP1, FP2, FP3, Q, S, R)")
	driver := flag.String("driver", "", "Restrict the stint table to one driver code")
	flag.Parse()

	if *year < 1950 || *round < 1 {
		log.Fatal("Error: -year and -round flags are required")
	}
	if !provider.ValidSessionType(*session) {
		log.Fatalf("Error: unknown session type %q", *session)
	}

	client := provider.NewClient(*providerURL, httputil.NewStandardClient(&http.Client{Timeout: 2 * time.Minute}))
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	sess, err := client.LoadSession(ctx, *year, *round, *session)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	fmt.Printf("%s (%s, round %d, %s)\n\n", sess.Event.Name, sess.Event.Circuit, sess.Round, sess.SessionType)
	printPaceTable(sess)
	fmt.Println()
	printStintTables(sess, *driver)
}

type driverPace struct {
	code  string
	stats laps.PaceStats
}

func printPaceTable(sess *f1.Session) {
	paces := make([]driverPace, 0, len(sess.Laps))
	for code, driverLaps := range sess.Laps {
		stats, err := laps.Stats(laps.Normalize(driverLaps))
		if err != nil {
			continue
		}
		paces = append(paces, driverPace{code: code, stats: stats})
	}
	sort.Slice(paces, func(i, j int) bool { return paces[i].stats.FastestLap < paces[j].stats.FastestLap })

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"DRIVER", "FASTEST", "MEDIAN", "MEAN", "STD", "TIMED LAPS"})
	for _, p := range paces {
		t.AppendRow(table.Row{
			p.code,
			units.FormatLapTime(p.stats.FastestLap),
			units.FormatLapTime(p.stats.MedianPace),
			units.FormatLapTime(p.stats.MeanPace),
			fmt.Sprintf("%.3f", p.stats.StdPace),
			p.stats.TimedLaps,
		})
	}
	t.Render()
}

func printStintTables(sess *f1.Session, only string) {
	codes := make([]string, 0, len(sess.Laps))
	for code := range sess.Laps {
		if only != "" && code != only {
			continue
		}
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		reconstructed := stints.Reconstruct(sess.Laps[code], sess.DriverPitStops(code))
		if len(reconstructed) == 0 {
			continue
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)
		t.SetTitle(code)
		t.AppendHeader(table.Row{"STINT", "COMPOUND", "LAPS", "BEST"})
		for i, st := range reconstructed {
			best := 0.0
			for _, lap := range st.Laps {
				if lap.Timed() && (best == 0 || *lap.Time < best) {
					best = *lap.Time
				}
			}
			t.AppendRow(table.Row{
				i + 1,
				string(st.Compound),
				fmt.Sprintf("%d-%d", st.StartLap, st.EndLap),
				units.FormatLapTime(best),
			})
		}
		t.Render()
		fmt.Println()
	}
}
