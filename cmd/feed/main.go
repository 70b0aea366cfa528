// Command feed prints one day's meal feed. With --follow it keeps the
// feed live while scans or ingredient images are still settling,
// printing each refresh.
//
// Flags:
//
//	--date    target day, YYYY-MM-DD (default: today)
//	--follow  keep polling while something is pending
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/plateful/mealscan/internal/app"
	"github.com/plateful/mealscan/internal/service/feed"
)

func main() {
	dateFlag := flag.String("date", time.Now().Format("2006-01-02"), "target day, YYYY-MM-DD")
	followFlag := flag.Bool("follow", false, "keep polling while something is pending")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	a, err := app.New(ctx, app.Options{})
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer a.Close()

	logger := a.Log
	ctx = a.Context(ctx)

	updates := make(chan feed.Snapshot, 1)
	if *followFlag {
		a.Feed.OnUpdate(func(s feed.Snapshot) {
			select {
			case updates <- s:
			default:
			}
		})
	}

	snap := a.Feed.SetDate(ctx, *dateFlag)
	if snap.Err != nil {
		logger.Error("fetch feed", slog.String("error", snap.Err.Error()))
		os.Exit(1)
	}
	printSnapshot(snap)

	if !*followFlag {
		return
	}

	for a.Feed.IsActive() {
		select {
		case s := <-updates:
			if s.Err != nil {
				logger.Warn("refresh failed, feed is stale", slog.String("error", s.Err.Error()))
				continue
			}
			printSnapshot(s)
		case <-ctx.Done():
			return
		}
	}
}

func printSnapshot(s feed.Snapshot) {
	fmt.Printf("-- %s (%d meals, %.0f kcal)\n", s.Feed.DateISO, len(s.Feed.Logs), s.Feed.Totals.Calories)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Feed.Logs); err != nil {
		log.Fatalf("encode feed: %v", err)
	}
}
