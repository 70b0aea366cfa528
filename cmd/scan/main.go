// Command scan submits a meal photo or text description for analysis,
// waits for the result, and optionally confirms it as a meal log.
//
// Flags:
//
//	--photo      path to a meal photo to scan
//	--text       free-text meal description to scan
//	--date       target day, YYYY-MM-DD (default: today)
//	--confirm    persist the result as a meal log
//	--meal-type  meal type for --confirm (default: lunch)
//	--portion    portion multiplier for --confirm (default: 1.0)
//
// Exactly one of --photo and --text is required.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/plateful/mealscan/internal/app"
	"github.com/plateful/mealscan/internal/domain"
	"github.com/plateful/mealscan/internal/service/meallog"
	"github.com/plateful/mealscan/internal/service/scan"
)

func main() {
	photoFlag := flag.String("photo", "", "path to a meal photo to scan")
	textFlag := flag.String("text", "", "free-text meal description to scan")
	dateFlag := flag.String("date", time.Now().Format("2006-01-02"), "target day, YYYY-MM-DD")
	confirmFlag := flag.Bool("confirm", false, "persist the result as a meal log")
	mealTypeFlag := flag.String("meal-type", "lunch", "meal type for --confirm")
	portionFlag := flag.Float64("portion", 1.0, "portion multiplier for --confirm")
	flag.Parse()

	if (*photoFlag == "") == (*textFlag == "") {
		fmt.Fprintln(os.Stderr, "Usage: scan --photo=meal.jpg | --text=\"two eggs and toast\"")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	a, err := app.New(ctx, app.Options{})
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer a.Close()

	logger := a.Log
	ctx = a.Context(ctx)

	in := scan.SubmitInput{Source: domain.ScanSourceText, Description: *textFlag, DateISO: *dateFlag}
	if *photoFlag != "" {
		data, err := os.ReadFile(*photoFlag)
		if err != nil {
			logger.Error("read photo", slog.String("error", err.Error()))
			os.Exit(1)
		}
		in = scan.SubmitInput{Source: domain.ScanSourceCamera, Photo: data, DateISO: *dateFlag}
	}

	sub, err := a.Scans.Submit(ctx, in)
	if err != nil {
		logger.Error("submit scan", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("scan queued", slog.String("scan_id", sub.ScanID))

	res, err := a.Scans.AwaitCompletion(ctx, sub.ScanID)
	switch {
	case errors.Is(err, domain.ErrScanFailed):
		var failed *domain.ScanFailedError
		if errors.As(err, &failed) {
			fmt.Println(failed.Reason)
		}
		os.Exit(1)
	case errors.Is(err, domain.ErrScanTimeout):
		fmt.Println("The scan is taking longer than expected. Please check back later.")
		os.Exit(1)
	case err != nil:
		logger.Error("await scan", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if res.NoFoodDetected() {
		fmt.Println("No food detected. Try another photo or a more specific description.")
		os.Exit(0)
	}

	printJSON(res)

	if !*confirmFlag {
		return
	}

	mealType, err := domain.ParseMealType(*mealTypeFlag)
	if err != nil {
		logger.Error("parse meal type", slog.String("error", err.Error()))
		os.Exit(1)
	}

	out, err := a.Meals.ConfirmAdd(ctx, meallog.ConfirmInput{
		Result:            res,
		ScanID:            sub.ScanID,
		MealType:          mealType,
		PortionMultiplier: *portionFlag,
	})
	if err != nil {
		logger.Error("confirm meal", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("meal added",
		slog.String("meal_id", out.Meal.ID),
		slog.Bool("image_persisted", out.ImagePersisted),
	)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
