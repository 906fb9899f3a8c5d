package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"climb-performance-lab/internal/catalog"
	"climb-performance-lab/internal/cloud"
	"climb-performance-lab/internal/config"
	"climb-performance-lab/internal/database"
	"climb-performance-lab/internal/importer"
	"climb-performance-lab/internal/physics"
	"climb-performance-lab/internal/profile"
	"climb-performance-lab/internal/store"
)

func main() {
	// Disable structured logging for CLI
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors
	})))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Open database
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var cloudClient store.CloudClient
	if cfg.CloudEnabled {
		cloudClient = cloud.NewClient(cfg.CloudBaseURL, cfg.CloudAPIKey, slog.Default())
	}

	cat := catalog.New(profile.NewGenerator())
	st := store.New(cfg.UserID, cat, cloudClient, db, slog.Default())

	ctx := context.Background()
	source, err := st.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Load failed, starting from defaults: %v\n", err)
	}

	switch command {
	case "import":
		handleImport(ctx, st)
	case "list":
		handleList(st, source)
	case "save":
		handleSave(ctx, st)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleImport(ctx context.Context, st *store.Store) {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: import requires a file path")
		os.Exit(1)
	}
	path := os.Args[2]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	candidates := importer.ParseDelimited(string(data), st.RawActivities())
	if len(candidates) == 0 {
		fmt.Println("No importable rows found.")
		return
	}

	duplicates := 0
	for _, c := range candidates {
		if c.Duplicate {
			duplicates++
		}
	}
	fmt.Printf("Parsed %d row(s), %d flagged as duplicate\n", len(candidates), duplicates)

	added := importer.CommitSelected(candidates, st.RawActivities())
	st.AppendActivities(added)

	if err := st.Save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Save failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Imported %d ride(s), log now holds %d\n", len(added), st.ActivityCount())
}

func handleList(st *store.Store, source store.Source) {
	acts := st.Activities()
	fmt.Printf("Activity log (%d entries, loaded from %s):\n\n", len(acts), source)
	for _, a := range acts {
		fmt.Printf("%-12s %-30s %8s %6.1f km %5.0f m",
			a.Date, a.Name, physics.FormatDuration(a.DurationSeconds), a.DistanceKm, a.ElevationM)
		if a.Power > 0 {
			fmt.Printf("  %3.0f W", a.Power)
		}
		fmt.Println()
	}
}

func handleSave(ctx context.Context, st *store.Store) {
	if err := st.Save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Save failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ State saved")
}

func printUsage() {
	fmt.Println(`climb-performance-lab CLI

Usage:
  cli <command> [options]

Commands:
  import <file>  Parse a semicolon-delimited export file and add the rides
  list           Print the activity log, newest first
  save           Push current state to persistence
  help           Show this help message

Environment Variables Required:
  INTERVALS_API_KEY      - Intervals.icu API key
  INTERVALS_ATHLETE_ID   - Intervals.icu athlete ID
  INTERNAL_API_KEY       - Key for authenticated API access
  DATABASE_PATH          - SQLite path (default: ./data.db)`)
}
