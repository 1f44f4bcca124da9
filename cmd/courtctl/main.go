package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/courtsight/courtside/internal/config"
	"github.com/courtsight/courtside/internal/export"
	"github.com/courtsight/courtside/internal/ingest/bdl"
	"github.com/courtsight/courtside/internal/ingest/ref"
	"github.com/courtsight/courtside/internal/service"
	"github.com/courtsight/courtside/internal/store"
)

const usage = `Usage: courtctl <command> [flags]

Commands:
  import-teams                      Import all teams
  import-players  [--max-pages N]   Import players
  import-games    --season S [--max-pages N]
                                    Import games for a season
  standings       --season S        Scrape standings and update conferences
  process         [--season S] [--export-dir DIR]
                                    Run the stats pipeline and export CSVs
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()

	db, err := store.NewDatabase(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "import-teams":
		runImportTeams(ctx, cfg, db)
	case "import-players":
		runImportPlayers(ctx, cfg, db, os.Args[2:])
	case "import-games":
		runImportGames(ctx, cfg, db, os.Args[2:])
	case "standings":
		runStandings(ctx, cfg, db, os.Args[2:])
	case "process":
		runProcess(ctx, cfg, db, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

func runImportTeams(ctx context.Context, cfg config.Config, db *store.Database) {
	ingester := bdl.NewIngester(db, cfg.BDLBaseURL, cfg.BDLAPIKey)
	count, err := ingester.ImportTeams(ctx)
	if err != nil {
		log.Fatalf("import teams: %v", err)
	}
	log.Printf("Imported %d teams", count)
}

func runImportPlayers(ctx context.Context, cfg config.Config, db *store.Database, args []string) {
	fs := flag.NewFlagSet("import-players", flag.ExitOnError)
	maxPages := fs.Int("max-pages", 0, "Maximum pages to fetch (0 = all)")
	fs.Parse(args)

	ingester := bdl.NewIngester(db, cfg.BDLBaseURL, cfg.BDLAPIKey)
	count, err := ingester.ImportPlayers(ctx, *maxPages)
	if err != nil {
		log.Fatalf("import players: %v", err)
	}
	log.Printf("Imported %d players", count)
}

func runImportGames(ctx context.Context, cfg config.Config, db *store.Database, args []string) {
	fs := flag.NewFlagSet("import-games", flag.ExitOnError)
	season := fs.String("season", cfg.CurrentSeason, "Season, e.g. 2024-2025 or 2024")
	maxPages := fs.Int("max-pages", 0, "Maximum pages to fetch (0 = all)")
	fs.Parse(args)

	ingester := bdl.NewIngester(db, cfg.BDLBaseURL, cfg.BDLAPIKey)
	count, err := ingester.ImportGames(ctx, *season, *maxPages)
	if err != nil {
		log.Fatalf("import games: %v", err)
	}
	log.Printf("Imported %d games for season %s", count, *season)
}

func runStandings(ctx context.Context, cfg config.Config, db *store.Database, args []string) {
	fs := flag.NewFlagSet("standings", flag.ExitOnError)
	season := fs.String("season", cfg.CurrentSeason, "Season, e.g. 2024-2025")
	fs.Parse(args)

	enricher := ref.NewEnricher(db, cfg.StandingsURL)
	updated, err := enricher.EnrichConferences(ctx, *season)
	if err != nil {
		log.Fatalf("enrich conferences: %v", err)
	}
	log.Printf("Updated %d teams from standings", updated)
}

func runProcess(ctx context.Context, cfg config.Config, db *store.Database, args []string) {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	season := fs.String("season", "", "Season to process (empty = all seasons)")
	exportDir := fs.String("export-dir", cfg.ExportDir, "Directory for CSV output")
	fs.Parse(args)

	stats := service.NewStatsService(db, nil)
	data, err := stats.ComputeDatasets(ctx, *season)
	if err != nil {
		log.Fatalf("compute datasets: %v", err)
	}

	exporter, err := export.NewExporter(*exportDir)
	if err != nil {
		log.Fatalf("create exporter: %v", err)
	}

	writes := []func() (string, error){
		func() (string, error) { return exporter.WriteTeams(data.Teams.Rows, data.Season) },
		func() (string, error) { return exporter.WritePlayers(data.Players.Rows, data.Season) },
		func() (string, error) { return exporter.WriteGames(data.Games.Rows, data.Season) },
		func() (string, error) { return exporter.WriteTeamStats(data.TeamStats.Rows, data.Season) },
		func() (string, error) { return exporter.WriteTeamMetrics(data.TeamMetrics.Rows, data.Season) },
		func() (string, error) { return exporter.WriteTeamRankings(data.TeamRankings.Rows, data.Season) },
		func() (string, error) { return exporter.WriteLeagueOverview(data.Overview, data.Season) },
	}
	for _, write := range writes {
		path, err := write()
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		log.Printf("Wrote %s", path)
	}
}
