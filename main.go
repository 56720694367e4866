package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"spacetraders-router/internal/catalog"
	"spacetraders-router/internal/config"
	"spacetraders-router/internal/db"
	"spacetraders-router/internal/engine"
	"spacetraders-router/internal/graph"
	"spacetraders-router/internal/logger"
)

var version = "dev"

func main() {
	systemsPath := flag.String("systems", "charted_systems.json", "charted systems JSON dump")
	factionsPath := flag.String("factions", "factions.json", "factions JSON dump")
	configPath := flag.String("config", "", "YAML ship/run config (defaults when empty)")
	dbPath := flag.String("db", "", "SQLite catalog cache (disabled when empty)")
	src := flag.String("src", "", "source waypoint symbol (overrides config)")
	dest := flag.String("dest", "", "single destination symbol instead of every faction HQ")
	explore := flag.Bool("explore", false, "also report how many symbols are reachable from the source")
	flag.Parse()

	logger.Banner(version)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("Config", err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}
	if *src != "" {
		cfg.Source = *src
	}

	systems, factions, err := loadCatalog(cfg, *dbPath, *configPath != "", *systemsPath, *factionsPath)
	if err != nil {
		logger.Error("Catalog", err.Error())
		os.Exit(1)
	}

	logger.Info("Graph", "Building route graph...")
	start := time.Now()
	g := graph.Build(systems, cfg.Ship)
	stats := g.Stats()
	logger.Section("Graph Statistics")
	logger.Stats("Systems", len(systems))
	logger.Stats("Jump gates", stats.Jumpgates)
	logger.Stats("Markets", stats.Markets)
	logger.Stats("System nodes", stats.Systems)
	logger.Stats("Edges", stats.Edges)
	logger.Stats("Build time", time.Since(start).Round(time.Millisecond))

	if *explore {
		reach, err := g.DurationsFrom(cfg.Source)
		if err != nil {
			logger.Error("Explore", err.Error())
			os.Exit(1)
		}
		logger.Success("Explore", fmt.Sprintf("%d of %d symbols reachable from %s", len(reach), g.Len(), cfg.Source))
	}

	var targets []engine.Target
	if *dest != "" {
		targets = []engine.Target{{Label: *dest, Symbol: *dest}}
	} else {
		for _, f := range factions {
			targets = append(targets, engine.Target{Label: f.Symbol, Symbol: f.Headquarters})
		}
	}
	if len(targets) == 0 {
		logger.Warn("Route", "No destinations: pass -dest or a factions file with headquarters")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	planner := engine.NewPlanner(g, cfg.Workers)
	logger.Info("Route", fmt.Sprintf("Using source = %s, %d destination(s)", cfg.Source, len(targets)))
	start = time.Now()
	results, err := planner.PlanMany(ctx, cfg.Source, targets)
	if err != nil {
		logger.Warn("Route", fmt.Sprintf("Stopped early: %v", err))
	}
	logger.Success("Route", fmt.Sprintf("Planned in %v", time.Since(start).Round(time.Millisecond)))

	for _, r := range results {
		switch {
		case r.Target.Symbol == "":
			// Not planned before interrupt.
			continue
		case r.Err != nil:
			logger.Error("Route", fmt.Sprintf("%s: %v", r.Target.Label, r.Err))
		case !r.Found:
			logger.Warn("Route", fmt.Sprintf("%s (%s): no route under fuel capacity %d", r.Target.Label, r.Target.Symbol, cfg.Ship.FuelCapacity))
		default:
			printRoute(r, cfg.Ship.FuelCapacity)
		}
	}
}

// loadCatalog reads systems and factions, going through the SQLite cache
// when dbPath is set: an empty cache is filled from the JSON files.
func loadCatalog(cfg *config.Config, dbPath string, explicitConfig bool, systemsPath, factionsPath string) ([]catalog.System, []catalog.Faction, error) {
	if dbPath == "" {
		return loadJSON(systemsPath, factionsPath)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	defer database.Close()

	// An explicit config file wins and becomes the remembered profile.
	if explicitConfig {
		if err := database.SaveShip(cfg.Ship); err != nil {
			logger.Warn("DB", fmt.Sprintf("Could not save ship profile: %v", err))
		}
	} else if ship, found := database.LoadShip(cfg.Ship); found {
		if err := ship.Validate(); err != nil {
			logger.Warn("DB", fmt.Sprintf("Ignoring stored ship profile: %v", err))
		} else {
			cfg.Ship = ship
			logger.Info("DB", "Using stored ship profile")
		}
	}

	if database.SystemCount() == 0 {
		systems, factions, err := loadJSON(systemsPath, factionsPath)
		if err != nil {
			return nil, nil, err
		}
		if err := database.ImportSystems(systems); err != nil {
			return nil, nil, err
		}
		if err := database.ImportFactions(factions); err != nil {
			return nil, nil, err
		}
		logger.Success("DB", fmt.Sprintf("Cached %d systems, %d factions", len(systems), len(factions)))
		return systems, factions, nil
	}

	systems, err := database.LoadSystems()
	if err != nil {
		return nil, nil, err
	}
	factions, err := database.LoadFactions()
	if err != nil {
		return nil, nil, err
	}
	logger.Info("DB", fmt.Sprintf("Loaded %d systems from cache", len(systems)))
	return systems, factions, nil
}

func loadJSON(systemsPath, factionsPath string) ([]catalog.System, []catalog.Faction, error) {
	logger.Info("Catalog", fmt.Sprintf("Loading %s...", systemsPath))
	systems, err := catalog.LoadSystems(systemsPath)
	if err != nil {
		return nil, nil, err
	}
	factions, err := catalog.LoadFactions(factionsPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		logger.Warn("Catalog", fmt.Sprintf("%s not found, no faction destinations", factionsPath))
	}
	return systems, factions, nil
}

func printRoute(r engine.Result, capacity int) {
	route := r.Route
	fmt.Printf("\n%s -> %s (%s HQ) under fuel constraint %d\n", route.Source, route.Destination, r.Target.Label, capacity)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, l := range route.Legs {
		fmt.Fprintf(w, "%s\t%s\t->\t%s\t%ds\t%ds\t%d\t%d\n",
			l.Travel, l.From, l.To, l.Duration, l.Elapsed, l.Fuel, l.FuelRemaining)
		if l.Refuel {
			fmt.Fprintf(w, "Refuel\t%s\t\t\t\t\t\t%d\n", l.To, capacity)
		}
	}
	w.Flush()
	fmt.Printf("Total duration: %ds (%d minutes), fuel used %d\n", route.Duration, route.Duration/60, route.FuelUsed)
	if len(route.Legs) > 0 {
		fmt.Println(strings.Repeat("-", 40))
	}
}
