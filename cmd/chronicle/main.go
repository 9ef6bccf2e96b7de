// Command chronicle runs the tick-driven historical world simulator from
// its configured start year to its end year, reproducibly from a given
// seed, map, and config.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/aeonforge/chronicle/internal/config"
	"github.com/aeonforge/chronicle/internal/economy"
	"github.com/aeonforge/chronicle/internal/engine"
	"github.com/aeonforge/chronicle/internal/entropy"
	"github.com/aeonforge/chronicle/internal/mapgen"
	"github.com/aeonforge/chronicle/internal/persistence"
	"github.com/aeonforge/chronicle/internal/polity"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	configPath := flag.String("config", "", "path to TOML config file (compiled defaults if omitted)")
	seedFlag := flag.Uint64("seed", 0, "world seed; 0 means derive one from the config's rngSeedMode")
	startFlag := flag.Int("start", 0, "override the config's start year (0 = use config)")
	endFlag := flag.Int("end", 0, "override the config's end year (0 = use config)")
	width := flag.Int("width", 64, "map width in cells")
	height := flag.Int("height", 64, "map height in cells")
	dbPath := flag.String("db", "data/chronicle.db", "SQLite snapshot path")
	workers := flag.Int("workers", 0, "S2 worker pool size (0 = GOMAXPROCS)")
	flag.Parse()

	cfg := config.Load(*configPath)

	startYear := cfg.World.StartYear
	if *startFlag != 0 {
		startYear = *startFlag
	}
	endYear := cfg.World.EndYear
	if *endFlag != 0 {
		endYear = *endFlag
	}
	if endYear <= startYear {
		slog.Error("end year must be after start year", "start", startYear, "end", endYear)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		if cfg.World.RNGSeedMode == "random" {
			seed = entropy.RandomSeed()
		} else {
			seed = 1
		}
	}
	slog.Info("chronicle starting", "seed", seed, "start", startYear, "end", endYear, "config_hash", cfg.ContentHash)

	if err := os.MkdirAll("data", 0o755); err != nil && !os.IsExist(err) {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("snapshot database ready", "path", *dbPath, "run_id", db.RunID())

	gen := mapgen.NewProcedural(mapgen.Config{Seed: int64(seed), SeaLevel: 0.32, MountainLvl: 0.74, BaseFood: 6.0})
	grid, err := gen.Load(*width, *height)
	if err != nil {
		slog.Error("failed to generate map", "error", err)
		os.Exit(1)
	}

	w := engine.NewWorld(grid, seed, startYear, endYear)
	w.TechCfg = cfg.ToTechConfig()
	w.WarCfg = cfg.ToWarConfig()
	w.DemoCfg = cfg.ToDemographyConfig()
	w.PlagueCfg = cfg.ToPlagueConfig()
	w.EconCfg = cfg.ToEconomyConfig()
	w.PolityCfg = cfg.ToPolityConfig()
	w.Trade = economy.NewMatrix(w.EconCfg)
	w.WorkerCount = *workers
	w.RecomputeAffectedEachYear = false

	if db.HasWorldState() {
		slog.Info("found saved world state, resuming")
		if err := db.LoadGrid(w.Grid); err != nil {
			slog.Error("failed to load grid", "error", err)
			os.Exit(2)
		}
		if savedSeed, err := db.LoadWorldSeed(); err == nil {
			w.WorldSeed = savedSeed
		}
		polities, err := db.LoadPolities()
		if err != nil {
			slog.Error("failed to load polities", "error", err)
			os.Exit(2)
		}
		persistence.RebuildTerritory(w.Grid, polities)
		for _, p := range polities {
			idx := w.Registry.Add(p)
			// RNG stream state is never serialized (see design notes); each
			// polity's RNG is reseeded from (worldSeed, index) on resume.
			p.RNG = entropy.SeedPolityRNG(w.WorldSeed, int(idx))
		}
		if plague, err := db.LoadPlague(); err == nil {
			w.Plague = plague
		}
		if trade, err := db.LoadTradeMatrix(w.EconCfg); err == nil {
			w.Trade = trade
		}
		if year, err := db.LoadYear(); err == nil {
			w.Year = year
		}
		slog.Info("world state restored", "year", w.Year, "polities", w.Registry.Len())
	} else {
		slog.Info("no saved state found, founding starting polities")
		foundStartingPolities(w, startYear)
	}

	for w.Year < w.EndYear {
		w.AdvanceYear()
		if w.Year%25 == 0 {
			if err := db.SaveWorldState(w.Grid, w.Registry, w.Trade, w.Plague, w.Year, w.WorldSeed); err != nil {
				slog.Error("periodic save failed", "year", w.Year, "error", err)
			}
		}
	}

	if err := db.SaveWorldState(w.Grid, w.Registry, w.Trade, w.Plague, w.Year, w.WorldSeed); err != nil {
		slog.Error("final save failed", "error", err)
		os.Exit(2)
	}

	alive, totalPop := 0, int64(0)
	for _, p := range w.Registry.All() {
		if !p.Dead {
			alive++
			totalPop += p.Population
		}
	}
	fmt.Printf("Run complete: year %d, %d polities alive of %d ever founded, %s people.\n",
		w.Year, alive, w.Registry.Len(), humanize.Comma(totalPop))
}

// foundStartingPolities places up to the configured region count ceiling
// (clamped to [2,12]) of starting polities, each on an unowned land cell
// drawn at random from the world RNG, giving up after count*40 draws
// (Section 6).
func foundStartingPolities(w *engine.World, startYear int) {
	count := w.PolityCfg.RegionCountMax
	if count < 2 {
		count = 2
	}
	if count > 12 {
		count = 12 // a CLI-level sanity ceiling on a first automated run
	}

	names := []string{"Ashenmoor", "Veridian", "Kharovast", "Solenne", "Tundrakeep",
		"Marrowholt", "Calderhall", "Drystvale", "Obsidian Reach", "Thornwick",
		"Saltmere", "Ironfen"}
	types := []polity.Type{polity.Pacifist, polity.Warmonger, polity.Trader}
	ideologies := []polity.Ideology{polity.Tribal, polity.Chiefdom, polity.Kingdom, polity.CityState}

	placed := 0
	for attempt := 0; attempt < count*40 && placed < count; attempt++ {
		x := int(w.WorldRNG.Uint64() % uint64(w.Grid.Width))
		y := int(w.WorldRNG.Uint64() % uint64(w.Grid.Height))
		cell := w.Grid.At(x, y)
		if !cell.IsLand || cell.Owner >= 0 {
			continue
		}
		f := engine.FoundingPolity{
			Name:     names[placed%len(names)],
			Cell:     worldmap.Coord{X: x, Y: y},
			Type:     types[placed%len(types)],
			Ideology: ideologies[placed%len(ideologies)],
			Color:    startingColor(placed),
		}
		w.FoundPolity(f, startYear)
		placed++
	}
	slog.Info("starting polities founded", "count", placed)
}

// startingColor assigns each founding polity a distinct, deterministic
// display color from a fixed palette.
func startingColor(i int) [3]uint8 {
	palette := [][3]uint8{
		{196, 60, 60}, {60, 130, 196}, {90, 180, 90}, {210, 170, 40},
		{150, 90, 180}, {220, 120, 40}, {70, 190, 190}, {180, 80, 140},
		{110, 110, 200}, {200, 200, 90}, {90, 140, 70}, {170, 60, 100},
	}
	return palette[i%len(palette)]
}
