// Package persistence provides SQLite-based world-state storage.
// See design doc Section 8.3.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/aeonforge/chronicle/internal/demography"
	"github.com/aeonforge/chronicle/internal/economy"
	"github.com/aeonforge/chronicle/internal/polity"
	"github.com/aeonforge/chronicle/internal/tech"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

// DB wraps a SQLite connection for world-state persistence.
type DB struct {
	conn  *sqlx.DB
	runID string
}

// Open opens or creates a SQLite database at the given path. Each distinct
// database gets a stable run identifier, generated once and persisted in
// world_meta, so log lines from separate process invocations against the
// same snapshot can be correlated.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	runID, err := db.GetMeta("run_id")
	if err != nil || runID == "" {
		runID = uuid.NewString()
		if err := db.SaveMeta("run_id", runID); err != nil {
			conn.Close()
			return nil, fmt.Errorf("save run id: %w", err)
		}
	}
	db.runID = runID

	return db, nil
}

// RunID returns this database's stable run identifier.
func (db *DB) RunID() string { return db.runID }

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS polities (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		color_r INTEGER NOT NULL,
		color_g INTEGER NOT NULL,
		color_b INTEGER NOT NULL,
		founding_year INTEGER NOT NULL,
		spawn_region_key TEXT NOT NULL,
		type INTEGER NOT NULL,
		ideology INTEGER NOT NULL,
		population INTEGER NOT NULL,
		starting_x INTEGER NOT NULL,
		starting_y INTEGER NOT NULL,
		legitimacy REAL NOT NULL,
		stability REAL NOT NULL,
		avg_control REAL NOT NULL,
		admin_capacity REAL NOT NULL,
		fiscal_capacity REAL NOT NULL,
		logistics_reach REAL NOT NULL,
		tax_rate REAL NOT NULL,
		treasury_spend REAL NOT NULL,
		debt REAL NOT NULL,
		treasury INTEGER NOT NULL,
		autonomy_pressure REAL NOT NULL,
		elite_defection_pressure REAL NOT NULL,
		conquest_momentum_decay REAL NOT NULL,
		next_succession_year INTEGER NOT NULL,
		next_policy_year INTEGER NOT NULL,
		next_election_year INTEGER NOT NULL,
		stagnation_years INTEGER NOT NULL,
		last_culture_drift_year INTEGER NOT NULL,
		major_upgraded INTEGER NOT NULL,
		dead INTEGER NOT NULL,
		budget_json TEXT NOT NULL,
		leader_json TEXT NOT NULL,
		war_json TEXT NOT NULL,
		macro_json TEXT NOT NULL,
		cities_json TEXT NOT NULL,
		society_json TEXT NOT NULL,
		regions_json TEXT NOT NULL,
		infra_json TEXT NOT NULL DEFAULT '{}',
		base_name TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS polity_knowledge (
		polity_id INTEGER PRIMARY KEY,
		domains_json TEXT NOT NULL,
		known_json TEXT NOT NULL,
		adoption_json TEXT NOT NULL,
		low_adoption_json TEXT NOT NULL,
		effects_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trade_matrix (
		a INTEGER NOT NULL,
		b INTEGER NOT NULL,
		intensity REAL NOT NULL,
		PRIMARY KEY (a, b)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// HasWorldState returns true if the database contains a saved run.
func (db *DB) HasWorldState() bool {
	var count int
	err := db.conn.Get(&count, "SELECT COUNT(*) FROM polities")
	return err == nil && count > 0
}

// gridMeta is the JSON shape stored under the "grid" meta key: just the
// owner array, since the static terrain is regenerated deterministically
// from the same seed/dimensions via mapgen (Section 8.3's documented
// resolution — the grid's random terrain never needs its own storage).
type gridMeta struct {
	Width, Height int
	Owners        []int32
}

// infraMeta mirrors a polity's road/port/factory coordinate lists for JSON
// storage; they are already (y,x)-sorted and deduped by the code that
// builds them, so no re-sort is needed on load.
type infraMeta struct {
	Roads     []worldmap.Coord
	Ports     []worldmap.Coord
	Factories []worldmap.Coord
}

// plagueMeta mirrors demography.PlagueState for JSON storage (its map field
// is flattened to a slice for portability).
type plagueMeta struct {
	Active    bool
	StartYear int
	NextYear  int
	Affected  []int32 // nil means "recompute membership live", matching AffectedOnset==nil
}

// SaveWorldState performs a full save of all world state: grid ownership,
// every polity's scalars and nested structs, each polity's dense knowledge
// vectors, the trade matrix, the plague lifecycle, and the run's clock and
// seed.
func (db *DB) SaveWorldState(grid *worldmap.Grid, registry *polity.Registry, trade *economy.Matrix, plague demography.PlagueState, year int, worldSeed uint64) error {
	slog.Info("saving world state", "year", year, "polities", registry.Len())

	owners := make([]int32, grid.Width*grid.Height)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			owners[y*grid.Width+x] = grid.At(x, y).Owner
		}
	}
	gm, _ := json.Marshal(gridMeta{Width: grid.Width, Height: grid.Height, Owners: owners})
	if err := db.SaveMeta("grid", string(gm)); err != nil {
		return fmt.Errorf("save grid: %w", err)
	}

	pm := plagueMeta{Active: plague.Active, StartYear: plague.StartYear, NextYear: plague.NextYear}
	if plague.AffectedOnset != nil {
		pm.Affected = make([]int32, 0, len(plague.AffectedOnset))
		for i := range plague.AffectedOnset {
			pm.Affected = append(pm.Affected, i)
		}
	}
	pmJSON, _ := json.Marshal(pm)
	if err := db.SaveMeta("plague", string(pmJSON)); err != nil {
		return fmt.Errorf("save plague: %w", err)
	}

	if err := db.SaveMeta("year", fmt.Sprintf("%d", year)); err != nil {
		return fmt.Errorf("save year: %w", err)
	}
	if err := db.SaveMeta("world_seed", fmt.Sprintf("%d", worldSeed)); err != nil {
		return fmt.Errorf("save world_seed: %w", err)
	}

	if err := db.savePolities(registry.All()); err != nil {
		return fmt.Errorf("save polities: %w", err)
	}
	if err := db.saveKnowledge(registry.All()); err != nil {
		return fmt.Errorf("save knowledge: %w", err)
	}
	if err := db.saveTradeMatrix(registry.Len(), trade); err != nil {
		return fmt.Errorf("save trade matrix: %w", err)
	}

	slog.Info("world state saved")
	return nil
}

func (db *DB) savePolities(all []*polity.Polity) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM polities"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO polities
		(id, name, color_r, color_g, color_b, founding_year, spawn_region_key,
		 type, ideology, population, starting_x, starting_y,
		 legitimacy, stability, avg_control, admin_capacity, fiscal_capacity,
		 logistics_reach, tax_rate, treasury_spend, debt, treasury,
		 autonomy_pressure, elite_defection_pressure, conquest_momentum_decay,
		 next_succession_year, next_policy_year, next_election_year,
		 stagnation_years, last_culture_drift_year, major_upgraded, dead,
		 budget_json, leader_json, war_json, macro_json, cities_json,
		 society_json, regions_json, infra_json, base_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		        ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range all {
		budgetJSON, _ := json.Marshal(p.Budget)
		leaderJSON, _ := json.Marshal(p.Leader)
		warJSON, _ := json.Marshal(p.War)
		macroJSON, _ := json.Marshal(p.Macro)
		citiesJSON, _ := json.Marshal(p.Cities)
		societyJSON, _ := json.Marshal(p.Society)
		regionsJSON, _ := json.Marshal(p.Regions)
		infraJSON, _ := json.Marshal(infraMeta{Roads: p.Roads, Ports: p.Ports, Factories: p.Factories})

		dead := 0
		if p.Dead {
			dead = 1
		}
		majorUpgraded := 0
		if p.MajorUpgraded {
			majorUpgraded = 1
		}

		_, err := stmt.Exec(
			p.Index, p.Name, p.Color[0], p.Color[1], p.Color[2], p.FoundingYear, p.SpawnRegionKey,
			p.Type, p.Ideology, p.Population, p.StartingCell.X, p.StartingCell.Y,
			p.Legitimacy, p.Stability, p.AvgControl, p.AdminCapacity, p.FiscalCapacity,
			p.LogisticsReach, p.TaxRate, p.TreasurySpend, p.Debt, p.Treasury,
			p.AutonomyPressure, p.EliteDefectionPressure, p.ConquestMomentumDecay,
			p.NextSuccessionYear, p.NextPolicyYear, p.NextElectionYear,
			p.StagnationYears, p.LastCultureDriftYear, majorUpgraded, dead,
			string(budgetJSON), string(leaderJSON), string(warJSON), string(macroJSON), string(citiesJSON),
			string(societyJSON), string(regionsJSON), string(infraJSON), p.BaseName,
		)
		if err != nil {
			return fmt.Errorf("insert polity %d: %w", p.Index, err)
		}
	}

	return tx.Commit()
}

func (db *DB) saveKnowledge(all []*polity.Polity) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM polity_knowledge"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO polity_knowledge
		(polity_id, domains_json, known_json, adoption_json, low_adoption_json, effects_json)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range all {
		if p.Knowledge == nil {
			continue
		}
		domainsJSON, _ := json.Marshal(p.Knowledge.Domains)
		knownJSON, _ := json.Marshal(p.Knowledge.Known)
		adoptionJSON, _ := json.Marshal(p.Knowledge.Adoption)
		lowAdoptionJSON, _ := json.Marshal(p.Knowledge.LowAdoptionYears)
		effectsJSON, _ := json.Marshal(p.Effects)

		if _, err := stmt.Exec(p.Index, string(domainsJSON), string(knownJSON),
			string(adoptionJSON), string(lowAdoptionJSON), string(effectsJSON)); err != nil {
			return fmt.Errorf("insert knowledge for polity %d: %w", p.Index, err)
		}
	}

	return tx.Commit()
}

func (db *DB) saveTradeMatrix(n int, trade *economy.Matrix) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM trade_matrix"); err != nil {
		return err
	}

	stmt, err := tx.Preparex("INSERT INTO trade_matrix (a, b, intensity) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			v := trade.Get(int32(a), int32(b))
			if v <= 0 {
				continue
			}
			if _, err := stmt.Exec(a, b, v); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// LoadGrid restores cell ownership onto an already-generated grid (its
// terrain must have been produced by the same seed/dimensions via mapgen;
// only ownership, which evolves over the run, is persisted).
func (db *DB) LoadGrid(grid *worldmap.Grid) error {
	raw, err := db.GetMeta("grid")
	if err != nil {
		return fmt.Errorf("load grid: %w", err)
	}
	var gm gridMeta
	if err := json.Unmarshal([]byte(raw), &gm); err != nil {
		return fmt.Errorf("decode grid: %w", err)
	}
	if gm.Width != grid.Width || gm.Height != grid.Height {
		return fmt.Errorf("grid dimensions mismatch: saved %dx%d, generated %dx%d", gm.Width, gm.Height, grid.Width, grid.Height)
	}
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			grid.SetOwner(x, y, gm.Owners[y*grid.Width+x])
		}
	}
	grid.RebuildAdjacency()
	return nil
}

// LoadPlague restores the plague lifecycle.
func (db *DB) LoadPlague() (demography.PlagueState, error) {
	raw, err := db.GetMeta("plague")
	if err != nil {
		return demography.PlagueState{}, fmt.Errorf("load plague: %w", err)
	}
	var pm plagueMeta
	if err := json.Unmarshal([]byte(raw), &pm); err != nil {
		return demography.PlagueState{}, fmt.Errorf("decode plague: %w", err)
	}
	s := demography.NewPlagueState(pm.NextYear)
	s.Active = pm.Active
	s.StartYear = pm.StartYear
	if pm.Affected != nil {
		demography.Start(&s, pm.StartYear, pm.Affected, false)
		s.NextYear = pm.NextYear
	} else if pm.Active {
		s.AffectedOnset = nil
	}
	return s, nil
}

// LoadYear and LoadWorldSeed restore the run's clock and RNG seed.
func (db *DB) LoadYear() (int, error) {
	raw, err := db.GetMeta("year")
	if err != nil {
		return 0, err
	}
	var year int
	_, err = fmt.Sscanf(raw, "%d", &year)
	return year, err
}

func (db *DB) LoadWorldSeed() (uint64, error) {
	raw, err := db.GetMeta("world_seed")
	if err != nil {
		return 0, err
	}
	var seed uint64
	_, err = fmt.Sscanf(raw, "%d", &seed)
	return seed, err
}

// polityRow mirrors the polities table for sqlx scanning.
type polityRow struct {
	ID                     int32   `db:"id"`
	Name                   string  `db:"name"`
	ColorR                 uint8   `db:"color_r"`
	ColorG                 uint8   `db:"color_g"`
	ColorB                 uint8   `db:"color_b"`
	FoundingYear           int     `db:"founding_year"`
	SpawnRegionKey         string  `db:"spawn_region_key"`
	Type                   uint8   `db:"type"`
	Ideology               uint8   `db:"ideology"`
	Population             int64   `db:"population"`
	StartingX              int     `db:"starting_x"`
	StartingY              int     `db:"starting_y"`
	Legitimacy             float64 `db:"legitimacy"`
	Stability              float64 `db:"stability"`
	AvgControl             float64 `db:"avg_control"`
	AdminCapacity          float64 `db:"admin_capacity"`
	FiscalCapacity         float64 `db:"fiscal_capacity"`
	LogisticsReach         float64 `db:"logistics_reach"`
	TaxRate                float64 `db:"tax_rate"`
	TreasurySpend          float64 `db:"treasury_spend"`
	Debt                   float64 `db:"debt"`
	Treasury               uint64  `db:"treasury"`
	AutonomyPressure       float64 `db:"autonomy_pressure"`
	EliteDefectionPressure float64 `db:"elite_defection_pressure"`
	ConquestMomentumDecay  float64 `db:"conquest_momentum_decay"`
	NextSuccessionYear     int     `db:"next_succession_year"`
	NextPolicyYear         int     `db:"next_policy_year"`
	NextElectionYear       int     `db:"next_election_year"`
	StagnationYears        int     `db:"stagnation_years"`
	LastCultureDriftYear   int     `db:"last_culture_drift_year"`
	MajorUpgraded          int     `db:"major_upgraded"`
	Dead                   int     `db:"dead"`
	BudgetJSON             string  `db:"budget_json"`
	LeaderJSON             string  `db:"leader_json"`
	WarJSON                string  `db:"war_json"`
	MacroJSON              string  `db:"macro_json"`
	CitiesJSON             string  `db:"cities_json"`
	SocietyJSON            string  `db:"society_json"`
	RegionsJSON            string  `db:"regions_json"`
	InfraJSON              string  `db:"infra_json"`
	BaseName               string  `db:"base_name"`
}

type knowledgeRow struct {
	PolityID        int32  `db:"polity_id"`
	DomainsJSON     string `db:"domains_json"`
	KnownJSON       string `db:"known_json"`
	AdoptionJSON    string `db:"adoption_json"`
	LowAdoptionJSON string `db:"low_adoption_json"`
	EffectsJSON     string `db:"effects_json"`
}

// LoadPolities reconstructs every polity's non-territory state. Territory
// is rebuilt separately from the grid's owner array (LoadGrid plus a
// RebuildTerritory pass), since the grid's Owner column is the single
// source of truth for ownership. Each polity's RNG is left nil: stream
// state is never serialized, and the caller reseeds it from
// (worldSeed, index) once the polity is registered — see the design notes'
// resolution of the RNG-persistence open question.
func (db *DB) LoadPolities() ([]*polity.Polity, error) {
	var rows []polityRow
	if err := db.conn.Select(&rows, "SELECT * FROM polities ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load polities: %w", err)
	}

	var knowRows []knowledgeRow
	if err := db.conn.Select(&knowRows, "SELECT * FROM polity_knowledge"); err != nil {
		return nil, fmt.Errorf("load knowledge: %w", err)
	}
	knowByID := make(map[int32]knowledgeRow, len(knowRows))
	for _, k := range knowRows {
		knowByID[k.PolityID] = k
	}

	out := make([]*polity.Polity, 0, len(rows))
	for _, r := range rows {
		p := &polity.Polity{
			Index:          r.ID,
			Name:           r.Name,
			BaseName:       r.BaseName,
			Color:          [3]uint8{r.ColorR, r.ColorG, r.ColorB},
			FoundingYear:   r.FoundingYear,
			SpawnRegionKey: r.SpawnRegionKey,
			Type:           polity.Type(r.Type),
			Ideology:       polity.Ideology(r.Ideology),
			Population:     r.Population,
			StartingCell:   worldmap.Coord{X: r.StartingX, Y: r.StartingY},
			Territory:      polity.NewTerritory(),
			Legitimacy:     r.Legitimacy,
			Stability:      r.Stability,
			AvgControl:     r.AvgControl,
			AdminCapacity:  r.AdminCapacity,
			FiscalCapacity: r.FiscalCapacity,
			LogisticsReach: r.LogisticsReach,
			TaxRate:        r.TaxRate,
			TreasurySpend:  r.TreasurySpend,
			Debt:           r.Debt,
			Treasury:       r.Treasury,

			AutonomyPressure:       r.AutonomyPressure,
			EliteDefectionPressure: r.EliteDefectionPressure,
			ConquestMomentumDecay:  r.ConquestMomentumDecay,
			NextSuccessionYear:     r.NextSuccessionYear,
			NextPolicyYear:         r.NextPolicyYear,
			NextElectionYear:       r.NextElectionYear,
			StagnationYears:        r.StagnationYears,
			LastCultureDriftYear:   r.LastCultureDriftYear,
			MajorUpgraded:          r.MajorUpgraded != 0,
			Dead:                   r.Dead != 0,
		}

		json.Unmarshal([]byte(r.BudgetJSON), &p.Budget)
		json.Unmarshal([]byte(r.LeaderJSON), &p.Leader)
		json.Unmarshal([]byte(r.WarJSON), &p.War)
		json.Unmarshal([]byte(r.MacroJSON), &p.Macro)
		json.Unmarshal([]byte(r.CitiesJSON), &p.Cities)
		json.Unmarshal([]byte(r.SocietyJSON), &p.Society)
		json.Unmarshal([]byte(r.RegionsJSON), &p.Regions)

		var infra infraMeta
		if json.Unmarshal([]byte(r.InfraJSON), &infra) == nil {
			p.Roads, p.Ports, p.Factories = infra.Roads, infra.Ports, infra.Factories
		}

		if k, ok := knowByID[r.ID]; ok {
			n := 0
			var known []bool
			json.Unmarshal([]byte(k.KnownJSON), &known)
			n = len(known)
			state := tech.NewState(n)
			state.Known = known
			json.Unmarshal([]byte(k.DomainsJSON), &state.Domains)
			json.Unmarshal([]byte(k.AdoptionJSON), &state.Adoption)
			json.Unmarshal([]byte(k.LowAdoptionJSON), &state.LowAdoptionYears)
			p.Knowledge = state
			json.Unmarshal([]byte(k.EffectsJSON), &p.Effects)
		}

		out = append(out, p)
	}

	return out, nil
}

// LoadTradeMatrix restores the trade-intensity table.
func (db *DB) LoadTradeMatrix(cfg economy.Config) (*economy.Matrix, error) {
	m := economy.NewMatrix(cfg)
	type row struct {
		A         int32   `db:"a"`
		B         int32   `db:"b"`
		Intensity float64 `db:"intensity"`
	}
	var rows []row
	if err := db.conn.Select(&rows, "SELECT a, b, intensity FROM trade_matrix"); err != nil {
		return m, fmt.Errorf("load trade matrix: %w", err)
	}
	for _, r := range rows {
		m.SetDirect(r.A, r.B, r.Intensity)
	}
	return m, nil
}

// RebuildTerritory reconstructs every polity's Territory set from the
// grid's current owner array — the grid, not a separately persisted set,
// is the source of truth for ownership (Section 4.2).
func RebuildTerritory(grid *worldmap.Grid, all []*polity.Polity) {
	byIndex := make(map[int32]*polity.Polity, len(all))
	for _, p := range all {
		byIndex[p.Index] = p
	}
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			owner := grid.At(x, y).Owner
			if owner < 0 {
				continue
			}
			if p, ok := byIndex[owner]; ok {
				p.Territory.Add(worldmap.Coord{X: x, Y: y})
			}
		}
	}
}
