// Package polity implements the per-polity state machine: the yearly
// update pipeline (expansion, war accounting, population, budget,
// stability/legitimacy drift, institutional drift), the polity registry,
// and the territory/city bookkeeping described in design doc Sections 3
// and 4.3.
package polity

import (
	"math/rand/v2"

	"github.com/aeonforge/chronicle/internal/society"
	"github.com/aeonforge/chronicle/internal/tech"
	"github.com/aeonforge/chronicle/internal/war"
	"github.com/aeonforge/chronicle/internal/worldmap"
)

// Type is a polity's fixed behavioral archetype.
type Type uint8

const (
	Warmonger Type = iota
	Pacifist
	Trader
)

// Ideology is a polity's form of government.
type Ideology uint8

const (
	Tribal Ideology = iota
	Chiefdom
	Kingdom
	Empire
	Republic
	Democracy
	Dictatorship
	Federation
	Theocracy
	CityState
)

// City is a population center owned by a polity. The capital is always
// cities[0].
type City struct {
	Location   worldmap.Coord
	Population int64
	IsMajor    bool
}

// Leader holds the scalar traits of a polity's current head of state, each
// in [0,1], per Section 3.
type Leader struct {
	Age              uint16
	YearsInPower     uint16
	Competence       float64
	Coercion         float64
	Diplomacy        float64
	Reformism        float64
	EliteAffinity    float64
	CommonerAffinity float64
	Ambition         float64
}

// BudgetShares are the six yearly spending shares, always renormalized to
// sum to 1.
type BudgetShares struct {
	Military  float64
	Admin     float64
	Infra     float64
	Health    float64
	Education float64
	RnD       float64
}

// Normalize rescales the six shares to sum to 1 (within 1e-9, per the
// Section 8 invariant). A degenerate all-zero input is replaced with an
// even split.
func (b *BudgetShares) Normalize() {
	sum := b.Military + b.Admin + b.Infra + b.Health + b.Education + b.RnD
	if sum <= 0 {
		*b = BudgetShares{Military: 1.0 / 6, Admin: 1.0 / 6, Infra: 1.0 / 6, Health: 1.0 / 6, Education: 1.0 / 6, RnD: 1.0 / 6}
		return
	}
	b.Military /= sum
	b.Admin /= sum
	b.Infra /= sum
	b.Health /= sum
	b.Education /= sum
	b.RnD /= sum
}

// Macro holds the aggregate indices used by diffusion, adoption, and
// demography (Section 3, "Macro state").
type Macro struct {
	FoodSecurity      float64
	MarketAccess      float64
	InstitutionCap    float64
	Connectivity      float64
	Inequality        float64
	KnowledgeStock    float64
	Openness          float64
	Urbanization      float64
	HumanCapital      float64
	Specialization    float64
	IdeaMarket        float64
	Credibility       float64
	Media             float64
	Fragmentation     float64
	InfraFactor       float64
	Access            float64
	ResourceGate      float64
	SurplusFactor     float64
	RoadMobility      float64
	TerrainDefense    float64
	MilitaryStrength  float64
	LogisticsReachEff float64
}

// Resources is the per-year, non-persisted ledger aggregated during
// resources aggregation (Section 4.3 step 11).
type Resources struct {
	Food         float64
	Ore          float64
	Energy       float64
	Construction float64
}

// Polity is the full per-polity state. Index is the stable identity; it
// never changes for the lifetime of the World, even after death.
type Polity struct {
	Index          int32
	Name           string
	BaseName       string // founding-year name; Name may drift away from it, Section 4.8
	Color          [3]uint8
	FoundingYear   int
	SpawnRegionKey string

	Type     Type
	Ideology Ideology

	Population   int64
	StartingCell worldmap.Coord

	Territory *Territory
	Cities    []City
	Roads     []worldmap.Coord
	Ports     []worldmap.Coord
	Factories []worldmap.Coord

	Legitimacy     float64
	Stability      float64
	AvgControl     float64
	AdminCapacity  float64
	FiscalCapacity float64
	LogisticsReach float64
	TaxRate        float64
	TreasurySpend  float64
	Debt           float64
	Treasury       uint64
	Budget         BudgetShares

	Leader Leader
	War    war.State
	Macro  Macro

	AutonomyPressure       float64
	EliteDefectionPressure float64
	ConquestMomentumDecay  float64
	NextSuccessionYear     int
	NextPolicyYear         int
	NextElectionYear       int
	StagnationYears        int
	LastCultureDriftYear   int
	MajorUpgraded          bool

	Knowledge *tech.State
	Effects   tech.Aggregate

	Society society.State

	Regions []Region

	RNG *rand.Rand

	resources Resources // ephemeral, reset every tick, never persisted

	Dead bool
}

// Region is a lazily-created regional sub-state within a polity
// (Section 4.3 step 2).
type Region struct {
	PopShare     float64
	Distance     float64
	LocalControl float64
	Grievance    float64
	ElitePower   float64
}

// Alive reports whether the polity still exists as an active actor.
func (p *Polity) Alive() bool { return !p.Dead }

// ResetResourceLedger clears the per-tick resource ledger; the ledger is
// never persisted across years (Section 4.3 step 11).
func (p *Polity) ResetResourceLedger() { p.resources = Resources{} }

// ResourceLedger returns the current (in-progress) resource ledger.
func (p *Polity) ResourceLedger() Resources { return p.resources }

// AddResources accumulates into the ledger.
func (p *Polity) AddResources(r Resources) {
	p.resources.Food += r.Food
	p.resources.Ore += r.Ore
	p.resources.Energy += r.Energy
	p.resources.Construction += r.Construction
}
