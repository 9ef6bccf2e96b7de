package tech

// Domain indices. Only a subset is referenced by name elsewhere in the
// core (innovation weighting in Section 4.4, stability drift in Section
// 4.7); the rest round out NumDomains.
const (
	DomainSubsistence  = 0
	DomainMaterials    = 1
	DomainEnergy       = 2
	DomainInformation  = 3
	DomainInstitutions = 4
	DomainHealth       = 5
	DomainEducation    = 6
	DomainMilitary     = 7
	DomainTrade        = 8
	DomainCivics       = 9
)

// Named tech IDs used by static effect/multiplier tables and referenced by
// the testable scenarios in spec.md Section 8 (Agriculture must be ID 20).
const (
	Foraging               ID = 0
	FireMaking             ID = 1
	StoneTools             ID = 2
	Pottery                ID = 3
	AnimalTracking         ID = 4
	Weaving                ID = 5
	BoneTools              ID = 6
	Basketry               ID = 7
	FishingTackle          ID = 8
	Trapping               ID = 9
	Herbalism              ID = 10
	OralTradition          ID = 11
	Shamanism              ID = 12
	Domestication          ID = 13
	Horticulture           ID = 14
	Sedentism              ID = 15
	Granaries              ID = 16
	Ceramics               ID = 17
	LandManagement         ID = 18
	PlowDesign             ID = 19
	Agriculture            ID = 20
	Irrigation             ID = 21
	AnimalHusbandry        ID = 22
	BronzeWorking          ID = 23
	Writing                ID = 24
	CivilService           ID = 25
	Mathematics            ID = 26
	Currency               ID = 27
	IronWorking            ID = 28
	Engineering            ID = 29
	ConstructionRoads      ID = 30
	Shipbuilding           ID = 31
	Navigation             ID = 32
	Sanitation             ID = 33
	Medicine               ID = 34
	Philosophy             ID = 35
	University             ID = 36
	Education              ID = 37
	Economics              ID = 38
	Steam                  ID = 39
	Industrialization      ID = 40
	Railroad               ID = 41
	Electricity            ID = 42
	Vaccination            ID = 43
	Penicillin             ID = 44
	MassProduction         ID = 45
	Refrigeration          ID = 46
	Flight                 ID = 47
	Computers              ID = 48
	PersonalComputers      ID = 49
	Internet               ID = 50
	ArtificialIntelligence ID = 51
)

// DefaultDAG returns the static technology table shipped with Chronicle.
// Every ID's prerequisites reference strictly smaller IDs, so the table is
// already in topological order.
func DefaultDAG() *DAG {
	t := func(id ID, name string, domain int, difficulty float64, gates Gates, prereqs ...ID) Tech {
		return Tech{ID: id, Name: name, Domain: domain, Prereqs: prereqs, Threshold: 1.0 + difficulty*3.0, Difficulty: difficulty, Gates: gates}
	}
	techs := []Tech{
		t(Foraging, "Foraging", DomainSubsistence, 0.02, Gates{}),
		t(FireMaking, "Fire Making", DomainSubsistence, 0.03, Gates{}),
		t(StoneTools, "Stone Tools", DomainMaterials, 0.03, Gates{}),
		t(Pottery, "Pottery", DomainMaterials, 0.05, Gates{}, FireMaking),
		t(AnimalTracking, "Animal Tracking", DomainSubsistence, 0.04, Gates{}, Foraging),
		t(Weaving, "Weaving", DomainMaterials, 0.06, Gates{}, Pottery),
		t(BoneTools, "Bone Tools", DomainMaterials, 0.04, Gates{}, StoneTools),
		t(Basketry, "Basketry", DomainMaterials, 0.05, Gates{}, Weaving),
		t(FishingTackle, "Fishing Tackle", DomainSubsistence, 0.05, Gates{}, BoneTools),
		t(Trapping, "Trapping", DomainSubsistence, 0.05, Gates{}, AnimalTracking),
		t(Herbalism, "Herbalism", DomainHealth, 0.06, Gates{}, Foraging),
		t(OralTradition, "Oral Tradition", DomainInformation, 0.04, Gates{}, FireMaking),
		t(Shamanism, "Shamanism", DomainInstitutions, 0.07, Gates{}, OralTradition),
		t(Domestication, "Domestication", DomainSubsistence, 0.08, Gates{}, Trapping),
		t(Horticulture, "Horticulture", DomainSubsistence, 0.07, Gates{}, Herbalism),
		t(Sedentism, "Sedentism", DomainInstitutions, 0.08, Gates{}, Shamanism),
		t(Granaries, "Granaries", DomainSubsistence, 0.09, Gates{RequiresConstruction: true}, Basketry, Sedentism),
		t(Ceramics, "Ceramics", DomainMaterials, 0.08, Gates{}, Pottery),
		t(LandManagement, "Land Management", DomainSubsistence, 0.09, Gates{}, Sedentism),
		t(PlowDesign, "Plow Design", DomainMaterials, 0.10, Gates{}, Ceramics),
		t(Agriculture, "Agriculture", DomainSubsistence, 0.10, Gates{}, Domestication, LandManagement, PlowDesign),
		t(Irrigation, "Irrigation", DomainSubsistence, 0.11, Gates{RequiresConstruction: true}, Agriculture),
		t(AnimalHusbandry, "Animal Husbandry", DomainSubsistence, 0.11, Gates{}, Domestication, Agriculture),
		t(BronzeWorking, "Bronze Working", DomainMaterials, 0.13, Gates{RequiresOre: true}, Ceramics),
		t(Writing, "Writing", DomainInformation, 0.14, Gates{}, Agriculture, BronzeWorking),
		t(CivilService, "Civil Service", DomainInstitutions, 0.16, Gates{}, Writing),
		t(Mathematics, "Mathematics", DomainInformation, 0.16, Gates{}, Writing),
		t(Currency, "Currency", DomainTrade, 0.15, Gates{}, BronzeWorking),
		t(IronWorking, "Iron Working", DomainMaterials, 0.18, Gates{RequiresOre: true}, BronzeWorking),
		t(Engineering, "Engineering", DomainMaterials, 0.20, Gates{RequiresConstruction: true}, Mathematics, IronWorking),
		t(ConstructionRoads, "Construction/Roads", DomainMaterials, 0.18, Gates{RequiresConstruction: true}, Engineering),
		t(Shipbuilding, "Shipbuilding", DomainMaterials, 0.20, Gates{RequiresConstruction: true}, Engineering),
		t(Navigation, "Navigation", DomainInformation, 0.19, Gates{}, Mathematics),
		t(Sanitation, "Sanitation", DomainHealth, 0.21, Gates{RequiresConstruction: true}, Engineering),
		t(Medicine, "Medicine", DomainHealth, 0.20, Gates{}, Writing, Herbalism),
		t(Philosophy, "Philosophy", DomainInstitutions, 0.19, Gates{}, Writing),
		t(University, "University", DomainInstitutions, 0.24, Gates{RequiresConstruction: true}, Philosophy, Mathematics),
		t(Education, "Education", DomainEducation, 0.25, Gates{}, University),
		t(Economics, "Economics", DomainTrade, 0.27, Gates{}, Currency, University),
		t(Steam, "Steam", DomainEnergy, 0.32, Gates{RequiresEnergy: true}, Engineering, IronWorking),
		t(Industrialization, "Industrialization", DomainMaterials, 0.38, Gates{RequiresEnergy: true, RequiresConstruction: true}, Steam),
		t(Railroad, "Railroad", DomainEnergy, 0.36, Gates{RequiresEnergy: true, RequiresConstruction: true}, Steam, ConstructionRoads),
		t(Electricity, "Electricity", DomainEnergy, 0.42, Gates{RequiresEnergy: true}, Industrialization),
		t(Vaccination, "Vaccination", DomainHealth, 0.40, Gates{}, Medicine, University),
		t(Penicillin, "Penicillin", DomainHealth, 0.46, Gates{}, Vaccination),
		t(MassProduction, "Mass Production", DomainMaterials, 0.48, Gates{RequiresEnergy: true}, Industrialization, Electricity),
		t(Refrigeration, "Refrigeration", DomainMaterials, 0.44, Gates{RequiresEnergy: true}, Electricity),
		t(Flight, "Flight", DomainEnergy, 0.50, Gates{RequiresEnergy: true}, Engineering, Electricity),
		t(Computers, "Computers", DomainInformation, 0.52, Gates{RequiresEnergy: true}, Electricity, Mathematics),
		t(PersonalComputers, "Personal Computers", DomainInformation, 0.54, Gates{RequiresEnergy: true}, Computers),
		t(Internet, "Internet", DomainInformation, 0.58, Gates{RequiresEnergy: true}, PersonalComputers),
		t(ArtificialIntelligence, "Artificial Intelligence", DomainInformation, 0.66, Gates{RequiresEnergy: true}, Internet),
	}
	return NewDAG(techs)
}

// inducedOf classifies a tech's economic character for the discovery
// hazard's induced_bias term (Section 4.4: "inferred from the tech
// name+domain").
func inducedOf(id ID) Induced {
	switch id {
	case Irrigation, AnimalHusbandry, Engineering, Industrialization, MassProduction, Railroad:
		return InducedLaborSaving
	case Steam, Electricity, Refrigeration, Flight:
		return InducedEnergyUsing
	case BronzeWorking, IronWorking, Ceramics, PlowDesign:
		return InducedMaterials
	case Writing, Mathematics, Navigation, Computers, PersonalComputers, Internet, ArtificialIntelligence:
		return InducedInformation
	case Shamanism, Sedentism, CivilService, Philosophy, University, Education, Economics:
		return InducedInstitutions
	default:
		return InducedNone
	}
}
