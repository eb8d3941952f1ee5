package build

import "strconv"

// Profession identifies a primary or secondary profession.
type Profession int

const (
	ProfessionNone Profession = iota
	ProfessionWarrior
	ProfessionRanger
	ProfessionMonk
	ProfessionNecromancer
	ProfessionMesmer
	ProfessionElementalist
	ProfessionAssassin
	ProfessionRitualist
	ProfessionParagon
	ProfessionDervish
)

// MaxProfession is the highest profession id a template may carry.
const MaxProfession = ProfessionDervish

type professionInfo struct {
	name         string
	abbreviation string
}

var professions = [...]professionInfo{
	ProfessionNone:         {name: "None", abbreviation: "X"},
	ProfessionWarrior:      {name: "Warrior", abbreviation: "W"},
	ProfessionRanger:       {name: "Ranger", abbreviation: "R"},
	ProfessionMonk:         {name: "Monk", abbreviation: "Mo"},
	ProfessionNecromancer:  {name: "Necromancer", abbreviation: "N"},
	ProfessionMesmer:       {name: "Mesmer", abbreviation: "Me"},
	ProfessionElementalist: {name: "Elementalist", abbreviation: "E"},
	ProfessionAssassin:     {name: "Assassin", abbreviation: "A"},
	ProfessionRitualist:    {name: "Ritualist", abbreviation: "Rt"},
	ProfessionParagon:      {name: "Paragon", abbreviation: "P"},
	ProfessionDervish:      {name: "Dervish", abbreviation: "D"},
}

// Valid reports whether p is a known profession id.
func (p Profession) Valid() bool {
	return p >= ProfessionNone && p <= MaxProfession
}

// Name returns the display name, or "Profession <id>" for unknown ids.
func (p Profession) Name() string {
	if !p.Valid() {
		return "Profession " + strconv.Itoa(int(p))
	}
	return professions[p].name
}

// Abbreviation returns the short in-game tag (W, Mo, Rt…).
func (p Profession) Abbreviation() string {
	if !p.Valid() {
		return "?"
	}
	return professions[p].abbreviation
}
