package build

import "strconv"

// Attribute identifies a profession attribute line.
type Attribute int

// attributeNames is indexed by attribute id; ids 26-28 are unused by the game.
var attributeNames = map[Attribute]string{
	0:  "Fast Casting",
	1:  "Illusion Magic",
	2:  "Domination Magic",
	3:  "Inspiration Magic",
	4:  "Blood Magic",
	5:  "Death Magic",
	6:  "Soul Reaping",
	7:  "Curses",
	8:  "Air Magic",
	9:  "Earth Magic",
	10: "Fire Magic",
	11: "Water Magic",
	12: "Energy Storage",
	13: "Healing Prayers",
	14: "Smiting Prayers",
	15: "Protection Prayers",
	16: "Divine Favor",
	17: "Strength",
	18: "Axe Mastery",
	19: "Hammer Mastery",
	20: "Swordsmanship",
	21: "Tactics",
	22: "Beast Mastery",
	23: "Expertise",
	24: "Wilderness Survival",
	25: "Marksmanship",
	29: "Dagger Mastery",
	30: "Deadly Arts",
	31: "Shadow Arts",
	32: "Communing",
	33: "Restoration Magic",
	34: "Channeling Magic",
	35: "Critical Strikes",
	36: "Spawning Power",
	37: "Spear Mastery",
	38: "Command",
	39: "Motivation",
	40: "Leadership",
	41: "Scythe Mastery",
	42: "Wind Prayers",
	43: "Earth Prayers",
	44: "Mysticism",
}

// Known reports whether a is a real attribute id.
func (a Attribute) Known() bool {
	_, ok := attributeNames[a]
	return ok
}

// Name returns the display name, or "Attribute <id>" for ids outside the table.
func (a Attribute) Name() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return "Attribute " + strconv.Itoa(int(a))
}
