package skill

import "github.com/louisbranch/skillbar/internal/services/skillbar/domain/build"

const fallbackLabel = "Skill"

// baseLabels covers the categories that need no further discrimination.
var baseLabels = map[Type]string{
	TypeStance:      "Stance",
	TypeHex:         "Hex Spell",
	TypeSpell:       "Spell",
	TypeSignet:      "Signet",
	TypeWell:        "Well Spell",
	TypeTouch:       "Touch Skill",
	TypeWard:        "Ward Spell",
	TypeGlyph:       "Glyph",
	TypeShout:       "Shout",
	TypePreparation: "Preparation",
	TypePetAttack:   "Pet Attack",
	TypeTrap:        "Trap",
	TypeItemSpell:   "Item Spell",
	TypeWeaponSpell: "Weapon Spell",
	TypeForm:        "Form",
	TypeChant:       "Chant",
	TypeEcho:        "Echo",
}

var attackLabels = map[WeaponReq]string{
	WeaponAxe:    "Axe Attack",
	WeaponBow:    "Bow Attack",
	WeaponHammer: "Hammer Attack",
	WeaponScythe: "Scythe Attack",
	WeaponSpear:  "Spear Attack",
	WeaponRanged: "Ranged Attack",
	WeaponSword:  "Sword Attack",
}

var daggerLabels = map[Combo]string{
	ComboLead:    "Lead Attack",
	ComboOffHand: "Off-Hand Attack",
	ComboDual:    "Dual Attack",
}

// Classify returns the human-readable type label of a skill, such as
// "Elite Flash Enchantment Spell" or "Off-Hand Attack". It never fails:
// unknown category codes yield "Skill".
func Classify(r Record) string {
	label := typeLabel(r)
	if r.Elite {
		return "Elite " + label
	}
	return label
}

func typeLabel(r Record) string {
	switch r.Type {
	case TypeEnchantment:
		if r.Special&FlashEnchantmentFlag != 0 {
			return "Flash Enchantment Spell"
		}
		return "Enchantment Spell"
	case TypeAttack:
		if r.WeaponReq == WeaponDagger {
			if label, ok := daggerLabels[r.Combo]; ok {
				return label
			}
			return "Dagger Attack"
		}
		if label, ok := attackLabels[r.WeaponReq]; ok {
			return label
		}
		return "Melee Attack"
	case TypeRitual:
		switch r.Profession {
		case build.ProfessionRitualist:
			return "Binding Ritual"
		case build.ProfessionRanger:
			return "Nature Ritual"
		default:
			return "Ebon Vanguard Ritual"
		}
	}
	if label, ok := baseLabels[r.Type]; ok {
		return label
	}
	return fallbackLabel
}
