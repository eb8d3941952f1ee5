// Package skill holds skill reference data and the rules that classify a
// skill into its in-game type label.
package skill

import "github.com/louisbranch/skillbar/internal/services/skillbar/domain/build"

// Type is the raw category code carried by reference data.
type Type int

const (
	TypeNone        Type = 0
	TypeStance      Type = 3
	TypeHex         Type = 4
	TypeSpell       Type = 5
	TypeEnchantment Type = 6
	TypeSignet      Type = 7
	TypeWell        Type = 9
	TypeTouch       Type = 10
	TypeWard        Type = 11
	TypeGlyph       Type = 12
	TypeAttack      Type = 14
	TypeShout       Type = 15
	TypePreparation Type = 19
	TypePetAttack   Type = 20
	TypeTrap        Type = 21
	TypeRitual      Type = 22
	TypeItemSpell   Type = 24
	TypeWeaponSpell Type = 25
	TypeForm        Type = 26
	TypeChant       Type = 27
	TypeEcho        Type = 28
)

// WeaponReq is the weapon an attack skill requires.
type WeaponReq int

const (
	WeaponAny    WeaponReq = 0
	WeaponAxe    WeaponReq = 1
	WeaponBow    WeaponReq = 2
	WeaponDagger WeaponReq = 8
	WeaponHammer WeaponReq = 16
	WeaponScythe WeaponReq = 32
	WeaponSpear  WeaponReq = 64
	WeaponRanged WeaponReq = 70
	WeaponSword  WeaponReq = 128
)

// Combo is a dagger attack's position in an assassin combo chain.
type Combo int

const (
	ComboNone    Combo = 0
	ComboLead    Combo = 1
	ComboOffHand Combo = 2
	ComboDual    Combo = 3
)

// FlashEnchantmentFlag marks flash enchantments in Record.Special.
const FlashEnchantmentFlag uint32 = 0x800000

// Costs are the activation costs and timings shown on a skill's detail page.
// Zero means the skill has no such cost.
type Costs struct {
	Upkeep     int
	Adrenaline int
	Energy     int
	Sacrifice  int
	Activation float64
	Recharge   int
	Overcast   int
}

// Record is the immutable reference data for one skill.
type Record struct {
	ID          int
	Name        string
	Description string
	Profession  build.Profession
	Attribute   build.Attribute
	Type        Type
	Elite       bool
	Costs       Costs
	Special     uint32
	WeaponReq   WeaponReq
	Combo       Combo
}
