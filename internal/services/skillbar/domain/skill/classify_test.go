package skill

import (
	"testing"

	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/build"
)

func TestClassifyPlainCategories(t *testing.T) {
	t.Parallel()

	tests := map[Type]string{
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
	for typ, want := range tests {
		if got := Classify(Record{Type: typ}); got != want {
			t.Fatalf("Classify(type %d) = %q, want %q", typ, got, want)
		}
	}
}

func TestClassifyUnknownCategoryFallsBack(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{TypeNone, 1, 2, 8, 13, 16, 17, 18, 23, 29, 99, -1} {
		if got := Classify(Record{Type: typ}); got != "Skill" {
			t.Fatalf("Classify(type %d) = %q, want %q", typ, got, "Skill")
		}
	}
}

func TestClassifyEnchantmentChecksFlashBitFirst(t *testing.T) {
	t.Parallel()

	plain := Record{Type: TypeEnchantment, Special: 0x10}
	if got := Classify(plain); got != "Enchantment Spell" {
		t.Fatalf("Classify(plain) = %q, want %q", got, "Enchantment Spell")
	}
	flash := Record{Type: TypeEnchantment, Special: FlashEnchantmentFlag | 0x10}
	if got := Classify(flash); got != "Flash Enchantment Spell" {
		t.Fatalf("Classify(flash) = %q, want %q", got, "Flash Enchantment Spell")
	}
	// The flag means nothing outside enchantments.
	if got := Classify(Record{Type: TypeHex, Special: FlashEnchantmentFlag}); got != "Hex Spell" {
		t.Fatalf("Classify(hex with flag) = %q, want %q", got, "Hex Spell")
	}
}

func TestClassifyAttacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		weapon WeaponReq
		combo  Combo
		want   string
	}{
		{weapon: WeaponAxe, want: "Axe Attack"},
		{weapon: WeaponBow, want: "Bow Attack"},
		{weapon: WeaponHammer, want: "Hammer Attack"},
		{weapon: WeaponScythe, want: "Scythe Attack"},
		{weapon: WeaponSpear, want: "Spear Attack"},
		{weapon: WeaponRanged, want: "Ranged Attack"},
		{weapon: WeaponSword, want: "Sword Attack"},
		{weapon: WeaponDagger, combo: ComboLead, want: "Lead Attack"},
		{weapon: WeaponDagger, combo: ComboOffHand, want: "Off-Hand Attack"},
		{weapon: WeaponDagger, combo: ComboDual, want: "Dual Attack"},
		{weapon: WeaponDagger, combo: ComboNone, want: "Dagger Attack"},
		{weapon: WeaponDagger, combo: 9, want: "Dagger Attack"},
		{weapon: WeaponAny, want: "Melee Attack"},
		{weapon: 3, want: "Melee Attack"},
		// Combo positions only matter for daggers.
		{weapon: WeaponSword, combo: ComboLead, want: "Sword Attack"},
	}
	for _, tc := range tests {
		got := Classify(Record{Type: TypeAttack, WeaponReq: tc.weapon, Combo: tc.combo})
		if got != tc.want {
			t.Fatalf("Classify(weapon %d combo %d) = %q, want %q", tc.weapon, tc.combo, got, tc.want)
		}
	}
}

func TestClassifyRituals(t *testing.T) {
	t.Parallel()

	tests := map[build.Profession]string{
		build.ProfessionRitualist: "Binding Ritual",
		build.ProfessionRanger:    "Nature Ritual",
		build.ProfessionNone:      "Ebon Vanguard Ritual",
		build.ProfessionMonk:      "Ebon Vanguard Ritual",
	}
	for profession, want := range tests {
		if got := Classify(Record{Type: TypeRitual, Profession: profession}); got != want {
			t.Fatalf("Classify(ritual, %s) = %q, want %q", profession.Name(), got, want)
		}
	}
}

func TestClassifyElitePrefixIsAppliedLast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		record Record
		want   string
	}{
		{record: Record{Type: TypeEnchantment, Special: FlashEnchantmentFlag, Elite: true}, want: "Elite Flash Enchantment Spell"},
		{record: Record{Type: TypeAttack, WeaponReq: WeaponDagger, Combo: ComboDual, Elite: true}, want: "Elite Dual Attack"},
		{record: Record{Type: TypeRitual, Profession: build.ProfessionRanger, Elite: true}, want: "Elite Nature Ritual"},
		{record: Record{Type: TypeStance, Elite: true}, want: "Elite Stance"},
		{record: Record{Type: 99, Elite: true}, want: "Elite Skill"},
	}
	for _, tc := range tests {
		if got := Classify(tc.record); got != tc.want {
			t.Fatalf("Classify(%+v) = %q, want %q", tc.record, got, tc.want)
		}
	}
}
