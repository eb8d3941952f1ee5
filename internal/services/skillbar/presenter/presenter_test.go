package presenter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/build"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/skill"
)

var testMarkers = Markers{
	Template:   ":tpl:",
	Upkeep:     ":u:",
	Adrenaline: ":a:",
	Energy:     ":e:",
	Sacrifice:  ":s:",
	Activation: ":c:",
	Recharge:   ":r:",
	Overcast:   ":x:",
}

func testBuild() build.Build {
	return build.Build{
		Primary:   build.ProfessionMesmer,
		Secondary: build.ProfessionElementalist,
		Attributes: []build.AttributeLevel{
			{Attribute: 2, Level: 12},
			{Attribute: 3, Level: 10},
			{Attribute: 0, Level: 8},
		},
		Skills:   [build.SkillSlots]int{25, 26, 27, 28, 29, 30, 31, 32},
		Template: "OQZDI8oACZoxGc0hHfAC",
	}
}

func testCatalog() *skill.Catalog {
	return skill.NewCatalog([]skill.Record{
		{
			ID:          25,
			Name:        "Mantra of Persistence",
			Description: "Stance. Spells cost less.",
			Profession:  build.ProfessionMesmer,
			Attribute:   3,
			Type:        skill.TypeStance,
			Costs:       skill.Costs{Energy: 10, Recharge: 20},
		},
		{
			ID:          27,
			Name:        "Shadow Form",
			Description: "Elite Enchantment Spell.",
			Profession:  build.ProfessionAssassin,
			Attribute:   31,
			Type:        skill.TypeEnchantment,
			Elite:       true,
			Special:     skill.FlashEnchantmentFlag,
			Costs:       skill.Costs{Upkeep: 1, Energy: 5, Activation: 0.25, Recharge: 45, Overcast: 2, Sacrifice: 0},
		},
		{
			ID:          28,
			Name:        "Resurrection Signet",
			Description: "Resurrect target party member.",
			Costs:       skill.Costs{Activation: 3},
			Type:        skill.TypeSignet,
		},
		{
			ID:          29,
			Name:        "\"Charge!\"",
			Description: "Shout.",
			Profession:  build.ProfessionWarrior,
			Type:        skill.TypeShout,
			Costs:       skill.Costs{Adrenaline: 5},
		},
		{
			ID:          31,
			Name:        "Fox Fangs",
			Description: "Off-Hand Attack. Unblockable.",
			Profession:  build.ProfessionAssassin,
			Attribute:   29,
			Type:        skill.TypeAttack,
			WeaponReq:   skill.WeaponDagger,
			Combo:       skill.ComboOffHand,
			Costs: skill.Costs{
				Upkeep:     1,
				Adrenaline: 4,
				Energy:     5,
				Sacrifice:  10,
				Activation: 0.75,
				Recharge:   8,
				Overcast:   3,
			},
		},
	})
}

func TestPresentOverview(t *testing.T) {
	t.Parallel()

	p := New(testCatalog(), testMarkers)
	got, ok := p.Present(testBuild(), 0)
	if !ok {
		t.Fatal("expected overview")
	}
	want := []string{
		"Mesmer Me / E Elementalist -- `OQZDI8oACZoxGc0hHfAC` -- :tpl:",
		"Domination Magic: **12** Inspiration Magic: **10** Fast Casting: **8**",
		"",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("overview mismatch (-want +got):\n%s", diff)
	}
}

func TestPresentSkillPage(t *testing.T) {
	t.Parallel()

	p := New(testCatalog(), testMarkers)
	got, ok := p.Present(testBuild(), 3)
	if !ok {
		t.Fatal("expected page 3")
	}
	want := []string{
		"Mesmer Me / E Elementalist -- `OQZDI8oACZoxGc0hHfAC` -- :tpl:",
		"Domination Magic: **12** Inspiration Magic: **10** Fast Casting: **8**",
		"",
		"Skill 3: **Shadow Form** -- <https://wiki.guildwars.com/wiki/Shadow%20Form>",
		"Elite Enchantment Spell.",
		"",
		"-1 :u: 5 :e: 0.25 :c: 45 :r: 2 :x: Prof: **Assassin** Attrb: **Shadow Arts** Type: **Elite Flash Enchantment Spell**",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestPresentOrdersEveryCost(t *testing.T) {
	t.Parallel()

	p := New(testCatalog(), testMarkers)
	got, ok := p.Present(testBuild(), 7)
	if !ok {
		t.Fatal("expected page 7")
	}
	want := []string{
		"Skill 7: **Fox Fangs** -- <https://wiki.guildwars.com/wiki/Fox%20Fangs>",
		"Off-Hand Attack. Unblockable.",
		"",
		"-1 :u: 4 :a: 5 :e: 10 :s: 0.75 :c: 8 :r: 3 :x: Prof: **Assassin** Attrb: **Dagger Mastery** Type: **Off-Hand Attack**",
	}
	if diff := cmp.Diff(want, got[3:]); diff != "" {
		t.Fatalf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestPresentOmitsZeroFields(t *testing.T) {
	t.Parallel()

	p := New(testCatalog(), testMarkers)
	tests := map[int]string{
		1: "10 :e: 20 :r: Prof: **Mesmer** Attrb: **Inspiration Magic** Type: **Stance**",
		4: "3 :c: Type: **Signet**",
		5: "5 :a: Prof: **Warrior** Type: **Shout**",
	}
	for page, want := range tests {
		got, ok := p.Present(testBuild(), page)
		if !ok {
			t.Fatalf("page %d: expected lines", page)
		}
		if got[len(got)-1] != want {
			t.Fatalf("page %d line 7 = %q, want %q", page, got[len(got)-1], want)
		}
	}
}

func TestPresentEscapesWikiLink(t *testing.T) {
	t.Parallel()

	p := New(testCatalog(), testMarkers)
	got, ok := p.Present(testBuild(), 5)
	if !ok {
		t.Fatal("expected page 5")
	}
	want := "Skill 5: **\"Charge!\"** -- <https://wiki.guildwars.com/wiki/%22Charge!%22>"
	if got[3] != want {
		t.Fatalf("line 4 = %q, want %q", got[3], want)
	}
}

func TestWikiLinkEscapesURIComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{name: "Shadow Form", want: "Shadow%20Form"},
		{name: "Zealot's Fire", want: "Zealot's%20Fire"},
		{name: "Aura of Faith (PvP)", want: "Aura%20of%20Faith%20(PvP)"},
		{name: "Mark*~_-.", want: "Mark*~_-."},
		{name: "a+b/c?d&e#f", want: "a%2Bb%2Fc%3Fd%26e%23f"},
		{name: "100%!", want: "100%25!"},
		{name: "Ürgoz", want: "%C3%9Crgoz"},
	}
	for _, tc := range tests {
		if got := WikiLink(tc.name); got != WikiBase+tc.want {
			t.Fatalf("WikiLink(%q) = %q, want %q", tc.name, got, WikiBase+tc.want)
		}
	}
}

func TestPresentAbsentPages(t *testing.T) {
	t.Parallel()

	p := New(testCatalog(), testMarkers)
	for _, page := range []int{-1, 2, 6, 9, 100} {
		if lines, ok := p.Present(testBuild(), page); ok || lines != nil {
			t.Fatalf("page %d = %v, %v; want absent", page, lines, ok)
		}
	}
}

func TestPresentWithoutCatalogStillRendersOverview(t *testing.T) {
	t.Parallel()

	p := New(nil, Markers{})
	b := build.Build{Primary: build.ProfessionWarrior, Template: "OQAAAAAAAAAAAAAA"}
	got, ok := p.Present(b, 0)
	if !ok {
		t.Fatal("expected overview")
	}
	want := []string{"Warrior W / X None -- `OQAAAAAAAAAAAAAA` -- " + DefaultMarkers().Template, "", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("overview mismatch (-want +got):\n%s", diff)
	}
	if _, ok := p.Present(b, 1); ok {
		t.Fatal("expected absent page without catalog")
	}
}

func TestPresentIsDeterministic(t *testing.T) {
	t.Parallel()

	p := New(testCatalog(), testMarkers)
	first, _ := p.Present(testBuild(), 3)
	second, _ := p.Present(testBuild(), 3)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeat mismatch (-first +second):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	if got := Render([]string{"a", "", "b"}); got != "a\n\nb" {
		t.Fatalf("Render = %q, want %q", got, "a\n\nb")
	}
}

func TestMarkersWithDefaultsKeepsOverrides(t *testing.T) {
	t.Parallel()

	got := Markers{Energy: "<:energy:123>"}.WithDefaults()
	want := DefaultMarkers()
	want.Energy = "<:energy:123>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markers mismatch (-want +got):\n%s", diff)
	}
}
