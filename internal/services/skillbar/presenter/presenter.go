// Package presenter turns a decoded build into the lines of a chat message.
package presenter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/build"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/skill"
)

// WikiBase prefixes skill reference links.
const WikiBase = "https://wiki.guildwars.com/wiki/"

// OverviewPage is the page without a skill detail block.
const OverviewPage = 0

// Presenter renders builds against a skill catalog.
type Presenter struct {
	Catalog *skill.Catalog
	Markers Markers
}

// New returns a presenter with markers defaulted.
func New(catalog *skill.Catalog, markers Markers) *Presenter {
	return &Presenter{Catalog: catalog, Markers: markers.WithDefaults()}
}

// Present returns the message lines for page of b. Page 0 is the overview
// (header, attributes, blank line). Pages 1..8 add the detail block for that
// slot. It reports false when the page is out of range or the slot's skill
// has no catalog record.
func (p *Presenter) Present(b build.Build, page int) ([]string, bool) {
	if page < OverviewPage || page > build.SkillSlots {
		return nil, false
	}
	lines := []string{p.header(b), attributes(b), ""}
	if page == OverviewPage {
		return lines, true
	}

	id, _ := b.Skill(page)
	record, ok := p.Catalog.Lookup(id)
	if !ok {
		return nil, false
	}
	return append(lines,
		"Skill "+strconv.Itoa(page)+": **"+record.Name+"** -- <"+WikiLink(record.Name)+">",
		record.Description,
		"",
		p.details(record),
	), true
}

// Render joins lines into a message body.
func Render(lines []string) string {
	return strings.Join(lines, "\n")
}

// componentUnescaper restores the characters that URI component encoding
// leaves literal but query escaping does not.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// WikiLink returns the reference page URL for a skill name. The name is
// escaped as a URI component: letters, digits and -_.!~*'() stay literal.
func WikiLink(name string) string {
	return WikiBase + componentUnescaper.Replace(url.QueryEscape(name))
}

func (p *Presenter) header(b build.Build) string {
	return b.Primary.Name() + " " + b.Primary.Abbreviation() +
		" / " + b.Secondary.Abbreviation() + " " + b.Secondary.Name() +
		" -- `" + b.Template + "` -- " + p.Markers.Template
}

func attributes(b build.Build) string {
	parts := make([]string, 0, len(b.Attributes))
	for _, attr := range b.Attributes {
		parts = append(parts, attr.Attribute.Name()+": **"+strconv.Itoa(attr.Level)+"**")
	}
	return strings.Join(parts, " ")
}

func (p *Presenter) details(r skill.Record) string {
	var parts []string
	addCost := func(v int, prefix, marker string) {
		if v != 0 {
			parts = append(parts, prefix+strconv.Itoa(v)+" "+marker)
		}
	}
	addCost(r.Costs.Upkeep, "-", p.Markers.Upkeep)
	addCost(r.Costs.Adrenaline, "", p.Markers.Adrenaline)
	addCost(r.Costs.Energy, "", p.Markers.Energy)
	addCost(r.Costs.Sacrifice, "", p.Markers.Sacrifice)
	if r.Costs.Activation != 0 {
		parts = append(parts, strconv.FormatFloat(r.Costs.Activation, 'f', -1, 64)+" "+p.Markers.Activation)
	}
	addCost(r.Costs.Recharge, "", p.Markers.Recharge)
	addCost(r.Costs.Overcast, "", p.Markers.Overcast)

	if r.Profession != build.ProfessionNone && r.Profession.Valid() {
		parts = append(parts, "Prof: **"+r.Profession.Name()+"**")
	}
	// Attribute 0 doubles as "no attribute" in reference data.
	if r.Attribute != 0 && r.Attribute.Known() {
		parts = append(parts, "Attrb: **"+r.Attribute.Name()+"**")
	}
	if r.Type != skill.TypeNone {
		parts = append(parts, "Type: **"+skill.Classify(r)+"**")
	}
	return strings.Join(parts, " ")
}
