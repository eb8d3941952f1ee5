// Package build defines the decoded form of a skill template.
package build

// SkillSlots is the fixed number of skills on a bar.
const SkillSlots = 8

// MaxAttributeLevel is the largest level a template's 4-bit field can hold.
const MaxAttributeLevel = 15

// AttributeLevel pairs an attribute with the rank invested in it.
type AttributeLevel struct {
	Attribute Attribute
	Level     int
}

// Build is a decoded skill template. Attributes keep the order in which the
// template defines them; presentation iterates them in that order.
type Build struct {
	Primary    Profession
	Secondary  Profession
	Attributes []AttributeLevel
	Skills     [SkillSlots]int
	// Template is the canonical encoding of this build.
	Template string
}

// Skill returns the skill id in a one-based slot.
func (b Build) Skill(slot int) (int, bool) {
	if slot < 1 || slot > SkillSlots {
		return 0, false
	}
	return b.Skills[slot-1], true
}

// Equal compares the decoded content of two builds, ignoring Template.
func (b Build) Equal(other Build) bool {
	if b.Primary != other.Primary || b.Secondary != other.Secondary {
		return false
	}
	if b.Skills != other.Skills {
		return false
	}
	if len(b.Attributes) != len(other.Attributes) {
		return false
	}
	for i := range b.Attributes {
		if b.Attributes[i] != other.Attributes[i] {
			return false
		}
	}
	return true
}
