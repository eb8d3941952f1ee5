// Package template encodes and decodes Guild Wars skill template codes.
package template

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/skillbar/internal/platform/errors"
	"github.com/louisbranch/skillbar/internal/services/skillbar/domain/build"
)

const (
	// typeSkillTemplate is the header tag of skill templates; equipment
	// templates use a different tag and are rejected.
	typeSkillTemplate = 14
	version           = 0

	professionBase = 4
	attributeBase  = 4
	skillBase      = 8

	maxWidthCode = 15
)

// Decode parses a template code into a Build. The returned Build carries the
// canonical re-encoding of the code in Template.
func Decode(code string) (build.Build, error) {
	code = strings.TrimSpace(code)
	b, err := decode(code)
	if err != nil {
		return build.Build{}, apperrors.WrapWithMetadata(
			apperrors.CodeTemplateInvalid,
			"decode skill template",
			map[string]string{"Template": code},
			err,
		)
	}
	canonical, err := Encode(b)
	if err != nil {
		return build.Build{}, apperrors.WrapWithMetadata(
			apperrors.CodeTemplateInvalid,
			"re-encode skill template",
			map[string]string{"Template": code},
			err,
		)
	}
	b.Template = canonical
	return b, nil
}

func decode(code string) (build.Build, error) {
	if code == "" {
		return build.Build{}, fmt.Errorf("template is empty")
	}
	r, err := newBitReader(code)
	if err != nil {
		return build.Build{}, err
	}

	header, err := r.read(4)
	if err != nil {
		return build.Build{}, err
	}
	ver := header
	// Legacy codes start directly with the version.
	if header == typeSkillTemplate {
		if ver, err = r.read(4); err != nil {
			return build.Build{}, err
		}
	}
	if ver != version {
		return build.Build{}, fmt.Errorf("unsupported template header %d/%d", header, ver)
	}

	professionCode, err := r.read(2)
	if err != nil {
		return build.Build{}, err
	}
	professionWidth := professionCode*2 + professionBase

	var out build.Build
	primary, err := r.read(professionWidth)
	if err != nil {
		return build.Build{}, err
	}
	secondary, err := r.read(professionWidth)
	if err != nil {
		return build.Build{}, err
	}
	out.Primary, out.Secondary = build.Profession(primary), build.Profession(secondary)
	if !out.Primary.Valid() || !out.Secondary.Valid() {
		return build.Build{}, fmt.Errorf("unknown profession %d/%d", primary, secondary)
	}

	count, err := r.read(4)
	if err != nil {
		return build.Build{}, err
	}
	attributeCode, err := r.read(4)
	if err != nil {
		return build.Build{}, err
	}
	attributeWidth := attributeCode + attributeBase
	seen := make(map[build.Attribute]bool, count)
	for i := 0; i < count; i++ {
		id, err := r.read(attributeWidth)
		if err != nil {
			return build.Build{}, err
		}
		level, err := r.read(4)
		if err != nil {
			return build.Build{}, err
		}
		attr := build.Attribute(id)
		if !attr.Known() {
			return build.Build{}, fmt.Errorf("unknown attribute %d", id)
		}
		if seen[attr] {
			return build.Build{}, fmt.Errorf("duplicate attribute %d", id)
		}
		seen[attr] = true
		out.Attributes = append(out.Attributes, build.AttributeLevel{Attribute: attr, Level: level})
	}

	skillCode, err := r.read(4)
	if err != nil {
		return build.Build{}, err
	}
	skillWidth := skillCode + skillBase
	for i := range out.Skills {
		id, err := r.read(skillWidth)
		if err != nil {
			return build.Build{}, err
		}
		out.Skills[i] = id
	}
	return out, nil
}

// Encode writes the canonical template code for b using the narrowest field
// widths that fit its values.
func Encode(b build.Build) (string, error) {
	if !b.Primary.Valid() || !b.Secondary.Valid() {
		return "", encodeError("unknown profession %d/%d", b.Primary, b.Secondary)
	}
	if len(b.Attributes) > 15 {
		return "", encodeError("too many attributes: %d", len(b.Attributes))
	}

	w := &bitWriter{}
	w.write(typeSkillTemplate, 4)
	w.write(version, 4)

	professionWidth := max(bitLength(int(max(b.Primary, b.Secondary))), professionBase)
	professionCode := (professionWidth - professionBase + 1) / 2
	professionWidth = professionCode*2 + professionBase
	w.write(professionCode, 2)
	w.write(int(b.Primary), professionWidth)
	w.write(int(b.Secondary), professionWidth)

	maxAttribute := 0
	seen := make(map[build.Attribute]bool, len(b.Attributes))
	for _, attr := range b.Attributes {
		if attr.Attribute < 0 {
			return "", encodeError("negative attribute %d", attr.Attribute)
		}
		if seen[attr.Attribute] {
			return "", encodeError("duplicate attribute %d", attr.Attribute)
		}
		seen[attr.Attribute] = true
		if attr.Level < 0 || attr.Level > build.MaxAttributeLevel {
			return "", encodeError("attribute %d level %d out of range", attr.Attribute, attr.Level)
		}
		maxAttribute = max(maxAttribute, int(attr.Attribute))
	}
	attributeCode := max(bitLength(maxAttribute)-attributeBase, 0)
	if attributeCode > maxWidthCode {
		return "", encodeError("attribute id %d too large", maxAttribute)
	}
	w.write(len(b.Attributes), 4)
	w.write(attributeCode, 4)
	for _, attr := range b.Attributes {
		w.write(int(attr.Attribute), attributeCode+attributeBase)
		w.write(attr.Level, 4)
	}

	maxSkill := 0
	for _, id := range b.Skills {
		if id < 0 {
			return "", encodeError("negative skill id %d", id)
		}
		maxSkill = max(maxSkill, id)
	}
	skillCode := max(bitLength(maxSkill)-skillBase, 0)
	if skillCode > maxWidthCode {
		return "", encodeError("skill id %d too large", maxSkill)
	}
	w.write(skillCode, 4)
	for _, id := range b.Skills {
		w.write(id, skillCode+skillBase)
	}
	return w.String(), nil
}

func encodeError(format string, args ...any) error {
	return apperrors.Wrap(apperrors.CodeTemplateEncode, "encode skill template", fmt.Errorf(format, args...))
}
