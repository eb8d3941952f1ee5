package pager

import "regexp"

// Digits is the navigation alphabet. Index 0 is the overview and indexes 1..8
// select a skill slot.
var Digits = [...]string{
	"0️⃣",
	"1️⃣",
	"2️⃣",
	"3️⃣",
	"4️⃣",
	"5️⃣",
	"6️⃣",
	"7️⃣",
	"8️⃣",
}

// DigitIndex maps a reaction emoji to its navigation index.
func DigitIndex(emoji string) (int, bool) {
	for i, digit := range Digits {
		if digit == emoji {
			return i, true
		}
	}
	return 0, false
}

var templatePattern = regexp.MustCompile("-- `([^`]+)` --")

// ExtractTemplate recovers the template embedded in a rendered message.
func ExtractTemplate(content string) (string, bool) {
	m := templatePattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}
