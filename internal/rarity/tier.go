package rarity

import (
	"strings"
)

// Tier is a skin rarity classification
type Tier string

const (
	Standard     Tier = "standard"
	Epic         Tier = "epic"
	Legendary    Tier = "legendary"
	Mythic       Tier = "mythic"
	Ultimate     Tier = "ultimate"
	Exalted      Tier = "exalted"
	Transcendent Tier = "transcendent"
)

// Tiers lists every tier from lowest to highest
var Tiers = []Tier{Standard, Epic, Legendary, Mythic, Ultimate, Exalted, Transcendent}

// Rank orders tiers for display grouping; unknown tiers rank below Standard
func (t Tier) Rank() int {
	for i, tier := range Tiers {
		if tier == t {
			return i
		}
	}
	return -1
}

// Label returns the display label
func (t Tier) Label() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// normalize lowercases an enum-ish value and strips the "k" prefix the client uses ("kEpic" -> "epic")
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 1 && s[0] == 'k' && s[1] >= 'A' && s[1] <= 'Z' {
		s = s[1:]
	}
	return strings.ToLower(s)
}

// ParseTier reads a tier from community data, accepting tier names and client enum spellings
func ParseTier(s string) (Tier, bool) {
	n := normalize(s)
	for _, tier := range Tiers {
		if string(tier) == n {
			return tier, true
		}
	}
	switch n {
	case "norarity", "common":
		return Standard, true
	case "rare":
		return Epic, true
	}
	return "", false
}

// enumTiers maps the local client's rarity enum. Anything else is Standard.
var enumTiers = map[string]Tier{
	"ultimate":  Ultimate,
	"mythic":    Mythic,
	"legendary": Legendary,
	"epic":      Epic,
	"rare":      Epic,
	"common":    Standard,
}

// gemTiers is checked in order, rarest first; the first substring found wins
var gemTiers = []struct {
	substr string
	tier   Tier
}{
	{"transcendent", Transcendent},
	{"ultimate", Ultimate},
	{"mythic", Mythic},
	{"exalted", Mythic},
	{"legendary", Legendary},
	{"epic", Epic},
}
