package rarity

import (
	"strconv"
	"strings"
)

// Hints are the rarity signals carried by one skin record
type Hints struct {
	SkinID  int
	Name    string
	GemPath string // e.g. "/lol-game-data/assets/v1/rarity-gem-icons/legendary.png"
	Rarity  string // client enum, e.g. "kEpic"
}

// Classify resolves a skin's tier. Sources are trusted in this order: the community map,
// the rarity gem asset path, the client's rarity enum, then the name. Base skins are always Standard.
func Classify(h Hints, community map[string]Tier) Tier {
	if h.SkinID%1000 == 0 {
		return Standard
	}

	if tier, ok := community[strconv.Itoa(h.SkinID)]; ok {
		return tier
	}

	if gem := strings.ToLower(h.GemPath); gem != "" {
		for _, g := range gemTiers {
			if strings.Contains(gem, g.substr) {
				return g.tier
			}
		}
	}

	if enum := normalize(h.Rarity); enum != "" && enum != "norarity" {
		if tier, ok := enumTiers[enum]; ok {
			return tier
		}
		return Standard
	}

	if strings.Contains(strings.ToLower(h.Name), "prestige") {
		return Mythic
	}

	return Standard
}
