package skins

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"skinvault/internal/ddragon"
	"skinvault/internal/lcu"
	"skinvault/internal/rarity"
)

func enrich(raw *lcu.Skin, champions map[int]ddragon.Champion, chromas map[int]ChromaInfo,
	mastery map[int]MasteryInfo, community map[string]rarity.Tier, version string) Skin {
	championID := raw.ID / 1000
	skinNum := raw.ID % 1000

	name, key := UnknownChampion, UnknownChampion
	if champ, ok := champions[championID]; ok {
		name, key = champ.Name, champ.ID
	}

	tier := rarity.Classify(rarity.Hints{
		SkinID:  raw.ID,
		Name:    raw.Name,
		GemPath: raw.RarityGemPath,
		Rarity:  raw.Rarity,
	}, community)

	lines := make([]int, 0, len(raw.SkinLines))
	for _, l := range raw.SkinLines {
		lines = append(lines, l.ID)
	}

	return Skin{
		ID:           raw.ID,
		Name:         raw.Name,
		ChampionID:   championID,
		ChampionName: name,
		ChampionKey:  key,
		SkinNum:      skinNum,
		Owned:        raw.Owned(),
		IsBase:       skinNum == 0,
		Legacy:       raw.IsLegacy,
		Rarity:       tier,
		RarityRank:   tier.Rank(),
		SkinLines:    lines,
		Chromas:      chromas[raw.ID],
		Mastery:      mastery[championID],
		SplashURL:    ddragon.SplashURL(key, skinNum),
		TileURL:      ddragon.TileURL(key, skinNum),
		LoadingURL:   ddragon.LoadingURL(key, skinNum),
		IconURL:      ddragon.ChampionIconURL(version, key),
		Version:      version,
	}
}

// sortSkins orders by champion name under the locale's collation, then skin number, then id
func sortSkins(records []Skin, lang language.Tag) {
	col := collate.New(lang)
	slices.SortStableFunc(records, func(a, b Skin) int {
		if c := col.CompareString(a.ChampionName, b.ChampionName); c != 0 {
			return c
		}
		if c := cmp.Compare(a.SkinNum, b.SkinNum); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func computeStats(records []Skin) Stats {
	stats := Stats{ByTier: make(map[rarity.Tier]int, len(rarity.Tiers))}
	for _, tier := range rarity.Tiers {
		stats.ByTier[tier] = 0
	}

	champions := make(map[int]bool)
	for _, s := range records {
		stats.ChromasTotal += s.Chromas.Total
		stats.ChromasOwned += s.Chromas.Owned
		if s.IsBase {
			continue
		}
		stats.TotalAvailable++
		if !s.Owned {
			continue
		}
		stats.TotalOwned++
		stats.ByTier[s.Rarity]++
		if s.Legacy {
			stats.Legacy++
		}
		champions[s.ChampionID] = true
	}
	stats.Champions = len(champions)
	return stats
}

// parseLocale accepts Riot-style locales ("en_US") as well as BCP 47 tags
func parseLocale(locale string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

