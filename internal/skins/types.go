// Package skins joins the local inventory with reference data into a sorted, summarized skin catalogue.
package skins

import (
	"skinvault/internal/rarity"
)

// UnknownChampion is used for champion ids missing from the reference table
const UnknownChampion = "Unknown"

// Summoner is the inventory owner as presented to callers
type Summoner struct {
	DisplayName    string `json:"displayName"`
	SummonerID     int64  `json:"summonerId"`
	Level          int    `json:"level"`
	ProfileIconID  int    `json:"profileIconId"`
	ProfileIconURL string `json:"profileIconUrl"`
}

// ChromaInfo counts a skin's color variants
type ChromaInfo struct {
	Total int `json:"total"`
	Owned int `json:"owned"`
}

// MasteryInfo is the owning champion's mastery
type MasteryInfo struct {
	Level  int `json:"level"`
	Points int `json:"points"`
}

// Skin is one enriched inventory record
type Skin struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	ChampionID   int         `json:"championId"`
	ChampionName string      `json:"championName"`
	ChampionKey  string      `json:"championKey"`
	SkinNum      int         `json:"skinNum"`
	Owned        bool        `json:"owned"`
	IsBase       bool        `json:"isBase"`
	Legacy       bool        `json:"legacy"`
	Rarity       rarity.Tier `json:"rarity"`
	RarityRank   int         `json:"rarityRank"`
	SkinLines    []int       `json:"skinLines"`
	Chromas      ChromaInfo  `json:"chromas"`
	Mastery      MasteryInfo `json:"mastery"`
	SplashURL    string      `json:"splashUrl"`
	TileURL      string      `json:"tileUrl"`
	LoadingURL   string      `json:"loadingUrl"`
	IconURL      string      `json:"iconUrl"`
	Version      string      `json:"version"`
}

// Stats summarizes a run. Ownership counts cover owned non-base skins; chroma counts cover every record.
type Stats struct {
	TotalOwned     int                 `json:"totalOwned"`
	TotalAvailable int                 `json:"totalAvailable"`
	ByTier         map[rarity.Tier]int `json:"byTier"`
	Legacy         int                 `json:"legacy"`
	ChromasTotal   int                 `json:"chromasTotal"`
	ChromasOwned   int                 `json:"chromasOwned"`
	Champions      int                 `json:"champions"`
}

// Result is the output of one enrichment run
type Result struct {
	Summoner Summoner `json:"summoner"`
	Skins    []Skin   `json:"skins"`
	Stats    Stats    `json:"stats"`
	Total    int      `json:"total"`
	Version  string   `json:"version"`
}
