package lcu

import (
	"context"
	"fmt"
)

// Summoner is the logged-in player
type Summoner struct {
	DisplayName   string `json:"displayName"`
	GameName      string `json:"gameName"`
	TagLine       string `json:"tagLine"`
	SummonerID    int64  `json:"summonerId"`
	SummonerLevel int    `json:"summonerLevel"`
	ProfileIconID int    `json:"profileIconId"`
	PUUID         string `json:"puuid"`
}

// Name returns the display name, falling back to the Riot ID
func (s *Summoner) Name() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	if s.GameName != "" && s.TagLine != "" {
		return s.GameName + "#" + s.TagLine
	}
	return s.GameName
}

// Ownership is the LCU ownership sub-structure shared by skins and chromas
type Ownership struct {
	Owned  bool   `json:"owned"`
	Rental Rental `json:"rental"`
}

type Rental struct {
	Rented bool `json:"rented"`
}

type SkinLine struct {
	ID int `json:"id"`
}

// Skin is one cosmetic variant as the LCU reports it. ID is championId*1000 + skin number.
type Skin struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	ChampionID    int        `json:"championId"`
	IsBase        bool       `json:"isBase"`
	Ownership     *Ownership `json:"ownership"`
	RarityGemPath string     `json:"rarityGemPath"`
	Rarity        string     `json:"rarity"`
	SkinLines     []SkinLine `json:"skinLines"`
	IsLegacy      bool       `json:"isLegacy"`
	Chromas       []Chroma   `json:"chromas"`
}

// Owned reports permanent ownership; rentals don't count
func (s *Skin) Owned() bool {
	return s.Ownership != nil && s.Ownership.Owned && !s.Ownership.Rental.Rented
}

// Chroma is a color variant of a skin
type Chroma struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Ownership *Ownership `json:"ownership"`
	OwnedFlag bool       `json:"owned"`
	Unlocked  bool       `json:"unlocked"`
}

// IsOwned accepts any of the three ownership fields the LCU has used
func (c *Chroma) IsOwned() bool {
	return (c.Ownership != nil && c.Ownership.Owned) || c.OwnedFlag || c.Unlocked
}

// Mastery is per-champion mastery progress
type Mastery struct {
	ChampionID     int `json:"championId"`
	ChampionLevel  int `json:"championLevel"`
	ChampionPoints int `json:"championPoints"`
}

// CurrentSummoner returns the logged-in summoner. A missing summonerId is a shape error.
func (c *Client) CurrentSummoner(ctx context.Context) (*Summoner, error) {
	var summoner Summoner
	if err := c.GetJSON(ctx, "/lol-summoner/v1/current-summoner", &summoner); err != nil {
		return nil, err
	}
	if summoner.SummonerID == 0 {
		return nil, fmt.Errorf("%w: summoner missing summonerId", ErrUnexpectedShape)
	}
	return &summoner, nil
}

// SkinsMinimal returns the summoner's full skin inventory. Anything but a JSON array is a shape error.
func (c *Client) SkinsMinimal(ctx context.Context, summonerID int64) ([]Skin, error) {
	var skins []Skin
	endpoint := fmt.Sprintf("/lol-champions/v1/inventories/%d/skins-minimal", summonerID)
	if err := c.GetJSON(ctx, endpoint, &skins); err != nil {
		return nil, err
	}
	if skins == nil {
		return nil, fmt.Errorf("%w: %s returned null", ErrUnexpectedShape, endpoint)
	}
	return skins, nil
}

// ChampionMastery returns mastery for every champion the summoner has played
func (c *Client) ChampionMastery(ctx context.Context, summonerID int64) ([]Mastery, error) {
	var mastery []Mastery
	endpoint := fmt.Sprintf("/lol-collections/v1/inventories/%d/champion-mastery", summonerID)
	if err := c.GetJSON(ctx, endpoint, &mastery); err != nil {
		return nil, err
	}
	return mastery, nil
}

// ChampionSkins returns one champion's skins including chroma detail
func (c *Client) ChampionSkins(ctx context.Context, summonerID int64, championID int) ([]Skin, error) {
	var skins []Skin
	endpoint := fmt.Sprintf("/lol-champions/v1/inventories/%d/champions/%d/skins", summonerID, championID)
	if err := c.GetJSON(ctx, endpoint, &skins); err != nil {
		return nil, err
	}
	return skins, nil
}
