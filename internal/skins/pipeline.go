package skins

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"skinvault/internal/constants"
	"skinvault/internal/ddragon"
	"skinvault/internal/lcu"
	"skinvault/internal/rarity"
)

// LocalService is the subset of the LCU API a run reads
type LocalService interface {
	CurrentSummoner(ctx context.Context) (*lcu.Summoner, error)
	SkinsMinimal(ctx context.Context, summonerID int64) ([]lcu.Skin, error)
	ChampionMastery(ctx context.Context, summonerID int64) ([]lcu.Mastery, error)
	ChampionSkins(ctx context.Context, summonerID int64, championID int) ([]lcu.Skin, error)
}

// ReferenceData resolves the dataset version and champion table
type ReferenceData interface {
	Version(ctx context.Context) (string, error)
	Champions(ctx context.Context) (map[int]ddragon.Champion, error)
	Reset()
}

// RarityData supplies the community rarity map
type RarityData interface {
	CommunityMap(ctx context.Context) map[string]rarity.Tier
	Reset()
}

// Dialer opens a local service session for a set of credentials
type Dialer func(creds *lcu.Credentials) LocalService

// DialLCU returns a Dialer backed by lcu.Client, throttled to rps when rps > 0
func DialLCU(rps float64) Dialer {
	return func(creds *lcu.Credentials) LocalService {
		return lcu.NewClient(creds, lcu.WithRateLimit(rps))
	}
}

// Pipeline builds enriched skin catalogues
type Pipeline struct {
	reference ReferenceData
	rarity    RarityData
	dial      Dialer
	lang      language.Tag
	logger    zerolog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithDialer replaces the local service constructor
func WithDialer(dial Dialer) Option {
	return func(p *Pipeline) { p.dial = dial }
}

// WithLocale sets the collation locale for champion names (e.g. "en_US", "ko_KR")
func WithLocale(locale string) Option {
	return func(p *Pipeline) { p.lang = parseLocale(locale) }
}

// NewPipeline creates a pipeline over shared reference and rarity caches
func NewPipeline(reference ReferenceData, rarityData RarityData, logger zerolog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		reference: reference,
		rarity:    rarityData,
		dial:      DialLCU(0),
		lang:      language.AmericanEnglish,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Refresh clears the reference and rarity caches, then builds
func (p *Pipeline) Refresh(ctx context.Context, creds *lcu.Credentials) (*Result, error) {
	p.reference.Reset()
	p.rarity.Reset()
	return p.Build(ctx, creds)
}

// Build runs one enrichment. Mastery, chroma and rarity lookups are best-effort;
// everything else fails the run.
func (p *Pipeline) Build(ctx context.Context, creds *lcu.Credentials) (*Result, error) {
	logger := p.logger.With().Str("run_id", uuid.NewString()).Logger()
	svc := p.dial(creds)

	summoner, err := svc.CurrentSummoner(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch current summoner")
		return nil, fmt.Errorf("current summoner: %w", err)
	}
	logger = logger.With().Int64("summoner_id", summoner.SummonerID).Logger()

	inventory, err := svc.SkinsMinimal(ctx, summoner.SummonerID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch skin inventory")
		return nil, fmt.Errorf("skin inventory: %w", err)
	}

	version, err := p.reference.Version(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve reference version")
		return nil, err
	}
	champions, err := p.reference.Champions(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve champion table")
		return nil, err
	}

	championIDs := partition(inventory)
	logger.Debug().Int("skins", len(inventory)).Int("champions", len(championIDs)).Msg("inventory fetched")

	mastery := p.fetchMastery(ctx, svc, summoner.SummonerID, logger)
	chromas := p.fetchChromas(ctx, svc, summoner.SummonerID, championIDs, logger)
	community := p.rarity.CommunityMap(ctx)

	records := make([]Skin, 0, len(inventory))
	for i := range inventory {
		records = append(records, enrich(&inventory[i], champions, chromas, mastery, community, version))
	}
	sortSkins(records, p.lang)

	stats := computeStats(records)
	logger.Info().
		Int("owned", stats.TotalOwned).
		Int("available", stats.TotalAvailable).
		Str("version", version).
		Msg("skin catalogue built")

	return &Result{
		Summoner: Summoner{
			DisplayName:    summoner.Name(),
			SummonerID:     summoner.SummonerID,
			Level:          summoner.SummonerLevel,
			ProfileIconID:  summoner.ProfileIconID,
			ProfileIconURL: ddragon.ProfileIconURL(version, summoner.ProfileIconID),
		},
		Skins:   records,
		Stats:   stats,
		Total:   stats.TotalOwned,
		Version: version,
	}, nil
}

// partition returns the distinct champion ids in inventory order
func partition(inventory []lcu.Skin) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, s := range inventory {
		id := s.ID / 1000
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func (p *Pipeline) fetchMastery(ctx context.Context, svc LocalService, summonerID int64, logger zerolog.Logger) map[int]MasteryInfo {
	result := make(map[int]MasteryInfo)
	entries, err := svc.ChampionMastery(ctx, summonerID)
	if err != nil {
		logger.Warn().Err(err).Msg("champion mastery unavailable")
		return result
	}
	for _, m := range entries {
		result[m.ChampionID] = MasteryInfo{Level: m.ChampionLevel, Points: m.ChampionPoints}
	}
	return result
}

// fetchChromas reads per-champion skin detail with at most ChromaConcurrency requests in flight.
// A failed champion contributes nothing and never cancels its siblings.
func (p *Pipeline) fetchChromas(ctx context.Context, svc LocalService, summonerID int64, championIDs []int, logger zerolog.Logger) map[int]ChromaInfo {
	perChampion := make([][]lcu.Skin, len(championIDs))

	g := new(errgroup.Group)
	g.SetLimit(constants.ChromaConcurrency)
	for i, championID := range championIDs {
		g.Go(func() error {
			detail, err := svc.ChampionSkins(ctx, summonerID, championID)
			if err != nil {
				logger.Debug().Err(err).Int("champion_id", championID).Msg("chroma detail unavailable")
				return nil
			}
			perChampion[i] = detail
			return nil
		})
	}
	_ = g.Wait()

	result := make(map[int]ChromaInfo)
	for _, detail := range perChampion {
		for _, skin := range detail {
			if len(skin.Chromas) == 0 {
				continue
			}
			info := ChromaInfo{Total: len(skin.Chromas)}
			for i := range skin.Chromas {
				if skin.Chromas[i].IsOwned() {
					info.Owned++
				}
			}
			result[skin.ID] = info
		}
	}
	return result
}
