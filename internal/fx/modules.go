package fx

import (
	"skinvault/internal/config"
	"skinvault/internal/ddragon"
	"skinvault/internal/lcu"
	"skinvault/internal/logger"
	"skinvault/internal/rarity"
	"skinvault/internal/skins"
	"skinvault/internal/wiki"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideLocator(cfg *config.Config, logger zerolog.Logger) *lcu.Locator {
	return lcu.NewDefaultLocator(logger, cfg.ExtraInstallDirs, lcu.NewShellInspector())
}

func ProvideReference(cfg *config.Config) *ddragon.Client {
	return ddragon.NewClient(
		ddragon.WithBaseURL(cfg.DDragonURL),
		ddragon.WithLocale(cfg.Locale),
		ddragon.WithTimeout(cfg.ReferenceTimeout),
	)
}

func ProvideRarity(cfg *config.Config, logger zerolog.Logger) *rarity.Resolver {
	return rarity.NewResolver(logger, rarity.WithURL(cfg.RarityURL), rarity.WithTimeout(cfg.ReferenceTimeout))
}

func ProvidePipeline(cfg *config.Config, reference *ddragon.Client, resolver *rarity.Resolver, logger zerolog.Logger) *skins.Pipeline {
	return skins.NewPipeline(reference, resolver, logger,
		skins.WithDialer(skins.DialLCU(cfg.LCURequestsPerSecond)),
		skins.WithLocale(cfg.Locale),
	)
}

func ProvideScraper(cfg *config.Config, logger zerolog.Logger) *wiki.Scraper {
	return wiki.NewScraper(logger, wiki.WithURL(cfg.WikiURL), wiki.WithTimeout(cfg.ReferenceTimeout))
}

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(logger.New),
	// discovery
	fx.Provide(ProvideLocator),
	// reference data
	fx.Provide(ProvideReference),
	fx.Provide(ProvideRarity),
	fx.Provide(ProvideScraper),
	// enrichment
	fx.Provide(ProvidePipeline),
)
