package main

import (
	dispatchx "agenthub/agent/dispatch"
	enrichx "agenthub/agent/enrich"
	planx "agenthub/agent/plan"
	promptx "agenthub/agent/prompt"
	configx "agenthub/pkg/config"
	geminix "agenthub/pkg/gemini"
	_ "agenthub/pkg/logger/autoload"
	serverx "agenthub/server"

	"github.com/rs/zerolog/log"
)

func main() {
	geminiCfg := configx.MustNew[geminix.Config]("GEMINI")
	gateway := geminix.MustNewGateway(*geminiCfg)

	catalog := promptx.NewCatalog()

	registry := enrichx.NewRegistry(
		enrichx.NewWeather(*configx.MustNew[enrichx.WeatherConfig]("OPENWEATHER")),
		enrichx.NewNews(*configx.MustNew[enrichx.NewsConfig]("NEWSAPI")),
		enrichx.NewWikipedia(*configx.MustNew[enrichx.WikipediaConfig]("WIKIPEDIA")),
		enrichx.NewExchange(*configx.MustNew[enrichx.ExchangeConfig]("EXCHANGERATE")),
		enrichx.NewYouTube(*configx.MustNew[enrichx.YouTubeConfig]("YOUTUBE")),
		enrichx.NewBook(*configx.MustNew[enrichx.BookConfig]("BOOKS")),
		enrichx.NewSummary(*configx.MustNew[enrichx.SummaryConfig]("SUMMARY"), gateway),
		enrichx.NewDictionary(*configx.MustNew[enrichx.DictionaryConfig]("DICTIONARY")),
		enrichx.NewMovie(*configx.MustNew[enrichx.MovieConfig]("OMDB")),
		enrichx.NewMusic(*configx.MustNew[enrichx.ITunesConfig]("ITUNES")),
		enrichx.NewPodcast(*configx.MustNew[enrichx.ITunesConfig]("ITUNES")),
		enrichx.NewGame(*configx.MustNew[enrichx.GameConfig]("RAWG")),
		enrichx.NewRecipe(*configx.MustNew[enrichx.RecipeConfig]("MEALDB")),
		enrichx.NewQRCode(*configx.MustNew[enrichx.QRCodeConfig]("QRSERVER")),
		enrichx.NewIPLookup(*configx.MustNew[enrichx.IPConfig]("IPAPI")),
		enrichx.NewCrypto(*configx.MustNew[enrichx.CryptoConfig]("COINGECKO")),
		enrichx.NewFootball(*configx.MustNew[enrichx.FootballConfig]("SPORTSDB")),
		enrichx.NewTranslate(),
		enrichx.NewRandom(),
	)

	dispatcher, err := dispatchx.New(gateway, catalog, registry)
	if err != nil {
		log.Fatal().Err(err).Msg("build dispatcher")
	}

	generator, err := planx.NewGenerator(gateway, catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("build plan generator")
	}
	executor, err := planx.NewExecutor(dispatcher, catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("build plan executor")
	}

	srvCfg := configx.MustNew[serverx.Config]("SERVER")
	srv, err := serverx.New(dispatcher, generator, executor, catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("build http server")
	}

	if err := srv.ListenAndServe(srvCfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}
