package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/thebartekbanach/picproxy/pkg/sites"
)

func main() {
	viper.SetConfigName("picproxy")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/picproxy")
	viper.SetEnvPrefix("PICPROXY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	log.Info().Msg("reading config file")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	switch viper.GetString("server.log_level") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Info().Msg("initializing proxy service")
	proxyService := InitializeProxy(ctx)
	sweeper := InitializeSweeper(ctx)
	resolver := sites.NewResolver()

	mux := http.NewServeMux()
	mux.HandleFunc("/cache", handleCacheClearRequest(ctx, sweeper))
	mux.HandleFunc("/", handleImageRequest(ctx, proxyService, resolver))

	addr := viper.GetString("server.listen")
	if addr == "" {
		addr = ":80"
	}

	log.Info().Str("addr", addr).Msg("listening")
	log.Fatal().Err(http.ListenAndServe(addr, mux)).Msg("server stopped")
}
