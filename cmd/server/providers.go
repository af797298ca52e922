package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/thebartekbanach/picproxy/pkg/fetcher"
	"github.com/thebartekbanach/picproxy/pkg/storage"
	"github.com/thebartekbanach/picproxy/pkg/transform"
)

func InitializeMinioConfig() storage.MinioBlobStoreConfig {
	config := storage.MinioBlobStoreConfig{
		Endpoint:  viper.GetString("minio.endpoint"),
		AccessKey: viper.GetString("minio.access_key"),
		SecretKey: viper.GetString("minio.secret_key"),
		Bucket:    viper.GetString("minio.bucket"),
		Location:  viper.GetString("minio.location"),
		UseSSL:    viper.GetBool("minio.ssl"),
	}

	if config.Endpoint == "" {
		log.Panic().Msg("minio.endpoint is a required configuration value")
	}

	if config.AccessKey == "" {
		log.Panic().Msg("minio.access_key is a required configuration value")
	}

	if config.SecretKey == "" {
		log.Panic().Msg("minio.secret_key is a required configuration value")
	}

	if config.Bucket == "" {
		log.Panic().Msg("minio.bucket is a required configuration value")
	}

	if config.Location == "" {
		config.Location = "us-east-1"
	}

	return config
}

func InitializeBlobStore(ctx context.Context, config storage.MinioBlobStoreConfig) storage.BlobStore {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	store, err := storage.NewMinioBlobStore(ctx, config)
	if err != nil {
		log.Panic().Err(err).Msg("error occurred when initializing minio blob store")
	}

	return &store
}

func InitializeFetcher(store storage.BlobStore) fetcher.Fetcher {
	config := fetcher.Config{
		Timeout:      viper.GetDuration("proxy.timeout"),
		Token:        viper.GetString("proxy.token"),
		AllowedHosts: viper.GetStringSlice("proxy.allowed_hosts"),
	}

	return fetcher.NewOriginFetcher(config, store)
}

func InitializeTransformer() transform.Transformer {
	tempDir := viper.GetString("proxy.temp_dir")
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	var optimizer *transform.Optimizer
	if viper.GetBool("proxy.optimization") {
		optimizer = transform.NewOptimizer()
	}

	transformer, err := transform.NewTransformer(tempDir, optimizer)
	if err != nil {
		log.Panic().Err(err).Msg("error occurred when initializing transformer")
	}

	return transformer
}
