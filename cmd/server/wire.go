//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/thebartekbanach/picproxy/pkg/cleaner"
	"github.com/thebartekbanach/picproxy/pkg/proxy"
)

func InitializeProxy(ctx context.Context) proxy.ProxyService {
	wire.Build(
		InitializeMinioConfig,
		InitializeBlobStore,
		InitializeFetcher,
		InitializeTransformer,
		proxy.NewProxyService,
	)

	return nil
}

func InitializeSweeper(ctx context.Context) cleaner.Sweeper {
	wire.Build(
		InitializeMinioConfig,
		InitializeBlobStore,
		cleaner.NewCacheSweeper,
	)

	return nil
}
