package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thebartekbanach/picproxy/pkg/cleaner"
	"github.com/thebartekbanach/picproxy/pkg/storage"
)

func newCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove all cached originals and processed variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("clean takes no arguments")
			}

			if err := loadConfig(cmd); err != nil {
				return err
			}

			store, err := connectBlobStore(cmd.Context())
			if err != nil {
				return err
			}

			if err := cleaner.NewCacheSweeper(store).Sweep(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "image cache cleared")
			return nil
		},
	}
}

func loadConfig(cmd *cobra.Command) error {
	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("picproxy")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/picproxy")
	}

	viper.SetEnvPrefix("PICPROXY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return viper.ReadInConfig()
}

func connectBlobStore(ctx context.Context) (storage.BlobStore, error) {
	config := storage.MinioBlobStoreConfig{
		Endpoint:  viper.GetString("minio.endpoint"),
		AccessKey: viper.GetString("minio.access_key"),
		SecretKey: viper.GetString("minio.secret_key"),
		Bucket:    viper.GetString("minio.bucket"),
		Location:  viper.GetString("minio.location"),
		UseSSL:    viper.GetBool("minio.ssl"),
	}

	if config.Location == "" {
		config.Location = "us-east-1"
	}

	store, err := storage.NewMinioBlobStore(ctx, config)
	if err != nil {
		return nil, err
	}

	return &store, nil
}
