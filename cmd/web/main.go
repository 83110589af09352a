package main

import (
	"fmt"
	"os"

	"github.com/de-tools/health-atlas/pkg/runtime/app"
	"github.com/de-tools/health-atlas/pkg/server"
	"github.com/de-tools/health-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	awsCfgPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Health Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (defaults and HEALTH_ATLAS_* variables apply without one)")
	rootCmd.Flags().StringVar(&awsCfgPath, "aws-config", config.DefaultAWSConfigPath(),
		"Path to the AWS shared config file listed at startup")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if settings.AWS.Enabled {
		logProfiles(cmd, logger)
	}

	services, err := app.Build(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            settings.Addr(),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		RateLimit: server.RateLimit{
			RequestsPerSecond: settings.RateLimit.RequestsPerSecond,
			Burst:             settings.RateLimit.Burst,
		},
		Dependencies: server.Dependencies{
			Loader:      services.Loader,
			Transformer: services.Transformer,
			Compiler:    services.Compiler,
			Uploader:    services.Storage,
			Queries:     services.Queries,
			Sentiment:   services.Sentiment,
			Prediction:  services.Prediction,
		},
	})

	return api.Start()
}

func logProfiles(cmd *cobra.Command, logger zerolog.Logger) {
	registry, err := config.NewProfileRegistry(awsCfgPath)
	if err != nil {
		logger.Warn().Err(err).Msgf("AWS config at `%s` could not be read", awsCfgPath)
		return
	}

	profiles, _ := registry.GetProfiles(cmd.Context())
	logger.Info().Msgf("Found the following AWS profiles in `%s`:", awsCfgPath)
	for _, profile := range profiles {
		logger.Info().Msgf("Name: `%s`, Region: `%s`", profile.Name, profile.Region)
	}
}
